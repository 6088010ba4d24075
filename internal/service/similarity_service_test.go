package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"

	"moodtown/internal/domain"
	"moodtown/internal/llm"
)

func TestSimilarToTextWithoutIndexReturnsNotTrained(t *testing.T) {
	repo := newMockDiaryRepo()
	svc := NewSimilarityService(repo, &llm.MockClient{Embedding: []float32{1, 0}}, zap.NewNop())

	_, err := svc.SimilarToText(context.Background(), "u1", "오늘의 일기", nil)
	if !errors.Is(err, ErrModelNotTrained) {
		t.Fatalf("expected ErrModelNotTrained, got %v", err)
	}
}

func TestSimilarToTextRanksAndTruncates(t *testing.T) {
	repo := newMockDiaryRepo()
	repo.embeddings["indexed"] = pgvector.NewVector([]float32{1, 0})

	joyScores := domain.EmotionScores{domain.EmotionJoy: 80, domain.EmotionLove: 20}
	longContent := strings.Repeat("가", 300)
	repo.searchHits = []domain.Diary{
		{ID: "d1", Date: "2026-08-01", Content: longContent, EmotionScores: joyScores},
		{ID: "d2", Date: "2026-08-02", Content: "짧은 일기", EmotionScores: joyScores},
		{ID: "d3", Date: "2026-08-03", Content: "   ", EmotionScores: joyScores},
	}
	repo.searchSims = []float64{0.9, 0.7, 0.95}

	svc := NewSimilarityService(repo, &llm.MockClient{Embedding: []float32{1, 0}}, zap.NewNop())

	results, err := svc.SimilarToText(context.Background(), "u1", "행복한 하루", joyScores)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected blank diary skipped, got %d results", len(results))
	}
	if results[0].Diary.ID != "d1" || results[0].Similarity <= results[1].Similarity {
		t.Fatalf("expected descending similarity, got %+v", results)
	}
	if len([]rune(results[0].Diary.Content)) != previewContentRunes+3 {
		t.Fatalf("expected truncated preview with ellipsis, got %d runes", len([]rune(results[0].Diary.Content)))
	}
}

func TestSimilarToDiaryExcludesSelfAndSameDate(t *testing.T) {
	repo := newMockDiaryRepo()
	repo.embeddings["indexed"] = pgvector.NewVector([]float32{1, 0})

	joyScores := domain.EmotionScores{domain.EmotionJoy: 100}
	repo.diaries["target"] = domain.Diary{
		ID:            "target",
		Date:          "2026-09-01",
		Content:       "기준 일기",
		EmotionScores: joyScores,
	}
	repo.searchHits = []domain.Diary{
		{ID: "target", Date: "2026-09-01", Content: "기준 일기", EmotionScores: joyScores},
		{ID: "same-day", Date: "2026-09-01", Content: "같은 날", EmotionScores: joyScores},
		{ID: "other", Date: "2026-08-20", Content: "다른 날", EmotionScores: joyScores},
	}
	repo.searchSims = []float64{1, 0.95, 0.8}

	svc := NewSimilarityService(repo, &llm.MockClient{Embedding: []float32{1, 0}}, zap.NewNop())

	results, err := svc.SimilarToDiary(context.Background(), "u1", "target")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(results) != 1 || results[0].Diary.ID != "other" {
		t.Fatalf("expected only the other-day diary, got %+v", results)
	}
}

func TestSimilarToDiaryNotFound(t *testing.T) {
	svc := NewSimilarityService(newMockDiaryRepo(), &llm.MockClient{}, zap.NewNop())

	_, err := svc.SimilarToDiary(context.Background(), "u1", "missing")
	if !errors.Is(err, ErrDiaryNotFound) {
		t.Fatalf("expected ErrDiaryNotFound, got %v", err)
	}
}

func TestSimilarToTextEmptyQuery(t *testing.T) {
	svc := NewSimilarityService(newMockDiaryRepo(), &llm.MockClient{}, zap.NewNop())

	_, err := svc.SimilarToText(context.Background(), "u1", "  ", nil)
	if !errors.Is(err, ErrDiaryInvalid) {
		t.Fatalf("expected ErrDiaryInvalid, got %v", err)
	}
}

func TestCombinedSimilarityOppositePolarityPenalty(t *testing.T) {
	positive := domain.EmotionScores{domain.EmotionJoy: 80, domain.EmotionLove: 10}
	negative := domain.EmotionScores{domain.EmotionSadness: 70, domain.EmotionAnger: 20}

	same := combinedSimilarity(0.9, 0.9, positive, positive)
	opposite := combinedSimilarity(0.9, 0.9, positive, negative)
	if opposite >= same {
		t.Fatalf("expected opposite polarity penalized: same=%f opposite=%f", same, opposite)
	}
}

func TestCombinedSimilarityLowEmotionPenalty(t *testing.T) {
	scores := domain.EmotionScores{domain.EmotionJoy: 50}
	high := combinedSimilarity(0.8, 0.9, scores, scores)
	low := combinedSimilarity(0.8, 0.1, scores, scores)
	if low >= high {
		t.Fatalf("expected low emotion similarity penalized: high=%f low=%f", high, low)
	}
}

func TestEmotionSimilarityIdenticalDistributions(t *testing.T) {
	scores := domain.EmotionScores{domain.EmotionJoy: 60, domain.EmotionLove: 40}
	if sim := emotionSimilarity(scores, scores); sim < 0.999 {
		t.Fatalf("expected cosine ~1 for identical scores, got %f", sim)
	}
	if sim := emotionSimilarity(nil, scores); sim != 0.5 {
		t.Fatalf("expected neutral 0.5 without scores, got %f", sim)
	}
}
