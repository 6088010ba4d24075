package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"

	"moodtown/internal/domain"
	"moodtown/internal/llm"
	"moodtown/internal/repository"
)

// ErrModelNotTrained indica que todavía no hay embeddings contra los cuales
// buscar: ningún diario del usuario fue indexado.
var ErrModelNotTrained = errors.New("similarity model not trained")

const (
	similarityLimit     = 5
	minSimilarity       = 0.3
	textWeight          = 0.5
	emotionWeight       = 0.5
	searchCandidates    = 20
	previewContentRunes = 200
)

// SimilarityService busca diarios parecidos combinando la similitud de texto
// (embeddings en pgvector) con la similitud de la distribución emocional.
type SimilarityService struct {
	diaries   repository.DiaryRepository
	llmClient llm.Client
	logger    *zap.Logger
}

func NewSimilarityService(diaries repository.DiaryRepository, llmClient llm.Client, logger *zap.Logger) *SimilarityService {
	return &SimilarityService{
		diaries:   diaries,
		llmClient: llmClient,
		logger:    logger,
	}
}

// SimilarToDiary busca diarios parecidos al diario indicado.
func (s *SimilarityService) SimilarToDiary(ctx context.Context, userID, diaryID string) ([]domain.SimilarDiary, error) {
	target, err := s.diaries.GetByID(ctx, userID, diaryID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDiaryNotFound
		}
		return nil, err
	}
	return s.search(ctx, userID, target.Content, target.EmotionScores, target.ID, target.Date)
}

// SimilarToText busca diarios parecidos a un texto arbitrario.
func (s *SimilarityService) SimilarToText(ctx context.Context, userID, text string, scores domain.EmotionScores) ([]domain.SimilarDiary, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrDiaryInvalid
	}
	return s.search(ctx, userID, text, scores, "", "")
}

func (s *SimilarityService) search(ctx context.Context, userID, text string, targetScores domain.EmotionScores, excludeID, excludeDate string) ([]domain.SimilarDiary, error) {
	indexed, err := s.diaries.CountEmbedded(ctx, userID)
	if err != nil {
		return nil, err
	}
	if indexed == 0 {
		return nil, ErrModelNotTrained
	}
	if s.llmClient == nil {
		return nil, ErrModelNotTrained
	}

	vec, err := s.llmClient.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	candidates, textSims, err := s.diaries.SearchByEmbedding(ctx, userID, pgvector.NewVector(vec), searchCandidates)
	if err != nil {
		return nil, err
	}

	results := make([]domain.SimilarDiary, 0, similarityLimit)
	for i, diary := range candidates {
		if excludeID != "" && diary.ID == excludeID {
			continue
		}
		if excludeDate != "" && diary.Date == excludeDate {
			continue
		}
		if strings.TrimSpace(diary.Content) == "" {
			continue
		}

		emotionSim := emotionSimilarity(targetScores, diary.EmotionScores)
		combined := combinedSimilarity(textSims[i], emotionSim, targetScores, diary.EmotionScores)
		if combined < minSimilarity {
			continue
		}

		diary.Content = truncateRunes(diary.Content, previewContentRunes)
		results = append(results, domain.SimilarDiary{
			Diary:      diary,
			Similarity: combined,
		})
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Similarity > results[j].Similarity })
	if len(results) > similarityLimit {
		results = results[:similarityLimit]
	}
	return results, nil
}

// emotionSimilarity es el coseno entre las dos distribuciones de emociones.
// Sin puntajes de alguno de los dos lados se asume un valor intermedio.
func emotionSimilarity(a, b domain.EmotionScores) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0.5
	}
	var dot, normA, normB float64
	for _, key := range domain.EmotionKeys {
		va := float64(a[key]) / 100
		vb := float64(b[key]) / 100
		dot += va * vb
		normA += va * va
		normB += vb * vb
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// combinedSimilarity mezcla texto y emoción al 50% y penaliza los casos en
// que las emociones difieren demasiado o son de signo opuesto.
func combinedSimilarity(textSim, emotionSim float64, target, other domain.EmotionScores) float64 {
	combined := textSim*textWeight + emotionSim*emotionWeight

	if emotionSim < 0.4 {
		penalty := (0.4 - emotionSim) * 1.5
		combined = math.Max(0, combined-penalty)
	}

	if len(target) > 0 && len(other) > 0 {
		targetPos := target[domain.EmotionJoy] + target[domain.EmotionLove]
		targetNeg := target[domain.EmotionAnger] + target[domain.EmotionSadness] + target[domain.EmotionFear]
		otherPos := other[domain.EmotionJoy] + other[domain.EmotionLove]
		otherNeg := other[domain.EmotionAnger] + other[domain.EmotionSadness] + other[domain.EmotionFear]

		if (targetNeg > 50 && otherPos > 50) || (targetPos > 50 && otherNeg > 50) {
			combined = math.Max(0, combined*0.6)
		}
	}

	return math.Min(1, combined)
}

func truncateRunes(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "..."
}
