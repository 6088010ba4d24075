package emotion

import (
	"testing"

	"moodtown/internal/domain"
)

func TestClassifyFixedPolarity(t *testing.T) {
	split := Classify(domain.EmotionScores{
		domain.EmotionJoy:     30,
		domain.EmotionLove:    20,
		domain.EmotionAnger:   25,
		domain.EmotionSadness: 15,
		domain.EmotionFear:    10,
	}, nil)

	if split.Positive != 50 {
		t.Fatalf("expected positive 50, got %d", split.Positive)
	}
	if split.Negative != 50 {
		t.Fatalf("expected negative 50, got %d", split.Negative)
	}
}

func TestClassifyAmbiguousWithPolarity(t *testing.T) {
	scores := domain.EmotionScores{
		domain.EmotionJoy:      40,
		domain.EmotionSurprise: 30,
		domain.EmotionShame:    30,
	}
	polarity := domain.EmotionPolarity{
		domain.EmotionSurprise: domain.PolarityPositive,
		domain.EmotionShame:    domain.PolarityNegative,
	}

	split := Classify(scores, polarity)
	if split.Positive != 70 {
		t.Fatalf("expected positive 70, got %d", split.Positive)
	}
	if split.Negative != 30 {
		t.Fatalf("expected negative 30, got %d", split.Negative)
	}
}

func TestClassifyAmbiguousWithoutPolarityCountsNeither(t *testing.T) {
	scores := domain.EmotionScores{
		domain.EmotionJoy:      40,
		domain.EmotionSurprise: 60,
	}

	split := Classify(scores, nil)
	if split.Positive != 40 {
		t.Fatalf("expected surprise excluded from positive, got %d", split.Positive)
	}
	if split.Negative != 0 {
		t.Fatalf("expected surprise excluded from negative, got %d", split.Negative)
	}
}

func TestHybridPolarityRuleOverridesLLM(t *testing.T) {
	scores := domain.EmotionScores{domain.EmotionSurprise: 50}
	llmSays := domain.EmotionPolarity{domain.EmotionSurprise: domain.PolarityPositive}

	got := HybridPolarity("오늘 사고 소식을 듣고 충격을 받았다", llmSays, scores)
	if got[domain.EmotionSurprise] != domain.PolarityNegative {
		t.Fatalf("expected lexicon rule to win with negative, got %q", got[domain.EmotionSurprise])
	}
}

func TestHybridPolarityFallsBackToLLM(t *testing.T) {
	scores := domain.EmotionScores{domain.EmotionShame: 20}
	llmSays := domain.EmotionPolarity{domain.EmotionShame: domain.PolarityPositive}

	got := HybridPolarity("오늘은 그냥 평범한 하루였다", llmSays, scores)
	if got[domain.EmotionShame] != domain.PolarityPositive {
		t.Fatalf("expected llm polarity used, got %q", got[domain.EmotionShame])
	}
}

func TestHybridPolaritySkipsZeroScore(t *testing.T) {
	llmSays := domain.EmotionPolarity{
		domain.EmotionSurprise: domain.PolarityNegative,
		domain.EmotionShame:    domain.PolarityNegative,
	}

	got := HybridPolarity("창피하고 충격적인 하루", llmSays, domain.EmotionScores{})
	if len(got) != 0 {
		t.Fatalf("expected no polarity for zero-score emotions, got %v", got)
	}
}

func TestHybridPolarityPositiveShame(t *testing.T) {
	scores := domain.EmotionScores{domain.EmotionShame: 30}

	got := HybridPolarity("좋아하는 사람 앞에서 두근거리고 설레서 얼굴 빨개졌다", nil, scores)
	if got[domain.EmotionShame] != domain.PolarityPositive {
		t.Fatalf("expected positive shame via lexicon, got %q", got[domain.EmotionShame])
	}
}
