package emotion

import (
	"testing"

	"moodtown/internal/domain"
)

func sumScores(scores domain.EmotionScores) int {
	total := 0
	for _, key := range domain.EmotionKeys {
		total += scores[key]
	}
	return total
}

func TestNormalizeFractionalScale(t *testing.T) {
	scores := Normalize(map[string]float64{
		domain.EmotionJoy:  0.5,
		domain.EmotionLove: 0.3,
	})

	if got := sumScores(scores); got != 100 {
		t.Fatalf("expected sum 100, got %d", got)
	}
	if scores[domain.EmotionJoy] != 63 {
		t.Fatalf("expected joy 63, got %d", scores[domain.EmotionJoy])
	}
	if scores[domain.EmotionLove] != 37 {
		t.Fatalf("expected love 37, got %d", scores[domain.EmotionLove])
	}
}

func TestNormalizePercentScale(t *testing.T) {
	scores := Normalize(map[string]float64{
		domain.EmotionJoy:     60,
		domain.EmotionSadness: 40,
	})

	if got := sumScores(scores); got != 100 {
		t.Fatalf("expected sum 100, got %d", got)
	}
	if scores[domain.EmotionJoy] != 60 || scores[domain.EmotionSadness] != 40 {
		t.Fatalf("expected 60/40, got %d/%d", scores[domain.EmotionJoy], scores[domain.EmotionSadness])
	}
}

func TestNormalizeAllZero(t *testing.T) {
	scores := Normalize(map[string]float64{})

	if got := sumScores(scores); got != 100 {
		t.Fatalf("expected uniform distribution to sum 100, got %d", got)
	}
	for _, key := range domain.EmotionKeys {
		if scores[key] < 14 || scores[key] > 16 {
			t.Fatalf("expected near-uniform value for %s, got %d", key, scores[key])
		}
	}
}

func TestNormalizeDiscardsNegatives(t *testing.T) {
	scores := Normalize(map[string]float64{
		domain.EmotionJoy:   50,
		domain.EmotionAnger: -20,
	})

	if scores[domain.EmotionAnger] != 0 {
		t.Fatalf("expected negative input discarded, got %d", scores[domain.EmotionAnger])
	}
	if scores[domain.EmotionJoy] != 100 {
		t.Fatalf("expected joy to absorb the whole distribution, got %d", scores[domain.EmotionJoy])
	}
}

func TestNormalizeSumInvariant(t *testing.T) {
	cases := []map[string]float64{
		{domain.EmotionJoy: 33, domain.EmotionLove: 33, domain.EmotionSadness: 33},
		{domain.EmotionJoy: 1, domain.EmotionLove: 1, domain.EmotionSurprise: 1, domain.EmotionFear: 1, domain.EmotionAnger: 1, domain.EmotionShame: 1, domain.EmotionSadness: 1},
		{domain.EmotionJoy: 0.07, domain.EmotionSadness: 0.93},
		{domain.EmotionSurprise: 120, domain.EmotionJoy: 10},
	}
	for i, raw := range cases {
		if got := sumScores(Normalize(raw)); got != 100 {
			t.Fatalf("case %d: expected sum 100, got %d", i, got)
		}
	}
}
