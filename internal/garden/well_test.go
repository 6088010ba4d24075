package garden

import (
	"testing"

	"moodtown/internal/domain"
)

func TestFillWellPlain(t *testing.T) {
	scores := domain.EmotionScores{
		domain.EmotionSadness: 40,
		domain.EmotionJoy:     10,
	}

	result := FillWell(100, false, 40, scores, nil)
	if result.BonusScore != 0 {
		t.Fatalf("expected no bonus on a mixed day, got %d", result.BonusScore)
	}
	if result.WaterLevel != 140 {
		t.Fatalf("expected level 140, got %d", result.WaterLevel)
	}
	if result.IsOverflowing || result.Overflowed {
		t.Fatalf("expected no overflow")
	}
}

func TestFillWellPureNegativeBonus(t *testing.T) {
	scores := domain.EmotionScores{
		domain.EmotionSadness: 60,
		domain.EmotionAnger:   40,
	}

	result := FillWell(0, false, 100, scores, nil)
	if result.BonusScore != 25 {
		t.Fatalf("expected 25%% bonus, got %d", result.BonusScore)
	}
	if result.WaterLevel != 125 {
		t.Fatalf("expected level 125, got %d", result.WaterLevel)
	}
}

func TestFillWellClampsAtCapacityAndOverflowsOnce(t *testing.T) {
	scores := domain.EmotionScores{
		domain.EmotionSadness: 20,
		domain.EmotionFear:    10,
	}

	result := FillWell(480, false, 30, scores, nil)
	if result.WaterLevel != WellCapacity {
		t.Fatalf("expected level clamped at %d, got %d", WellCapacity, result.WaterLevel)
	}
	if !result.IsOverflowing || !result.Overflowed {
		t.Fatalf("expected first crossing to report overflow")
	}

	again := FillWell(result.WaterLevel, result.IsOverflowing, 30, scores, nil)
	if again.Overflowed {
		t.Fatalf("expected no repeated overflow event while already overflowing")
	}
	if !again.IsOverflowing {
		t.Fatalf("expected state to remain overflowing")
	}
}

func TestReduceWellFloorsAtZero(t *testing.T) {
	result := ReduceWell(20, 50)
	if result.WaterLevel != 0 {
		t.Fatalf("expected floor at 0, got %d", result.WaterLevel)
	}
	if result.ReducedAmount != 20 {
		t.Fatalf("expected reduced amount 20, got %d", result.ReducedAmount)
	}
	if result.IsOverflowing {
		t.Fatalf("expected no overflow at 0")
	}
}

func TestReduceWellClearsOverflow(t *testing.T) {
	result := ReduceWell(WellCapacity, WellReductionOnFruit)
	if result.WaterLevel != WellCapacity-WellReductionOnFruit {
		t.Fatalf("expected level %d, got %d", WellCapacity-WellReductionOnFruit, result.WaterLevel)
	}
	if result.IsOverflowing {
		t.Fatalf("expected overflow cleared below capacity")
	}
}

func TestWaterLevelPercent(t *testing.T) {
	if got := WaterLevelPercent(250); got != 50 {
		t.Fatalf("expected 50%%, got %f", got)
	}
	if got := WaterLevelPercent(600); got != 100 {
		t.Fatalf("expected cap at 100%%, got %f", got)
	}
}
