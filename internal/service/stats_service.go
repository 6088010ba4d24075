package service

import (
	"context"
	"sort"
	"time"

	"moodtown/internal/domain"
	"moodtown/internal/repository"
)

// StatsService agrega las estadísticas de la oficina del pueblo.
type StatsService struct {
	diaries repository.DiaryRepository
}

func NewStatsService(diaries repository.DiaryRepository) *StatsService {
	return &StatsService{diaries: diaries}
}

type TopEmotionStat struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
	Ratio float64 `json:"ratio"`
}

type ContributionStat struct {
	Value float64 `json:"value"`
	Ratio float64 `json:"ratio"`
}

// OfficeStats es el resumen mostrado en la oficina: las 3 emociones más
// acumuladas de todos los diarios y la contribución de la última semana al
// árbol y al pozo.
type OfficeStats struct {
	TopEmotions          []TopEmotionStat `json:"topEmotions"`
	TotalEmotionScore    float64          `json:"totalEmotionScore"`
	TreeWellContribution struct {
		Tree ContributionStat `json:"tree"`
		Well ContributionStat `json:"well"`
	} `json:"treeWellContribution"`
	TotalTreeWellValue float64 `json:"totalTreeWellValue"`
}

func (s *StatsService) Office(ctx context.Context, userID string, now time.Time) (OfficeStats, error) {
	diaries, err := s.diaries.ListAll(ctx, userID)
	if err != nil {
		return OfficeStats{}, err
	}

	totals := make(map[string]float64, len(domain.EmotionKeys))
	totalScore := 0.0
	for _, diary := range diaries {
		for _, key := range domain.EmotionKeys {
			v := float64(diary.EmotionScores[key])
			totals[key] += v
			totalScore += v
		}
	}

	names := append([]string(nil), domain.EmotionKeys...)
	sort.SliceStable(names, func(i, j int) bool { return totals[names[i]] > totals[names[j]] })

	stats := OfficeStats{
		TopEmotions:       []TopEmotionStat{},
		TotalEmotionScore: totalScore,
	}
	for _, name := range names[:3] {
		score := totals[name]
		if score <= 0 {
			continue
		}
		ratio := 0.0
		if totalScore > 0 {
			ratio = score / totalScore
		}
		stats.TopEmotions = append(stats.TopEmotions, TopEmotionStat{Name: name, Score: score, Ratio: ratio})
	}

	today := now.UTC().Truncate(24 * time.Hour)
	weekStart := today.AddDate(0, 0, -6)

	var treeValue, wellValue float64
	for _, diary := range diaries {
		date, err := time.Parse("2006-01-02", diary.Date)
		if err != nil {
			continue
		}
		if date.Before(weekStart) || date.After(today) {
			continue
		}
		treeValue += float64(diary.EmotionScores[domain.EmotionJoy] + diary.EmotionScores[domain.EmotionLove])
		wellValue += float64(diary.EmotionScores[domain.EmotionAnger] +
			diary.EmotionScores[domain.EmotionSadness] +
			diary.EmotionScores[domain.EmotionFear])
	}

	total := treeValue + wellValue
	stats.TreeWellContribution.Tree = ContributionStat{Value: treeValue}
	stats.TreeWellContribution.Well = ContributionStat{Value: wellValue}
	if total > 0 {
		stats.TreeWellContribution.Tree.Ratio = treeValue / total
		stats.TreeWellContribution.Well.Ratio = wellValue / total
	}
	stats.TotalTreeWellValue = total

	return stats, nil
}
