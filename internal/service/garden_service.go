package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"moodtown/internal/domain"
	"moodtown/internal/garden"
	"moodtown/internal/repository"
)

var ErrSummaryNotFound = errors.New("day summary not found")

// GardenService coordina el árbol de la felicidad, el pozo de estrés y el
// registro diario de bonificaciones.
type GardenService struct {
	trees     repository.TreeRepository
	wells     repository.WellRepository
	summaries repository.SummaryRepository
	letters   *LetterService
	logger    *zap.Logger
}

func NewGardenService(
	trees repository.TreeRepository,
	wells repository.WellRepository,
	summaries repository.SummaryRepository,
	letters *LetterService,
	logger *zap.Logger,
) *GardenService {
	return &GardenService{
		trees:     trees,
		wells:     wells,
		summaries: summaries,
		letters:   letters,
		logger:    logger,
	}
}

func (s *GardenService) TreeState(ctx context.Context, userID string) (domain.TreeState, error) {
	growth, lastFruitDate, err := s.trees.GetState(ctx, userID)
	if err != nil {
		return domain.TreeState{}, err
	}
	return domain.TreeState{
		Growth:        growth,
		Stage:         garden.StageFor(growth),
		LastFruitDate: lastFruitDate,
	}, nil
}

// SetTreeState guarda el crecimiento tal cual; la etapa que envíe el cliente
// se ignora porque siempre se deriva del crecimiento.
func (s *GardenService) SetTreeState(ctx context.Context, userID string, growth int, lastFruitDate *string) (domain.TreeState, error) {
	if growth < 0 {
		growth = 0
	}
	if err := s.trees.SaveState(ctx, userID, growth, lastFruitDate); err != nil {
		return domain.TreeState{}, err
	}
	return domain.TreeState{
		Growth:        growth,
		Stage:         garden.StageFor(growth),
		LastFruitDate: lastFruitDate,
	}, nil
}

// GrowInput es la entrada de una aplicación de puntaje positivo al árbol.
type GrowInput struct {
	Date          string
	PositiveScore int
	Scores        domain.EmotionScores
	Polarity      domain.EmotionPolarity
	DiaryText     string
}

// GrowOutput extiende el resultado puro con el estado persistido.
type GrowOutput struct {
	domain.GrowthResult
	FruitCount    int     `json:"fruitCount"`
	LastFruitDate *string `json:"lastFruitDate"`
}

// Grow aplica el puntaje del día al árbol. Si el árbol da fruto se incrementa
// el contador, se reduce el pozo y se genera la carta de celebración.
func (s *GardenService) Grow(ctx context.Context, userID string, input GrowInput) (GrowOutput, error) {
	growth, lastFruitDate, err := s.trees.GetState(ctx, userID)
	if err != nil {
		return GrowOutput{}, err
	}

	result := garden.GrowTree(growth, input.PositiveScore, input.Scores, input.Polarity)
	if result.FruitProduced {
		date := input.Date
		if date == "" {
			date = time.Now().UTC().Format("2006-01-02")
		}
		lastFruitDate = &date
	}
	if err := s.trees.SaveState(ctx, userID, result.Growth, lastFruitDate); err != nil {
		return GrowOutput{}, err
	}

	fruitCount, err := s.trees.GetFruitCount(ctx, userID)
	if err != nil {
		return GrowOutput{}, err
	}

	if result.FruitProduced {
		fruitCount++
		if err := s.trees.SaveFruitCount(ctx, userID, fruitCount); err != nil {
			return GrowOutput{}, err
		}
		if err := s.reduceWellOnFruit(ctx, userID); err != nil {
			s.logger.Warn("well reduction on fruit failed", zap.Error(err), zap.String("user_id", userID))
		}
		if s.letters != nil {
			if _, err := s.letters.Generate(ctx, userID, GenerateLetterInput{
				Type:       domain.LetterTypeCelebration,
				FruitCount: fruitCount,
			}); err != nil {
				s.logger.Warn("celebration letter failed", zap.Error(err), zap.String("user_id", userID))
			}
		}
	}

	if result.BonusScore > 0 {
		s.recordBonus(ctx, userID, input.Date, domain.BonusTree, result.BonusScore)
	}

	return GrowOutput{
		GrowthResult:  result,
		FruitCount:    fruitCount,
		LastFruitDate: lastFruitDate,
	}, nil
}

func (s *GardenService) reduceWellOnFruit(ctx context.Context, userID string) error {
	level, _, lastOverflowDate, err := s.wells.GetState(ctx, userID)
	if err != nil {
		return err
	}
	reduced := garden.ReduceWell(level, garden.WellReductionOnFruit)
	return s.wells.SaveState(ctx, userID, reduced.WaterLevel, reduced.IsOverflowing, lastOverflowDate)
}

func (s *GardenService) SubtractTree(ctx context.Context, userID string, amount int) (domain.TreeState, error) {
	if amount < 0 {
		amount = 0
	}
	growth, lastFruitDate, err := s.trees.GetState(ctx, userID)
	if err != nil {
		return domain.TreeState{}, err
	}
	newGrowth, stage := garden.SubtractGrowth(growth, amount)
	if err := s.trees.SaveState(ctx, userID, newGrowth, lastFruitDate); err != nil {
		return domain.TreeState{}, err
	}
	return domain.TreeState{Growth: newGrowth, Stage: stage, LastFruitDate: lastFruitDate}, nil
}

func (s *GardenService) FruitCount(ctx context.Context, userID string) (int, error) {
	return s.trees.GetFruitCount(ctx, userID)
}

func (s *GardenService) SetFruitCount(ctx context.Context, userID string, count int) error {
	if count < 0 {
		count = 0
	}
	return s.trees.SaveFruitCount(ctx, userID, count)
}

func (s *GardenService) WellState(ctx context.Context, userID string) (domain.WellState, error) {
	level, overflowing, lastOverflowDate, err := s.wells.GetState(ctx, userID)
	if err != nil {
		return domain.WellState{}, err
	}
	return domain.WellState{
		WaterLevel:       level,
		IsOverflowing:    overflowing,
		LastOverflowDate: lastOverflowDate,
	}, nil
}

func (s *GardenService) SetWellState(ctx context.Context, userID string, state domain.WellState) (domain.WellState, error) {
	if state.WaterLevel < 0 {
		state.WaterLevel = 0
	}
	if state.WaterLevel > garden.WellCapacity {
		state.WaterLevel = garden.WellCapacity
	}
	state.IsOverflowing = state.WaterLevel >= garden.WellCapacity
	if err := s.wells.SaveState(ctx, userID, state.WaterLevel, state.IsOverflowing, state.LastOverflowDate); err != nil {
		return domain.WellState{}, err
	}
	return state, nil
}

// FillInput es la entrada de una aplicación de puntaje negativo al pozo.
type FillInput struct {
	Date          string
	NegativeScore int
	Scores        domain.EmotionScores
	Polarity      domain.EmotionPolarity
	DiaryText     string
}

// FillOutput extiende el resultado puro con el estado persistido.
type FillOutput struct {
	domain.FillResult
	LastOverflowDate *string `json:"lastOverflowDate"`
	ReducedAmount    int     `json:"reducedAmount"`
}

// Fill aplica el puntaje negativo del día. En días sin emociones negativas
// apreciables el pozo baja en lugar de subir. Un desborde nuevo dispara la
// carta de consuelo.
func (s *GardenService) Fill(ctx context.Context, userID string, input FillInput) (FillOutput, error) {
	level, wasOverflowing, lastOverflowDate, err := s.wells.GetState(ctx, userID)
	if err != nil {
		return FillOutput{}, err
	}

	date := input.Date
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}

	if garden.HasNoNegativeEmotions(input.Scores) {
		reduced := garden.ReduceWell(level, garden.NoNegativeReduction)
		if err := s.wells.SaveState(ctx, userID, reduced.WaterLevel, reduced.IsOverflowing, lastOverflowDate); err != nil {
			return FillOutput{}, err
		}
		if reduced.ReducedAmount > 0 {
			s.recordBonus(ctx, userID, date, domain.BonusWellReduced, reduced.ReducedAmount)
		}
		return FillOutput{
			FillResult: domain.FillResult{
				WaterLevel:    reduced.WaterLevel,
				IsOverflowing: reduced.IsOverflowing,
			},
			LastOverflowDate: lastOverflowDate,
			ReducedAmount:    reduced.ReducedAmount,
		}, nil
	}

	result := garden.FillWell(level, wasOverflowing, input.NegativeScore, input.Scores, input.Polarity)
	if result.Overflowed {
		lastOverflowDate = &date
	}
	if err := s.wells.SaveState(ctx, userID, result.WaterLevel, result.IsOverflowing, lastOverflowDate); err != nil {
		return FillOutput{}, err
	}

	if result.Overflowed && s.letters != nil {
		if _, err := s.letters.Generate(ctx, userID, GenerateLetterInput{
			Type:          domain.LetterTypeWellOverflow,
			EmotionScores: input.Scores,
			DiaryText:     input.DiaryText,
		}); err != nil {
			s.logger.Warn("overflow letter failed", zap.Error(err), zap.String("user_id", userID))
		}
	}

	if result.BonusScore > 0 {
		s.recordBonus(ctx, userID, date, domain.BonusWell, result.BonusScore)
	}

	return FillOutput{FillResult: result, LastOverflowDate: lastOverflowDate}, nil
}

func (s *GardenService) SubtractWell(ctx context.Context, userID string, amount int) (domain.WellState, error) {
	if amount < 0 {
		amount = 0
	}
	level, _, lastOverflowDate, err := s.wells.GetState(ctx, userID)
	if err != nil {
		return domain.WellState{}, err
	}
	reduced := garden.ReduceWell(level, amount)
	if err := s.wells.SaveState(ctx, userID, reduced.WaterLevel, reduced.IsOverflowing, lastOverflowDate); err != nil {
		return domain.WellState{}, err
	}
	return domain.WellState{
		WaterLevel:       reduced.WaterLevel,
		IsOverflowing:    reduced.IsOverflowing,
		LastOverflowDate: lastOverflowDate,
	}, nil
}

func (s *GardenService) ResetWell(ctx context.Context, userID string) (domain.WellState, error) {
	if err := s.wells.SaveState(ctx, userID, 0, false, nil); err != nil {
		return domain.WellState{}, err
	}
	return domain.WellState{}, nil
}

func (s *GardenService) DaySummary(ctx context.Context, userID, date string) (domain.DaySummary, error) {
	summary, err := s.summaries.GetByDate(ctx, userID, date)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.DaySummary{}, ErrSummaryNotFound
		}
		return domain.DaySummary{}, err
	}
	return summary, nil
}

// recordBonus deja constancia de la bonificación del día. La fila por fecha
// es única y la primera bonificación gana: nunca se pisa una ya registrada.
func (s *GardenService) recordBonus(ctx context.Context, userID, date string, bonusType domain.BonusType, score int) {
	existing, err := s.summaries.GetByDate(ctx, userID, date)
	if err == nil && existing.BonusType != domain.BonusNone {
		return
	}
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		s.logger.Warn("day summary lookup failed", zap.Error(err), zap.String("user_id", userID), zap.String("date", date))
		return
	}
	summary := domain.DaySummary{
		Date:       date,
		BonusType:  bonusType,
		BonusScore: score,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.summaries.Upsert(ctx, userID, summary); err != nil {
		s.logger.Warn("day summary upsert failed", zap.Error(err), zap.String("user_id", userID), zap.String("date", date))
	}
}

// ClearDaySummary borra el registro del día; se usa al reemplazar un diario.
func (s *GardenService) ClearDaySummary(ctx context.Context, userID, date string) error {
	return s.summaries.DeleteByDate(ctx, userID, date)
}
