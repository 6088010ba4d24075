package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"

	"moodtown/internal/domain"
	"moodtown/internal/emotion"
	"moodtown/internal/llm"
	"moodtown/internal/repository"
)

var (
	ErrDiaryNotFound = errors.New("diary not found")
	ErrDiaryInvalid  = errors.New("diary invalid")
)

// DiaryService gestiona los diarios y sus embeddings.
type DiaryService struct {
	diaries   repository.DiaryRepository
	plazas    repository.PlazaRepository
	garden    *GardenService
	llmClient llm.Client
	logger    *zap.Logger
}

func NewDiaryService(
	diaries repository.DiaryRepository,
	plazas repository.PlazaRepository,
	gardenService *GardenService,
	llmClient llm.Client,
	logger *zap.Logger,
) *DiaryService {
	return &DiaryService{
		diaries:   diaries,
		plazas:    plazas,
		garden:    gardenService,
		llmClient: llmClient,
		logger:    logger,
	}
}

func (s *DiaryService) List(ctx context.Context, userID, date string) ([]domain.Diary, error) {
	if date != "" {
		return s.diaries.ListByDate(ctx, userID, date)
	}
	return s.diaries.ListAll(ctx, userID)
}

func (s *DiaryService) Get(ctx context.Context, userID, id string) (domain.Diary, error) {
	diary, err := s.diaries.GetByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Diary{}, ErrDiaryNotFound
		}
		return domain.Diary{}, err
	}
	return diary, nil
}

// Save persiste el diario y calcula su embedding en segundo plano del flujo:
// un fallo del embedding no impide guardar el diario.
func (s *DiaryService) Save(ctx context.Context, userID string, diary domain.Diary) (domain.Diary, error) {
	if strings.TrimSpace(diary.Date) == "" {
		return domain.Diary{}, ErrDiaryInvalid
	}
	if strings.TrimSpace(diary.ID) == "" {
		diary.ID = uuid.NewString()
	}
	diary.UserID = userID
	now := time.Now().UTC()
	if diary.CreatedAt.IsZero() {
		diary.CreatedAt = now
	}
	diary.UpdatedAt = now

	if err := s.diaries.Save(ctx, diary); err != nil {
		return domain.Diary{}, err
	}
	s.saveEmbedding(ctx, userID, diary)
	return diary, nil
}

func (s *DiaryService) saveEmbedding(ctx context.Context, userID string, diary domain.Diary) {
	if s.llmClient == nil || strings.TrimSpace(diary.Content) == "" {
		return
	}
	vec, err := s.llmClient.Embed(ctx, diary.Content)
	if err != nil {
		s.logger.Warn("diary embedding failed", zap.Error(err), zap.String("diary_id", diary.ID))
		return
	}
	if err := s.diaries.SaveEmbedding(ctx, userID, diary.ID, pgvector.NewVector(vec)); err != nil {
		s.logger.Warn("diary embedding save failed", zap.Error(err), zap.String("diary_id", diary.ID))
	}
}

func (s *DiaryService) Delete(ctx context.Context, userID, id string) error {
	err := s.diaries.Delete(ctx, userID, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrDiaryNotFound
	}
	return err
}

// ReplaceInput describe el reemplazo del diario de una fecha.
type ReplaceInput struct {
	Date             string
	OldEmotionScores domain.EmotionScores
	NewDiary         domain.Diary
}

// Replace deshace el efecto del diario anterior sobre el árbol y el pozo,
// borra la conversación de la plaza y los diarios de la fecha, y guarda el
// nuevo diario. El registro del día también se borra para que la siguiente
// aplicación de puntajes lo recalcule.
func (s *DiaryService) Replace(ctx context.Context, userID string, input ReplaceInput) (domain.Diary, error) {
	if strings.TrimSpace(input.Date) == "" || strings.TrimSpace(input.NewDiary.Date) == "" {
		return domain.Diary{}, ErrDiaryInvalid
	}

	split := emotion.Classify(input.OldEmotionScores, nil)
	if split.Positive > 0 {
		if _, err := s.garden.SubtractTree(ctx, userID, split.Positive); err != nil {
			return domain.Diary{}, err
		}
	}
	if split.Negative > 0 {
		if _, err := s.garden.SubtractWell(ctx, userID, split.Negative); err != nil {
			return domain.Diary{}, err
		}
	}

	if err := s.plazas.DeleteByDate(ctx, userID, input.Date); err != nil {
		return domain.Diary{}, err
	}
	if err := s.diaries.DeleteByDate(ctx, userID, input.Date); err != nil {
		return domain.Diary{}, err
	}
	if err := s.garden.ClearDaySummary(ctx, userID, input.Date); err != nil {
		s.logger.Warn("day summary clear failed", zap.Error(err), zap.String("date", input.Date))
	}

	return s.Save(ctx, userID, input.NewDiary)
}
