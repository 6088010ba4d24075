package repository

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"moodtown/internal/domain"
)

// PlazaRepository persiste la conversación de la plaza generada por fecha.
type PlazaRepository interface {
	GetByDate(ctx context.Context, userID, date string) (domain.PlazaConversation, error)
	Save(ctx context.Context, userID string, conv domain.PlazaConversation) error
	DeleteByDate(ctx context.Context, userID, date string) error
}

type PgPlazaRepository struct {
	pool *pgxpool.Pool
}

func NewPgPlazaRepository(pool *pgxpool.Pool) *PgPlazaRepository {
	return &PgPlazaRepository{pool: pool}
}

func (r *PgPlazaRepository) GetByDate(ctx context.Context, userID, date string) (domain.PlazaConversation, error) {
	const query = `
		SELECT date, conversation, emotion_scores, created_at
		FROM plaza_conversations
		WHERE user_id = $1 AND date = $2
	`
	var conv domain.PlazaConversation
	var lines, scores []byte
	err := r.pool.QueryRow(ctx, query, userID, date).Scan(
		&conv.Date,
		&lines,
		&scores,
		&conv.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.PlazaConversation{}, ErrNotFound
	}
	if err != nil {
		return domain.PlazaConversation{}, err
	}
	if len(lines) > 0 {
		if err := json.Unmarshal(lines, &conv.Conversation); err != nil {
			conv.Conversation = nil
		}
	}
	if len(scores) > 0 {
		if err := json.Unmarshal(scores, &conv.EmotionScores); err != nil {
			conv.EmotionScores = nil
		}
	}
	return conv, nil
}

func (r *PgPlazaRepository) Save(ctx context.Context, userID string, conv domain.PlazaConversation) error {
	const query = `
		INSERT INTO plaza_conversations (user_id, date, conversation, emotion_scores, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, date) DO UPDATE SET
			conversation = EXCLUDED.conversation,
			emotion_scores = EXCLUDED.emotion_scores
	`
	lines, err := json.Marshal(conv.Conversation)
	if err != nil {
		return err
	}
	scores, err := json.Marshal(conv.EmotionScores)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, query, userID, conv.Date, lines, scores, conv.CreatedAt)
	return err
}

func (r *PgPlazaRepository) DeleteByDate(ctx context.Context, userID, date string) error {
	const query = `DELETE FROM plaza_conversations WHERE user_id = $1 AND date = $2`
	_, err := r.pool.Exec(ctx, query, userID, date)
	return err
}
