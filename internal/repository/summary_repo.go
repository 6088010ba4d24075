package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"moodtown/internal/domain"
)

// SummaryRepository persiste el resumen autoritativo por fecha: qué tipo de
// bonificación se aplicó y cuánto. Una sola fila por fecha, por lo que la
// exclusión mutua entre bonificación de árbol y de pozo es estructural.
type SummaryRepository interface {
	Upsert(ctx context.Context, userID string, summary domain.DaySummary) error
	GetByDate(ctx context.Context, userID, date string) (domain.DaySummary, error)
	DeleteByDate(ctx context.Context, userID, date string) error
}

type PgSummaryRepository struct {
	pool *pgxpool.Pool
}

func NewPgSummaryRepository(pool *pgxpool.Pool) *PgSummaryRepository {
	return &PgSummaryRepository{pool: pool}
}

func (r *PgSummaryRepository) Upsert(ctx context.Context, userID string, summary domain.DaySummary) error {
	const query = `
		INSERT INTO day_summaries (user_id, date, bonus_type, bonus_score, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, date) DO UPDATE SET
			bonus_type = EXCLUDED.bonus_type,
			bonus_score = EXCLUDED.bonus_score,
			created_at = EXCLUDED.created_at
	`
	_, err := r.pool.Exec(ctx, query, userID, summary.Date, string(summary.BonusType), summary.BonusScore, summary.CreatedAt)
	return err
}

func (r *PgSummaryRepository) GetByDate(ctx context.Context, userID, date string) (domain.DaySummary, error) {
	const query = `
		SELECT date, bonus_type, bonus_score, created_at
		FROM day_summaries
		WHERE user_id = $1 AND date = $2
	`
	var s domain.DaySummary
	var bonusType string
	err := r.pool.QueryRow(ctx, query, userID, date).Scan(&s.Date, &bonusType, &s.BonusScore, &s.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.DaySummary{}, ErrNotFound
	}
	s.BonusType = domain.BonusType(bonusType)
	return s, err
}

func (r *PgSummaryRepository) DeleteByDate(ctx context.Context, userID, date string) error {
	const query = `DELETE FROM day_summaries WHERE user_id = $1 AND date = $2`
	_, err := r.pool.Exec(ctx, query, userID, date)
	return err
}
