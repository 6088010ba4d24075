package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TreeRepository persiste el estado del árbol por usuario. La etapa no se
// guarda: se deriva del crecimiento al leer.
type TreeRepository interface {
	GetState(ctx context.Context, userID string) (growth int, lastFruitDate *string, err error)
	SaveState(ctx context.Context, userID string, growth int, lastFruitDate *string) error
	GetFruitCount(ctx context.Context, userID string) (int, error)
	SaveFruitCount(ctx context.Context, userID string, count int) error
}

// WellRepository persiste el estado del pozo por usuario.
type WellRepository interface {
	GetState(ctx context.Context, userID string) (level int, overflowing bool, lastOverflowDate *string, err error)
	SaveState(ctx context.Context, userID string, level int, overflowing bool, lastOverflowDate *string) error
}

type PgTreeRepository struct {
	pool *pgxpool.Pool
}

func NewPgTreeRepository(pool *pgxpool.Pool) *PgTreeRepository {
	return &PgTreeRepository{pool: pool}
}

// GetState devuelve el estado del árbol; un usuario sin fila tiene el estado
// inicial (crecimiento 0, sin fruto).
func (r *PgTreeRepository) GetState(ctx context.Context, userID string) (int, *string, error) {
	const query = `
		SELECT growth, last_fruit_date
		FROM tree_states
		WHERE user_id = $1
	`
	var growth int
	var lastFruitDate *string
	err := r.pool.QueryRow(ctx, query, userID).Scan(&growth, &lastFruitDate)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil, nil
	}
	return growth, lastFruitDate, err
}

func (r *PgTreeRepository) SaveState(ctx context.Context, userID string, growth int, lastFruitDate *string) error {
	const query = `
		INSERT INTO tree_states (user_id, growth, last_fruit_date, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (user_id) DO UPDATE SET
			growth = EXCLUDED.growth,
			last_fruit_date = EXCLUDED.last_fruit_date,
			updated_at = now()
	`
	_, err := r.pool.Exec(ctx, query, userID, growth, lastFruitDate)
	return err
}

func (r *PgTreeRepository) GetFruitCount(ctx context.Context, userID string) (int, error) {
	const query = `SELECT count FROM tree_fruits WHERE user_id = $1`
	var count int
	err := r.pool.QueryRow(ctx, query, userID).Scan(&count)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, nil
	}
	return count, err
}

func (r *PgTreeRepository) SaveFruitCount(ctx context.Context, userID string, count int) error {
	const query = `
		INSERT INTO tree_fruits (user_id, count, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (user_id) DO UPDATE SET
			count = EXCLUDED.count,
			updated_at = now()
	`
	_, err := r.pool.Exec(ctx, query, userID, count)
	return err
}

type PgWellRepository struct {
	pool *pgxpool.Pool
}

func NewPgWellRepository(pool *pgxpool.Pool) *PgWellRepository {
	return &PgWellRepository{pool: pool}
}

func (r *PgWellRepository) GetState(ctx context.Context, userID string) (int, bool, *string, error) {
	const query = `
		SELECT water_level, is_overflowing, last_overflow_date
		FROM well_states
		WHERE user_id = $1
	`
	var level int
	var overflowing bool
	var lastOverflowDate *string
	err := r.pool.QueryRow(ctx, query, userID).Scan(&level, &overflowing, &lastOverflowDate)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, false, nil, nil
	}
	return level, overflowing, lastOverflowDate, err
}

func (r *PgWellRepository) SaveState(ctx context.Context, userID string, level int, overflowing bool, lastOverflowDate *string) error {
	const query = `
		INSERT INTO well_states (user_id, water_level, is_overflowing, last_overflow_date, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (user_id) DO UPDATE SET
			water_level = EXCLUDED.water_level,
			is_overflowing = EXCLUDED.is_overflowing,
			last_overflow_date = EXCLUDED.last_overflow_date,
			updated_at = now()
	`
	_, err := r.pool.Exec(ctx, query, userID, level, overflowing, lastOverflowDate)
	return err
}
