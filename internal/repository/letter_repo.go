package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"moodtown/internal/domain"
)

// LetterRepository define el contrato de persistencia para el buzón.
type LetterRepository interface {
	Create(ctx context.Context, letter domain.Letter) error
	ListAll(ctx context.Context, userID string) ([]domain.Letter, error)
	MarkRead(ctx context.Context, userID, id string) error
	Delete(ctx context.Context, userID, id string) error
	UnreadCount(ctx context.Context, userID string) (int, error)
}

type PgLetterRepository struct {
	pool *pgxpool.Pool
}

func NewPgLetterRepository(pool *pgxpool.Pool) *PgLetterRepository {
	return &PgLetterRepository{pool: pool}
}

func (r *PgLetterRepository) Create(ctx context.Context, letter domain.Letter) error {
	const query = `
		INSERT INTO letters (id, user_id, title, content, sender, date, type, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.pool.Exec(ctx, query,
		letter.ID,
		letter.UserID,
		letter.Title,
		letter.Content,
		letter.From,
		letter.Date,
		letter.Type,
		letter.IsRead,
		letter.CreatedAt,
	)
	return err
}

func (r *PgLetterRepository) ListAll(ctx context.Context, userID string) ([]domain.Letter, error) {
	const query = `
		SELECT id, title, content, sender, date, type, is_read, created_at
		FROM letters
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var letters []domain.Letter
	for rows.Next() {
		var l domain.Letter
		if err := rows.Scan(
			&l.ID,
			&l.Title,
			&l.Content,
			&l.From,
			&l.Date,
			&l.Type,
			&l.IsRead,
			&l.CreatedAt,
		); err != nil {
			return nil, err
		}
		l.UserID = userID
		letters = append(letters, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return letters, nil
}

func (r *PgLetterRepository) MarkRead(ctx context.Context, userID, id string) error {
	const query = `UPDATE letters SET is_read = true WHERE user_id = $1 AND id = $2`
	tag, err := r.pool.Exec(ctx, query, userID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgLetterRepository) Delete(ctx context.Context, userID, id string) error {
	const query = `DELETE FROM letters WHERE user_id = $1 AND id = $2`
	tag, err := r.pool.Exec(ctx, query, userID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgLetterRepository) UnreadCount(ctx context.Context, userID string) (int, error) {
	const query = `SELECT COUNT(*) FROM letters WHERE user_id = $1 AND NOT is_read`
	var count int
	err := r.pool.QueryRow(ctx, query, userID).Scan(&count)
	return count, err
}
