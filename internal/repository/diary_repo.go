package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgvector "github.com/pgvector/pgvector-go"

	"moodtown/internal/domain"
)

// DiaryRepository define el contrato de persistencia para diarios.
type DiaryRepository interface {
	Save(ctx context.Context, diary domain.Diary) error
	ListAll(ctx context.Context, userID string) ([]domain.Diary, error)
	ListByDate(ctx context.Context, userID, date string) ([]domain.Diary, error)
	GetByID(ctx context.Context, userID, id string) (domain.Diary, error)
	Delete(ctx context.Context, userID, id string) error
	DeleteByDate(ctx context.Context, userID, date string) error
	SaveEmbedding(ctx context.Context, userID, id string, embedding pgvector.Vector) error
	SearchByEmbedding(ctx context.Context, userID string, query pgvector.Vector, k int) ([]domain.Diary, []float64, error)
	CountEmbedded(ctx context.Context, userID string) (int, error)
}

// PgDiaryRepository implementa DiaryRepository usando pgxpool. Los puntajes y
// la polaridad se guardan como JSONB; el embedding del contenido como vector.
type PgDiaryRepository struct {
	pool *pgxpool.Pool
}

func NewPgDiaryRepository(pool *pgxpool.Pool) *PgDiaryRepository {
	return &PgDiaryRepository{pool: pool}
}

const diaryColumns = `id, user_id, date, title, content, emotions, emotion_scores, emotion_polarity, created_at, updated_at`

func (r *PgDiaryRepository) Save(ctx context.Context, diary domain.Diary) error {
	const query = `
		INSERT INTO diaries (id, user_id, date, title, content, emotions, emotion_scores, emotion_polarity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			date = EXCLUDED.date,
			title = EXCLUDED.title,
			content = EXCLUDED.content,
			emotions = EXCLUDED.emotions,
			emotion_scores = EXCLUDED.emotion_scores,
			emotion_polarity = EXCLUDED.emotion_polarity,
			updated_at = EXCLUDED.updated_at
	`
	emotions, err := json.Marshal(diary.Emotions)
	if err != nil {
		return err
	}
	scores, err := json.Marshal(diary.EmotionScores)
	if err != nil {
		return err
	}
	polarity, err := json.Marshal(diary.EmotionPolarity)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, query,
		diary.ID,
		diary.UserID,
		diary.Date,
		diary.Title,
		diary.Content,
		emotions,
		scores,
		polarity,
		diary.CreatedAt,
		diary.UpdatedAt,
	)
	return err
}

func (r *PgDiaryRepository) ListAll(ctx context.Context, userID string) ([]domain.Diary, error) {
	const query = `
		SELECT ` + diaryColumns + `
		FROM diaries
		WHERE user_id = $1
		ORDER BY date DESC, created_at DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDiaries(rows)
}

func (r *PgDiaryRepository) ListByDate(ctx context.Context, userID, date string) ([]domain.Diary, error) {
	const query = `
		SELECT ` + diaryColumns + `
		FROM diaries
		WHERE user_id = $1 AND date = $2
		ORDER BY created_at ASC
	`
	rows, err := r.pool.Query(ctx, query, userID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanDiaries(rows)
}

func (r *PgDiaryRepository) GetByID(ctx context.Context, userID, id string) (domain.Diary, error) {
	const query = `
		SELECT ` + diaryColumns + `
		FROM diaries
		WHERE user_id = $1 AND id = $2
	`
	rows, err := r.pool.Query(ctx, query, userID, id)
	if err != nil {
		return domain.Diary{}, err
	}
	defer rows.Close()

	diaries, err := scanDiaries(rows)
	if err != nil {
		return domain.Diary{}, err
	}
	if len(diaries) == 0 {
		return domain.Diary{}, ErrNotFound
	}
	return diaries[0], nil
}

func (r *PgDiaryRepository) Delete(ctx context.Context, userID, id string) error {
	const query = `DELETE FROM diaries WHERE user_id = $1 AND id = $2`
	tag, err := r.pool.Exec(ctx, query, userID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PgDiaryRepository) DeleteByDate(ctx context.Context, userID, date string) error {
	const query = `DELETE FROM diaries WHERE user_id = $1 AND date = $2`
	_, err := r.pool.Exec(ctx, query, userID, date)
	return err
}

func (r *PgDiaryRepository) SaveEmbedding(ctx context.Context, userID, id string, embedding pgvector.Vector) error {
	const query = `UPDATE diaries SET embedding = $3 WHERE user_id = $1 AND id = $2`
	_, err := r.pool.Exec(ctx, query, userID, id, embedding)
	return err
}

// SearchByEmbedding devuelve los k diarios más cercanos por distancia coseno
// junto a su similitud (1 − distancia).
func (r *PgDiaryRepository) SearchByEmbedding(ctx context.Context, userID string, queryVec pgvector.Vector, k int) ([]domain.Diary, []float64, error) {
	if k <= 0 {
		k = 5
	}
	const query = `
		SELECT ` + diaryColumns + `, embedding <=> $2 AS distance
		FROM diaries
		WHERE user_id = $1 AND embedding IS NOT NULL
		ORDER BY embedding <=> $2
		LIMIT $3
	`
	rows, err := r.pool.Query(ctx, query, userID, queryVec, k)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var diaries []domain.Diary
	var similarities []float64
	for rows.Next() {
		diary, distance, err := scanDiaryWithDistance(rows)
		if err != nil {
			return nil, nil, err
		}
		diaries = append(diaries, diary)
		similarities = append(similarities, 1-distance)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	return diaries, similarities, nil
}

func (r *PgDiaryRepository) CountEmbedded(ctx context.Context, userID string) (int, error) {
	const query = `SELECT COUNT(*) FROM diaries WHERE user_id = $1 AND embedding IS NOT NULL`
	var count int
	err := r.pool.QueryRow(ctx, query, userID).Scan(&count)
	return count, err
}

func scanDiaries(rows pgx.Rows) ([]domain.Diary, error) {
	var diaries []domain.Diary
	for rows.Next() {
		diary, err := scanDiary(rows)
		if err != nil {
			return nil, err
		}
		diaries = append(diaries, diary)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return diaries, nil
}

func scanDiary(rows pgx.Rows) (domain.Diary, error) {
	var d domain.Diary
	var emotions, scores, polarity []byte
	if err := rows.Scan(
		&d.ID,
		&d.UserID,
		&d.Date,
		&d.Title,
		&d.Content,
		&emotions,
		&scores,
		&polarity,
		&d.CreatedAt,
		&d.UpdatedAt,
	); err != nil {
		return domain.Diary{}, err
	}
	return decodeDiaryJSON(d, emotions, scores, polarity)
}

func scanDiaryWithDistance(rows pgx.Rows) (domain.Diary, float64, error) {
	var d domain.Diary
	var emotions, scores, polarity []byte
	var distance float64
	if err := rows.Scan(
		&d.ID,
		&d.UserID,
		&d.Date,
		&d.Title,
		&d.Content,
		&emotions,
		&scores,
		&polarity,
		&d.CreatedAt,
		&d.UpdatedAt,
		&distance,
	); err != nil {
		return domain.Diary{}, 0, err
	}
	d, err := decodeDiaryJSON(d, emotions, scores, polarity)
	return d, distance, err
}

// decodeDiaryJSON tolera JSON corrupto en columnas secundarias: un payload
// ilegible se descarta en vez de romper la lectura completa.
func decodeDiaryJSON(d domain.Diary, emotions, scores, polarity []byte) (domain.Diary, error) {
	if len(emotions) > 0 {
		if err := json.Unmarshal(emotions, &d.Emotions); err != nil {
			d.Emotions = nil
		}
	}
	if len(scores) > 0 {
		if err := json.Unmarshal(scores, &d.EmotionScores); err != nil {
			d.EmotionScores = nil
		}
	}
	if len(polarity) > 0 {
		if err := json.Unmarshal(polarity, &d.EmotionPolarity); err != nil {
			d.EmotionPolarity = nil
		}
	}
	return d, nil
}
