package domain

import "time"

// Diary es una entrada de diario con su análisis de emociones ya asociado.
type Diary struct {
	ID              string          `json:"id"`
	UserID          string          `json:"-"`
	Date            string          `json:"date"`
	Title           string          `json:"title"`
	Content         string          `json:"content"`
	Emotions        []string        `json:"emotions"`
	EmotionScores   EmotionScores   `json:"emotion_scores"`
	EmotionPolarity EmotionPolarity `json:"emotion_polarity,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt,omitempty"`
}

// SimilarDiary es un resultado de búsqueda por similitud.
type SimilarDiary struct {
	Diary      Diary   `json:"diary"`
	Similarity float64 `json:"similarity"`
}
