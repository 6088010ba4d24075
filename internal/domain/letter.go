package domain

import "time"

// Tipos de carta que generan los vecinos del pueblo.
const (
	LetterTypeNormal       = "normal"
	LetterTypeCelebration  = "celebration"
	LetterTypeComfort      = "comfort"
	LetterTypeCheer        = "cheer"
	LetterTypeWellOverflow = "well_overflow"
)

// Letter es una carta del buzón.
type Letter struct {
	ID        string    `json:"id"`
	UserID    string    `json:"-"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	From      string    `json:"from"`
	Date      string    `json:"date"`
	Type      string    `json:"type"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}
