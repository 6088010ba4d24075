package domain

import "time"

// DialogueLine es una intervención de un vecino-emoción en la plaza.
// Character y Emotion siempre se normalizan cruzándolos con la tabla fija
// emoción ↔ vecino, de modo que cualquiera de los dos infiere al otro.
type DialogueLine struct {
	Character string `json:"character"`
	Emotion   string `json:"emotion"`
	Text      string `json:"text"`
}

// PlazaConversation es la conversación generada para una fecha.
type PlazaConversation struct {
	Date          string         `json:"date"`
	Conversation  []DialogueLine `json:"conversation"`
	EmotionScores EmotionScores  `json:"emotionScores"`
	CreatedAt     time.Time      `json:"createdAt"`
}
