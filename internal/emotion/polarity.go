package emotion

import "moodtown/internal/domain"

// Split es el total positivo y negativo de una distribución, en unidades
// crudas de puntaje (sin normalizar ni acotar).
type Split struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
}

// Classify separa los puntajes en totales positivo y negativo. Cinco emociones
// tienen polaridad fija; 놀람 y 부끄러움 solo aportan cuando la polaridad
// contextual los clasifica explícitamente; si falta, no cuentan para ninguno
// de los dos lados.
func Classify(scores domain.EmotionScores, polarity domain.EmotionPolarity) Split {
	split := Split{
		Positive: scores[domain.EmotionJoy] + scores[domain.EmotionLove],
		Negative: scores[domain.EmotionAnger] + scores[domain.EmotionSadness] + scores[domain.EmotionFear],
	}

	for _, key := range []string{domain.EmotionSurprise, domain.EmotionShame} {
		switch polarity[key] {
		case domain.PolarityPositive:
			split.Positive += scores[key]
		case domain.PolarityNegative:
			split.Negative += scores[key]
		}
	}

	return split
}
