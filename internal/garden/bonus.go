package garden

import "moodtown/internal/domain"

// IsPurePositive decide si el día califica para la bonificación del árbol:
// hay 기쁨 o 사랑, ninguna emoción de polaridad fija negativa, y 놀람 o
// 부끄러움, si aparecen, están clasificadas como positivas.
func IsPurePositive(scores domain.EmotionScores, polarity domain.EmotionPolarity) bool {
	if scores == nil {
		return false
	}
	if scores[domain.EmotionJoy] == 0 && scores[domain.EmotionLove] == 0 {
		return false
	}
	if scores[domain.EmotionFear] > 0 || scores[domain.EmotionAnger] > 0 || scores[domain.EmotionSadness] > 0 {
		return false
	}
	if scores[domain.EmotionSurprise] > 0 && polarity[domain.EmotionSurprise] != domain.PolarityPositive {
		return false
	}
	if scores[domain.EmotionShame] > 0 && polarity[domain.EmotionShame] != domain.PolarityPositive {
		return false
	}
	return true
}

// IsPureNegative decide si el día califica para la bonificación del pozo:
// sin 기쁨 ni 사랑, con al menos una emoción de polaridad fija negativa, y
// 놀람 o 부끄러움 ausentes o clasificadas como negativas.
func IsPureNegative(scores domain.EmotionScores, polarity domain.EmotionPolarity) bool {
	if scores == nil {
		return false
	}
	if scores[domain.EmotionJoy] > 0 || scores[domain.EmotionLove] > 0 {
		return false
	}
	if scores[domain.EmotionAnger]+scores[domain.EmotionSadness]+scores[domain.EmotionFear] == 0 {
		return false
	}
	if scores[domain.EmotionSurprise] > 0 && polarity[domain.EmotionSurprise] != domain.PolarityNegative {
		return false
	}
	if scores[domain.EmotionShame] > 0 && polarity[domain.EmotionShame] != domain.PolarityNegative {
		return false
	}
	return true
}

// HasNoNegativeEmotions tolera un pequeño resto de ruido: la suma de las
// emociones negativas fijas debe quedar bajo el umbral NegligibleNegative.
func HasNoNegativeEmotions(scores domain.EmotionScores) bool {
	if scores == nil {
		return false
	}
	sum := scores[domain.EmotionAnger] + scores[domain.EmotionSadness] + scores[domain.EmotionFear]
	return sum <= NegligibleNegative
}
