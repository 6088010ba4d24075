package garden

import "moodtown/internal/domain"

// WellCapacity es el techo del pozo: el nivel se acota aquí y el estado de
// desborde es exactamente nivel >= capacidad.
const WellCapacity = 500

// NoNegativeReduction es cuánto baja el pozo en un día sin emociones
// negativas apreciables.
const NoNegativeReduction = 30

// NegligibleNegative es la tolerancia bajo la cual un total negativo se
// considera "sin emociones negativas".
const NegligibleNegative = 5

// FillWell aplica puntaje negativo al pozo. Un día puramente negativo añade
// un 25% de bonificación. El nivel se acota a la capacidad y Overflowed solo
// es true en el cruce ascendente del umbral.
func FillWell(level int, wasOverflowing bool, negativeScore int, scores domain.EmotionScores, polarity domain.EmotionPolarity) domain.FillResult {
	bonus := 0
	if IsPureNegative(scores, polarity) {
		bonus = negativeScore * 25 / 100
	}

	newLevel := level + negativeScore + bonus
	result := domain.FillResult{BonusScore: bonus}
	if newLevel >= WellCapacity {
		result.WaterLevel = WellCapacity
		result.IsOverflowing = true
		result.Overflowed = !wasOverflowing
	} else {
		result.WaterLevel = newLevel
	}
	return result
}

// ReduceWell baja el nivel sin dejarlo negativo y recalcula el desborde.
func ReduceWell(level, amount int) domain.ReduceResult {
	newLevel := level - amount
	if newLevel < 0 {
		newLevel = 0
	}
	return domain.ReduceResult{
		WaterLevel:    newLevel,
		IsOverflowing: newLevel >= WellCapacity,
		ReducedAmount: level - newLevel,
	}
}

// WaterLevelPercent devuelve el nivel como porcentaje de la capacidad.
func WaterLevelPercent(level int) float64 {
	percent := float64(level) / WellCapacity * 100
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}
