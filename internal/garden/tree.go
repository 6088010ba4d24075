package garden

import "moodtown/internal/domain"

// Etapas del árbol de la felicidad.
const (
	StageSeed = iota
	StageSprout
	StageSeedling
	StageMedium
	StageLarge
	StageFruit
)

// Puntaje positivo acumulado necesario para cada etapa.
var stageThresholds = [...]int{0, 40, 100, 220, 380, 600}

// FruitThreshold es el punto en que el árbol da fruto y se reinicia.
const FruitThreshold = 600

// WellReductionOnFruit es cuánto baja el pozo cuando el árbol da fruto.
const WellReductionOnFruit = 50

// StageFor deriva la etapa a partir del crecimiento. La etapa es una
// propiedad calculada: nunca se confía en un valor almacenado.
func StageFor(growth int) int {
	for stage := StageFruit; stage > StageSeed; stage-- {
		if growth >= stageThresholds[stage] {
			return stage
		}
	}
	return StageSeed
}

// PointsToNextStage devuelve cuánto falta para la siguiente etapa, o 0 si el
// árbol ya está en la etapa de fruto.
func PointsToNextStage(growth int) int {
	stage := StageFor(growth)
	if stage >= StageFruit {
		return 0
	}
	needed := stageThresholds[stage+1] - growth
	if needed < 0 {
		return 0
	}
	return needed
}

// StageProgress devuelve el avance dentro de la etapa actual, de 0 a 100.
func StageProgress(growth int) float64 {
	stage := StageFor(growth)
	if stage >= StageFruit {
		return 100
	}
	lo, hi := stageThresholds[stage], stageThresholds[stage+1]
	progress := float64(growth-lo) / float64(hi-lo) * 100
	if progress < 0 {
		return 0
	}
	if progress > 100 {
		return 100
	}
	return progress
}

// GrowTree aplica puntaje positivo al árbol. Si el día es puramente positivo
// se añade un 25% de bonificación. Al alcanzar el umbral de fruto el
// crecimiento vuelve exactamente a 0: el excedente se descarta, no se
// arrastra al siguiente ciclo.
func GrowTree(growth, positiveScore int, scores domain.EmotionScores, polarity domain.EmotionPolarity) domain.GrowthResult {
	bonus := 0
	if IsPurePositive(scores, polarity) {
		bonus = positiveScore * 25 / 100
	}

	newGrowth := growth + positiveScore + bonus
	if newGrowth >= FruitThreshold {
		return domain.GrowthResult{
			Growth:        0,
			Stage:         StageSeed,
			FruitProduced: true,
			BonusScore:    bonus,
		}
	}

	return domain.GrowthResult{
		Growth:     newGrowth,
		Stage:      StageFor(newGrowth),
		BonusScore: bonus,
	}
}

// SubtractGrowth reduce el crecimiento sin dejarlo negativo y recalcula la
// etapa. Se usa al deshacer el efecto de un diario reemplazado.
func SubtractGrowth(growth, amount int) (int, int) {
	newGrowth := growth - amount
	if newGrowth < 0 {
		newGrowth = 0
	}
	return newGrowth, StageFor(newGrowth)
}
