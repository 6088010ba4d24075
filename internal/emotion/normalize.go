package emotion

import "moodtown/internal/domain"

// Normalize convierte puntajes crudos (escala 0–1 o 0–100, claves parciales)
// en una distribución entera sobre las 7 emociones canónicas que suma
// exactamente 100. Nunca falla: entrada vacía o toda en cero produce una
// distribución uniforme.
func Normalize(raw map[string]float64) domain.EmotionScores {
	scaled := make(map[string]float64, len(domain.EmotionKeys))
	for _, key := range domain.EmotionKeys {
		v := raw[key]
		switch {
		case v >= 0 && v <= 1:
			scaled[key] = v * 100
		case v > 1 && v <= 100:
			scaled[key] = v
		default:
			// Valores negativos o fuera de rango se descartan.
			scaled[key] = 0
		}
	}

	var total float64
	for _, v := range scaled {
		total += v
	}
	if total == 0 {
		// Distribución uniforme por la misma vía de redondeo, para que la
		// suma entera siga siendo 100.
		for _, key := range domain.EmotionKeys {
			scaled[key] = 1
		}
		total = float64(len(domain.EmotionKeys))
	}

	normalized := make(domain.EmotionScores, len(domain.EmotionKeys))
	sum := 0
	for _, key := range domain.EmotionKeys {
		v := int(scaled[key] / total * 100)
		normalized[key] = v
		sum += v
	}

	// El residuo del truncamiento se asigna a la entrada más grande para
	// garantizar suma exacta de 100.
	if residual := 100 - sum; residual != 0 {
		largest := domain.EmotionKeys[0]
		for _, key := range domain.EmotionKeys[1:] {
			if normalized[key] > normalized[largest] {
				largest = key
			}
		}
		normalized[largest] += residual
	}

	return normalized
}
