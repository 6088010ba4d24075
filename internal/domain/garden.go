package domain

import "time"

// TreeState es el estado del árbol de la felicidad. Stage nunca se persiste:
// se deriva siempre de Growth al leer.
type TreeState struct {
	Growth        int     `json:"growth"`
	Stage         int     `json:"stage"`
	LastFruitDate *string `json:"lastFruitDate"`
}

// WellState es el estado del pozo de estrés.
type WellState struct {
	WaterLevel       int     `json:"waterLevel"`
	IsOverflowing    bool    `json:"isOverflowing"`
	LastOverflowDate *string `json:"lastOverflowDate"`
}

// GrowthResult es el resultado de aplicar puntaje positivo al árbol.
type GrowthResult struct {
	Growth        int  `json:"growth"`
	Stage         int  `json:"stage"`
	FruitProduced bool `json:"fruitProduced"`
	BonusScore    int  `json:"bonusScore"`
}

// FillResult es el resultado de aplicar puntaje negativo al pozo.
type FillResult struct {
	WaterLevel    int  `json:"waterLevel"`
	IsOverflowing bool `json:"isOverflowing"`
	Overflowed    bool `json:"overflowed"`
	BonusScore    int  `json:"bonusScore"`
}

// ReduceResult es el resultado de reducir el nivel de agua del pozo.
type ReduceResult struct {
	WaterLevel    int  `json:"waterLevel"`
	IsOverflowing bool `json:"isOverflowing"`
	ReducedAmount int  `json:"reducedAmount"`
}

// BonusType identifica qué bonificación (si hubo) se aplicó en una fecha.
// Por construcción solo puede existir una por fecha.
type BonusType string

const (
	BonusNone        BonusType = "none"
	BonusTree        BonusType = "tree"
	BonusWell        BonusType = "well"
	BonusWellReduced BonusType = "well_reduced"
)

// DaySummary es el registro autoritativo por fecha de la bonificación del día.
// Reemplaza los registros efímeros del cliente: una sola fila por fecha, sin
// reconstrucción ni invalidación cruzada.
type DaySummary struct {
	Date       string    `json:"date"`
	BonusType  BonusType `json:"bonusType"`
	BonusScore int       `json:"bonusScore"`
	CreatedAt  time.Time `json:"createdAt"`
}
