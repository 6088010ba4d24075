package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"moodtown/internal/domain"
	"moodtown/internal/service"
)

// GardenHandler mantiene dependencias para el árbol, el pozo y el resumen
// diario.
type GardenHandler struct {
	logger *zap.Logger
	garden *service.GardenService
}

func NewGardenHandler(logger *zap.Logger, garden *service.GardenService) *GardenHandler {
	return &GardenHandler{
		logger: logger,
		garden: garden,
	}
}

// TreeState maneja GET /api/tree/state.
func (h *GardenHandler) TreeState(c *gin.Context) {
	state, err := h.garden.TreeState(c.Request.Context(), sessionUserID(c))
	if err != nil {
		h.logger.Error("tree state failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load tree state"})
		return
	}
	c.JSON(http.StatusOK, state)
}

// SetTreeState maneja POST /api/tree/state. El campo stage del cliente se
// ignora: la etapa siempre se deriva del crecimiento.
func (h *GardenHandler) SetTreeState(c *gin.Context) {
	var req struct {
		Growth        int     `json:"growth"`
		LastFruitDate *string `json:"lastFruitDate"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	state, err := h.garden.SetTreeState(c.Request.Context(), sessionUserID(c), req.Growth, req.LastFruitDate)
	if err != nil {
		h.logger.Error("save tree state failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save tree state"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "state": state})
}

// Grow maneja POST /api/tree/grow.
func (h *GardenHandler) Grow(c *gin.Context) {
	var req struct {
		Date            string                 `json:"date"`
		PositiveScore   int                    `json:"positive_score"`
		EmotionScores   domain.EmotionScores   `json:"emotion_scores"`
		EmotionPolarity domain.EmotionPolarity `json:"emotion_polarity"`
		DiaryText       string                 `json:"diary_text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.PositiveScore < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "positive_score must be >= 0"})
		return
	}

	out, err := h.garden.Grow(c.Request.Context(), sessionUserID(c), service.GrowInput{
		Date:          req.Date,
		PositiveScore: req.PositiveScore,
		Scores:        req.EmotionScores,
		Polarity:      req.EmotionPolarity,
		DiaryText:     req.DiaryText,
	})
	if err != nil {
		h.logger.Error("tree grow failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not grow tree"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "result": out})
}

// SubtractTree maneja POST /api/tree/subtract.
func (h *GardenHandler) SubtractTree(c *gin.Context) {
	var req struct {
		Amount int `json:"amount"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	state, err := h.garden.SubtractTree(c.Request.Context(), sessionUserID(c), req.Amount)
	if err != nil {
		h.logger.Error("tree subtract failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update tree"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "growth": state.Growth, "stage": state.Stage})
}

// Fruits maneja GET /api/tree/fruits.
func (h *GardenHandler) Fruits(c *gin.Context) {
	count, err := h.garden.FruitCount(c.Request.Context(), sessionUserID(c))
	if err != nil {
		h.logger.Error("fruit count failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load fruit count"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// SetFruits maneja POST /api/tree/fruits.
func (h *GardenHandler) SetFruits(c *gin.Context) {
	var req struct {
		Count int `json:"count"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if err := h.garden.SetFruitCount(c.Request.Context(), sessionUserID(c), req.Count); err != nil {
		h.logger.Error("save fruit count failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save fruit count"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "count": req.Count})
}

// WellState maneja GET /api/well/state.
func (h *GardenHandler) WellState(c *gin.Context) {
	state, err := h.garden.WellState(c.Request.Context(), sessionUserID(c))
	if err != nil {
		h.logger.Error("well state failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load well state"})
		return
	}
	c.JSON(http.StatusOK, state)
}

// SetWellState maneja POST /api/well/state.
func (h *GardenHandler) SetWellState(c *gin.Context) {
	var req domain.WellState
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	state, err := h.garden.SetWellState(c.Request.Context(), sessionUserID(c), req)
	if err != nil {
		h.logger.Error("save well state failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save well state"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "state": state})
}

// Fill maneja POST /api/well/fill.
func (h *GardenHandler) Fill(c *gin.Context) {
	var req struct {
		Date            string                 `json:"date"`
		NegativeScore   int                    `json:"negative_score"`
		EmotionScores   domain.EmotionScores   `json:"emotion_scores"`
		EmotionPolarity domain.EmotionPolarity `json:"emotion_polarity"`
		DiaryText       string                 `json:"diary_text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.NegativeScore < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "negative_score must be >= 0"})
		return
	}

	out, err := h.garden.Fill(c.Request.Context(), sessionUserID(c), service.FillInput{
		Date:          req.Date,
		NegativeScore: req.NegativeScore,
		Scores:        req.EmotionScores,
		Polarity:      req.EmotionPolarity,
		DiaryText:     req.DiaryText,
	})
	if err != nil {
		h.logger.Error("well fill failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not fill well"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "result": out})
}

// SubtractWell maneja POST /api/well/subtract.
func (h *GardenHandler) SubtractWell(c *gin.Context) {
	var req struct {
		Amount int `json:"amount"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	state, err := h.garden.SubtractWell(c.Request.Context(), sessionUserID(c), req.Amount)
	if err != nil {
		h.logger.Error("well subtract failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update well"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"waterLevel":    state.WaterLevel,
		"isOverflowing": state.IsOverflowing,
	})
}

// ResetWell maneja POST /api/well/reset.
func (h *GardenHandler) ResetWell(c *gin.Context) {
	state, err := h.garden.ResetWell(c.Request.Context(), sessionUserID(c))
	if err != nil {
		h.logger.Error("well reset failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not reset well"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "state": state})
}

// DaySummary maneja GET /api/summary/:date.
func (h *GardenHandler) DaySummary(c *gin.Context) {
	summary, err := h.garden.DaySummary(c.Request.Context(), sessionUserID(c), c.Param("date"))
	if err != nil {
		if errors.Is(err, service.ErrSummaryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no summary for date"})
			return
		}
		h.logger.Error("day summary failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load summary"})
		return
	}
	c.JSON(http.StatusOK, summary)
}
