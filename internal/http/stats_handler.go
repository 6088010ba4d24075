package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"moodtown/internal/service"
)

// StatsHandler mantiene dependencias para las estadísticas de la oficina.
type StatsHandler struct {
	logger *zap.Logger
	stats  *service.StatsService
}

func NewStatsHandler(logger *zap.Logger, stats *service.StatsService) *StatsHandler {
	return &StatsHandler{
		logger: logger,
		stats:  stats,
	}
}

// Office maneja GET /api/stats/office.
func (h *StatsHandler) Office(c *gin.Context) {
	stats, err := h.stats.Office(c.Request.Context(), sessionUserID(c), time.Now())
	if err != nil {
		h.logger.Error("office stats failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
