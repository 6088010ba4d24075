package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"moodtown/internal/domain"
	"moodtown/internal/service"
)

// PlazaHandler mantiene dependencias para las conversaciones de la plaza.
type PlazaHandler struct {
	logger *zap.Logger
	plaza  *service.PlazaService
}

func NewPlazaHandler(logger *zap.Logger, plaza *service.PlazaService) *PlazaHandler {
	return &PlazaHandler{
		logger: logger,
		plaza:  plaza,
	}
}

// GetByDate maneja GET /api/plaza/conversations/:date.
func (h *PlazaHandler) GetByDate(c *gin.Context) {
	conv, err := h.plaza.GetByDate(c.Request.Context(), sessionUserID(c), c.Param("date"))
	if err != nil {
		if errors.Is(err, service.ErrConversationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no conversation for date"})
			return
		}
		h.logger.Error("get plaza conversation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load conversation"})
		return
	}
	c.JSON(http.StatusOK, conv)
}

// Save maneja POST /api/plaza/conversations.
func (h *PlazaHandler) Save(c *gin.Context) {
	var req struct {
		Date          string                `json:"date" binding:"required"`
		Conversation  []domain.DialogueLine `json:"conversation"`
		EmotionScores domain.EmotionScores  `json:"emotionScores"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date required"})
		return
	}

	err := h.plaza.Save(c.Request.Context(), sessionUserID(c), domain.PlazaConversation{
		Date:          req.Date,
		Conversation:  req.Conversation,
		EmotionScores: req.EmotionScores,
	})
	if err != nil {
		h.logger.Error("save plaza conversation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save conversation"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
