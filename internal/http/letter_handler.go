package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"moodtown/internal/domain"
	"moodtown/internal/service"
)

// LetterHandler mantiene dependencias para el buzón.
type LetterHandler struct {
	logger  *zap.Logger
	letters *service.LetterService
}

func NewLetterHandler(logger *zap.Logger, letters *service.LetterService) *LetterHandler {
	return &LetterHandler{
		logger:  logger,
		letters: letters,
	}
}

// List maneja GET /api/letters.
func (h *LetterHandler) List(c *gin.Context) {
	letters, err := h.letters.List(c.Request.Context(), sessionUserID(c))
	if err != nil {
		h.logger.Error("list letters failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list letters"})
		return
	}
	if letters == nil {
		letters = []domain.Letter{}
	}
	c.JSON(http.StatusOK, letters)
}

// Add maneja POST /api/letters.
func (h *LetterHandler) Add(c *gin.Context) {
	var req domain.Letter
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	letter, err := h.letters.Add(c.Request.Context(), sessionUserID(c), req)
	if err != nil {
		h.logger.Error("add letter failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save letter"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "letter": letter})
}

// MarkRead maneja POST /api/letters/:id/read.
func (h *LetterHandler) MarkRead(c *gin.Context) {
	err := h.letters.MarkRead(c.Request.Context(), sessionUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrLetterNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "letter not found"})
			return
		}
		h.logger.Error("mark letter read failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not mark letter"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Delete maneja DELETE /api/letters/:id.
func (h *LetterHandler) Delete(c *gin.Context) {
	err := h.letters.Delete(c.Request.Context(), sessionUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrLetterNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "letter not found"})
			return
		}
		h.logger.Error("delete letter failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete letter"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// UnreadCount maneja GET /api/letters/unread/count.
func (h *LetterHandler) UnreadCount(c *gin.Context) {
	count, err := h.letters.UnreadCount(c.Request.Context(), sessionUserID(c))
	if err != nil {
		h.logger.Error("unread count failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not count letters"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

// Generate maneja POST /api/letters/generate.
func (h *LetterHandler) Generate(c *gin.Context) {
	var req struct {
		Type          string               `json:"type" binding:"required"`
		EmotionScores domain.EmotionScores `json:"emotion_scores"`
		FruitCount    int                  `json:"fruit_count"`
		DiaryText     string               `json:"diary_text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type required"})
		return
	}

	switch req.Type {
	case domain.LetterTypeCelebration, domain.LetterTypeComfort,
		domain.LetterTypeCheer, domain.LetterTypeWellOverflow:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid letter type"})
		return
	}

	letter, err := h.letters.Generate(c.Request.Context(), sessionUserID(c), service.GenerateLetterInput{
		Type:          req.Type,
		EmotionScores: req.EmotionScores,
		FruitCount:    req.FruitCount,
		DiaryText:     req.DiaryText,
	})
	if err != nil {
		h.logger.Error("generate letter failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate letter"})
		return
	}
	c.JSON(http.StatusOK, letter)
}
