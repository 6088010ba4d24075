package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"moodtown/internal/service"
)

// ChatHandler mantiene dependencias para el chat con los vecinos.
type ChatHandler struct {
	logger *zap.Logger
	chat   *service.ChatService
}

func NewChatHandler(logger *zap.Logger, chat *service.ChatService) *ChatHandler {
	return &ChatHandler{
		logger: logger,
		chat:   chat,
	}
}

// Chat maneja POST /chat.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req struct {
		Message      string   `json:"message" binding:"required"`
		Characters   []string `json:"characters" binding:"required"`
		Date         string   `json:"date"`
		DiaryContent string   `json:"diary_content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message and characters required"})
		return
	}

	reply, err := h.chat.Chat(c.Request.Context(), sessionUserID(c), service.ChatInput{
		Message:      req.Message,
		Characters:   req.Characters,
		Date:         req.Date,
		DiaryContent: req.DiaryContent,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrChatMessageEmpty),
			errors.Is(err, service.ErrChatNoCharacters):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		default:
			h.logger.Error("chat failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not chat"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"reply": reply})
}
