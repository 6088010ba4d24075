package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"moodtown/internal/service"
)

// AnalysisHandler mantiene dependencias para los endpoints de análisis.
type AnalysisHandler struct {
	logger   *zap.Logger
	analysis *service.AnalysisService
	plaza    *service.PlazaService
	limiter  service.RateLimiter
}

func NewAnalysisHandler(logger *zap.Logger, analysis *service.AnalysisService, plaza *service.PlazaService, limiter service.RateLimiter) *AnalysisHandler {
	return &AnalysisHandler{
		logger:   logger,
		analysis: analysis,
		plaza:    plaza,
		limiter:  limiter,
	}
}

func (h *AnalysisHandler) allow(c *gin.Context) bool {
	if h.limiter == nil {
		return true
	}
	key := sessionUserID(c)
	if key == "" {
		key = c.ClientIP()
	}
	if h.limiter.Allow(key) {
		return true
	}
	c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
	return false
}

// Analyze maneja POST /analyze: análisis de emociones + diálogo de la plaza.
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content required"})
		return
	}
	if !h.allow(c) {
		return
	}

	result := h.analysis.Analyze(c.Request.Context(), req.Content)

	dialogueText, err := h.plaza.GenerateDialogue(c.Request.Context(), req.Content, result.TopEmotions)
	if err != nil {
		h.logger.Warn("dialogue generation failed", zap.Error(err))
		dialogueText = ""
	}

	c.JSON(http.StatusOK, gin.H{
		"emotion_result":  result,
		"openai_dialogue": dialogueText,
	})
}

// AnalyzeV2 maneja POST /analyze2 con modos "ml" y "gpt". El modo ml corre el
// clasificador local y nunca toca estado del servidor.
func (h *AnalysisHandler) AnalyzeV2(c *gin.Context) {
	var req struct {
		Content string `json:"content" binding:"required"`
		Mode    string `json:"mode"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content required"})
		return
	}
	if req.Mode == "" {
		req.Mode = "gpt"
	}

	switch req.Mode {
	case "ml":
		label, scores := h.analysis.AnalyzeLocal(req.Content)
		c.JSON(http.StatusOK, gin.H{
			"mode":   "ml",
			"result": gin.H{"label": label, "scores": scores},
			"meta":   gin.H{"source": "local-ml", "persisted": false},
		})
	case "gpt":
		if !h.allow(c) {
			return
		}
		result := h.analysis.Analyze(c.Request.Context(), req.Content)
		dialogueText, err := h.plaza.GenerateDialogue(c.Request.Context(), req.Content, result.TopEmotions)
		if err != nil {
			h.logger.Warn("dialogue generation failed", zap.Error(err))
			dialogueText = ""
		}
		c.JSON(http.StatusOK, gin.H{
			"mode":            "gpt",
			"emotion_result":  result,
			"openai_dialogue": dialogueText,
			"meta":            gin.H{"source": "gpt", "persisted": false},
		})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid mode"})
	}
}
