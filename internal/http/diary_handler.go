package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"moodtown/internal/domain"
	"moodtown/internal/service"
)

// DiaryHandler mantiene dependencias para los endpoints de diarios.
type DiaryHandler struct {
	logger     *zap.Logger
	diaries    *service.DiaryService
	similarity *service.SimilarityService
}

func NewDiaryHandler(logger *zap.Logger, diaries *service.DiaryService, similarity *service.SimilarityService) *DiaryHandler {
	return &DiaryHandler{
		logger:     logger,
		diaries:    diaries,
		similarity: similarity,
	}
}

// List maneja GET /api/diaries con filtro opcional ?date=.
func (h *DiaryHandler) List(c *gin.Context) {
	diaries, err := h.diaries.List(c.Request.Context(), sessionUserID(c), c.Query("date"))
	if err != nil {
		h.logger.Error("list diaries failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list diaries"})
		return
	}
	if diaries == nil {
		diaries = []domain.Diary{}
	}
	c.JSON(http.StatusOK, diaries)
}

// Get maneja GET /api/diaries/:id.
func (h *DiaryHandler) Get(c *gin.Context) {
	diary, err := h.diaries.Get(c.Request.Context(), sessionUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrDiaryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "diary not found"})
			return
		}
		h.logger.Error("get diary failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not get diary"})
		return
	}
	c.JSON(http.StatusOK, diary)
}

// Create maneja POST /api/diaries.
func (h *DiaryHandler) Create(c *gin.Context) {
	var req domain.Diary
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	diary, err := h.diaries.Save(c.Request.Context(), sessionUserID(c), req)
	if err != nil {
		if errors.Is(err, service.ErrDiaryInvalid) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date required"})
			return
		}
		h.logger.Error("save diary failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save diary"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "diary": diary})
}

// Delete maneja DELETE /api/diaries/:id.
func (h *DiaryHandler) Delete(c *gin.Context) {
	err := h.diaries.Delete(c.Request.Context(), sessionUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrDiaryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "diary not found"})
			return
		}
		h.logger.Error("delete diary failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not delete diary"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Replace maneja POST /api/diaries/replace.
func (h *DiaryHandler) Replace(c *gin.Context) {
	var req struct {
		Date             string               `json:"date" binding:"required"`
		OldEmotionScores domain.EmotionScores `json:"old_emotion_scores"`
		NewDiary         domain.Diary         `json:"new_diary" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date and new_diary required"})
		return
	}

	diary, err := h.diaries.Replace(c.Request.Context(), sessionUserID(c), service.ReplaceInput{
		Date:             req.Date,
		OldEmotionScores: req.OldEmotionScores,
		NewDiary:         req.NewDiary,
	})
	if err != nil {
		if errors.Is(err, service.ErrDiaryInvalid) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date required"})
			return
		}
		h.logger.Error("replace diary failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not replace diary"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "diary": diary})
}

// SimilarByID maneja GET /api/diaries/:id/similar.
func (h *DiaryHandler) SimilarByID(c *gin.Context) {
	results, err := h.similarity.SimilarToDiary(c.Request.Context(), sessionUserID(c), c.Param("id"))
	h.respondSimilar(c, results, err)
}

// SimilarByText maneja POST /api/diaries/similar.
func (h *DiaryHandler) SimilarByText(c *gin.Context) {
	var req struct {
		Content       string               `json:"content" binding:"required"`
		EmotionScores domain.EmotionScores `json:"emotion_scores"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content required"})
		return
	}
	results, err := h.similarity.SimilarToText(c.Request.Context(), sessionUserID(c), req.Content, req.EmotionScores)
	h.respondSimilar(c, results, err)
}

func (h *DiaryHandler) respondSimilar(c *gin.Context, results []domain.SimilarDiary, err error) {
	if err != nil {
		switch {
		case errors.Is(err, service.ErrModelNotTrained):
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"success": false,
				"error":   "similarity index is empty",
				"hint":    "save a few diaries first so their embeddings can be indexed",
			})
			return
		case errors.Is(err, service.ErrDiaryNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "diary not found"})
			return
		case errors.Is(err, service.ErrDiaryInvalid):
			c.JSON(http.StatusBadRequest, gin.H{"error": "content required"})
			return
		default:
			h.logger.Error("similar diaries failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not search similar diaries"})
			return
		}
	}
	if results == nil {
		results = []domain.SimilarDiary{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "results": results})
}
