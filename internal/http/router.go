package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"moodtown/internal/service"
)

// NewRouter configura el router de Gin con middlewares y todas las rutas.
func NewRouter(
	logger *zap.Logger,
	sessions *service.SessionService,
	authH *AuthHandler,
	analysisH *AnalysisHandler,
	chatH *ChatHandler,
	diaryH *DiaryHandler,
	gardenH *GardenHandler,
	letterH *LetterHandler,
	plazaH *PlazaHandler,
	statsH *StatsHandler,
) *gin.Engine {
	r := gin.New()

	// Middlewares básicos: logging, recovery y JSON content-type.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), jsonContentTypeMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// Análisis sin estado: no requiere sesión.
	r.POST("/analyze", analysisH.Analyze)
	r.POST("/analyze2", analysisH.AnalyzeV2)

	// El chat necesita identidad para el historial por usuario.
	r.POST("/chat", SessionAuthMiddleware(sessions), chatH.Chat)

	auth := r.Group("/api/auth")
	auth.POST("/register", authH.Register)
	auth.POST("/login", authH.Login)
	auth.POST("/logout", authH.Logout)
	auth.GET("/me", authH.Me)

	api := r.Group("/api", SessionAuthMiddleware(sessions))

	api.GET("/diaries", diaryH.List)
	api.POST("/diaries", diaryH.Create)
	api.POST("/diaries/replace", diaryH.Replace)
	api.POST("/diaries/similar", diaryH.SimilarByText)
	api.GET("/diaries/:id", diaryH.Get)
	api.DELETE("/diaries/:id", diaryH.Delete)
	api.GET("/diaries/:id/similar", diaryH.SimilarByID)

	api.GET("/tree/state", gardenH.TreeState)
	api.POST("/tree/state", gardenH.SetTreeState)
	api.POST("/tree/grow", gardenH.Grow)
	api.POST("/tree/subtract", gardenH.SubtractTree)
	api.GET("/tree/fruits", gardenH.Fruits)
	api.POST("/tree/fruits", gardenH.SetFruits)

	api.GET("/well/state", gardenH.WellState)
	api.POST("/well/state", gardenH.SetWellState)
	api.POST("/well/fill", gardenH.Fill)
	api.POST("/well/subtract", gardenH.SubtractWell)
	api.POST("/well/reset", gardenH.ResetWell)

	api.GET("/summary/:date", gardenH.DaySummary)

	api.GET("/letters", letterH.List)
	api.POST("/letters", letterH.Add)
	api.POST("/letters/generate", letterH.Generate)
	api.GET("/letters/unread/count", letterH.UnreadCount)
	api.POST("/letters/:id/read", letterH.MarkRead)
	api.DELETE("/letters/:id", letterH.Delete)

	api.GET("/plaza/conversations/:date", plazaH.GetByDate)
	api.POST("/plaza/conversations", plazaH.Save)

	api.GET("/stats/office", statsH.Office)

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
