package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"moodtown/internal/config"
	"moodtown/internal/db"
	"moodtown/internal/dialogue"
	apihttp "moodtown/internal/http"
	"moodtown/internal/llm"
	"moodtown/internal/repository"
	"moodtown/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	userRepo := repository.NewPgUserRepository(pool)
	diaryRepo := repository.NewPgDiaryRepository(pool)
	treeRepo := repository.NewPgTreeRepository(pool)
	wellRepo := repository.NewPgWellRepository(pool)
	letterRepo := repository.NewPgLetterRepository(pool)
	plazaRepo := repository.NewPgPlazaRepository(pool)
	summaryRepo := repository.NewPgSummaryRepository(pool)

	llmClient := llm.NewHTTPClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMEmbeddingModel, logger)

	var (
		analyzeLimiter service.RateLimiter = service.NewMemoryRateLimiter(time.Minute, 20)
		historyStore   service.ChatHistoryStore
		redisClient    *redis.Client
	)
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			analyzeLimiter = service.NewRedisRateLimiter(redisClient, time.Minute, 20)
			historyStore = service.NewRedisChatHistoryStore(redisClient, 24*time.Hour)
		}
		cancel()
	}

	if cfg.SessionSecret == "" {
		logger.Warn("session secret not configured")
	}
	sessionSvc := service.NewSessionService(cfg.SessionSecret, time.Duration(cfg.SessionTTLHours)*time.Hour)

	analysisSvc := service.NewAnalysisService(llmClient, logger)
	plazaSvc := service.NewPlazaService(llmClient, dialogue.ChainParser{}, plazaRepo, logger)
	letterSvc := service.NewLetterService(llmClient, letterRepo, logger)
	gardenSvc := service.NewGardenService(treeRepo, wellRepo, summaryRepo, letterSvc, logger)
	diarySvc := service.NewDiaryService(diaryRepo, plazaRepo, gardenSvc, llmClient, logger)
	similaritySvc := service.NewSimilarityService(diaryRepo, llmClient, logger)
	statsSvc := service.NewStatsService(diaryRepo)
	chatSvc := service.NewChatService(llmClient, historyStore, logger)
	userSvc := service.NewUserService(userRepo, logger)

	authHandler := apihttp.NewAuthHandler(logger, userSvc, sessionSvc, cfg.CookieSecure)
	analysisHandler := apihttp.NewAnalysisHandler(logger, analysisSvc, plazaSvc, analyzeLimiter)
	chatHandler := apihttp.NewChatHandler(logger, chatSvc)
	diaryHandler := apihttp.NewDiaryHandler(logger, diarySvc, similaritySvc)
	gardenHandler := apihttp.NewGardenHandler(logger, gardenSvc)
	letterHandler := apihttp.NewLetterHandler(logger, letterSvc)
	plazaHandler := apihttp.NewPlazaHandler(logger, plazaSvc)
	statsHandler := apihttp.NewStatsHandler(logger, statsSvc)

	router := apihttp.NewRouter(
		logger,
		sessionSvc,
		authHandler,
		analysisHandler,
		chatHandler,
		diaryHandler,
		gardenHandler,
		letterHandler,
		plazaHandler,
		statsHandler,
	)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
