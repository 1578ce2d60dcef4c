package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tereohoa/api/internal/cache"
	"github.com/tereohoa/api/internal/config"
	"github.com/tereohoa/api/internal/database"
	"github.com/tereohoa/api/internal/gemini"
	"github.com/tereohoa/api/internal/handler"
	"github.com/tereohoa/api/internal/middleware"
	"github.com/tereohoa/api/internal/repository"
	"github.com/tereohoa/api/internal/scheduler"
	"github.com/tereohoa/api/internal/service"
	"github.com/tereohoa/api/internal/session"
	"github.com/tereohoa/api/internal/tts"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger := newLogger(cfg.Env)
	defer logger.Sync()
	sugar := logger.Sugar()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Redis is fail-open: without it the word of the day is pinned in
	// process memory and quiz sessions live there too.
	redisCache, err := cache.NewRedisCache(cfg.RedisURL)
	if err != nil {
		sugar.Warnw("redis unavailable, continuing without cache", "error", err)
		redisCache = nil
	} else {
		defer redisCache.Close()
	}

	geminiClient, err := gemini.NewClient(cfg.GeminiAPIKeys, gemini.Options{
		Model:          cfg.GeminiModel,
		MaxRetries:     cfg.GeminiMaxRetries,
		ConnectTimeout: cfg.GeminiConnectTimeout,
		TotalTimeout:   cfg.GeminiTotalTimeout,
	}, sugar)
	if err != nil {
		log.Fatalf("Failed to initialize AI gateway: %v", err)
	}

	// Polly is also fail-open: words are still created without audio.
	var audioService *tts.Service
	synth, err := tts.NewPollySynthesizer(context.Background(), cfg.AWSRegion)
	if err != nil {
		sugar.Warnw("polly unavailable, continuing without audio", "error", err)
	} else {
		audioService, err = tts.NewService(synth, cfg.PollyVoice, cfg.AudioDir)
		if err != nil {
			sugar.Warnw("audio directory unavailable, continuing without audio", "error", err)
			audioService = nil
		}
	}

	userRepo := repository.NewUserRepository(db)
	wordRepo := repository.NewWordRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	newsRepo := repository.NewNewsRepository(db)

	var wotd service.WordOfTheDayCache
	var sessions session.Store = session.NewMemoryStore()
	if redisCache != nil {
		wotd = redisCache
		sessions = session.NewRedisStore(redisCache.Client())
	}

	var audio service.AudioGenerator
	if audioService != nil {
		audio = audioService
	}

	wordService := service.NewWordService(wordRepo, geminiClient, audio, wotd, sugar)
	progressService := service.NewProgressService(wordRepo, progressRepo, sugar)
	quizService := service.NewQuizService(wordRepo, progressRepo, sessions, sugar)
	newsService := service.NewNewsService(newsRepo, geminiClient, sugar)

	var newsScheduler *scheduler.Scheduler
	if cfg.SchedulerEnabled {
		newsScheduler, err = scheduler.New(newsService, cfg.SchedulerSpec, cfg.SchedulerTZ, sugar)
		if err != nil {
			sugar.Warnw("failed to initialize news scheduler", "error", err)
		} else {
			newsScheduler.Start()
			defer newsScheduler.Stop()
		}
	}

	googleConfig := &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleRedirectURL,
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint:     google.Endpoint,
	}

	authHandler := handler.NewAuthHandler(userRepo, cfg.JWTSecret, googleConfig, cfg.FrontendURL, sugar)
	userHandler := handler.NewUserHandler(userRepo, sugar)
	wordHandler := handler.NewWordHandler(wordService, sugar)
	translateHandler := handler.NewTranslateHandler(geminiClient, sugar)
	quizHandler := handler.NewQuizHandler(quizService, sugar)
	progressHandler := handler.NewProgressHandler(progressService, sugar)
	newsHandler := handler.NewNewsHandler(newsService, newsScheduler, sugar)

	var ttsHandler *handler.TTSHandler
	if audioService != nil {
		ttsHandler = handler.NewTTSHandler(audioService, sugar)
	}

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(corsMiddleware(cfg.FrontendURL))
	r.Use(middleware.RequestID())
	r.Use(middleware.MetricsMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.Static("/static/audio", cfg.AudioDir)

	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/login", authHandler.Login)
		authRoutes.GET("/google", authHandler.GoogleAuth)
		authRoutes.GET("/google/callback", authHandler.GoogleCallback)
		authRoutes.POST("/refresh", authHandler.RefreshToken)
		authRoutes.POST("/logout", authHandler.Logout)
		authRoutes.GET("/me", middleware.AuthMiddleware(cfg.JWTSecret), authHandler.Me)
	}

	api := r.Group("/api", middleware.AuthMiddleware(cfg.JWTSecret))
	{
		api.GET("/words", wordHandler.List)
		api.GET("/words/search", wordHandler.Search)
		api.GET("/words/word_of_the_day", wordHandler.WordOfTheDay)
		api.GET("/words/:id", wordHandler.Get)

		api.POST("/translate", translateHandler.Translate)

		api.GET("/quiz/next", quizHandler.Next)
		api.POST("/quiz/answer", quizHandler.Answer)

		api.POST("/progress", progressHandler.Mark)
		api.GET("/progress/stats", progressHandler.Stats)
		api.GET("/progress/learned", progressHandler.Learned)

		api.GET("/news/latest", newsHandler.Latest)

		if ttsHandler != nil {
			api.GET("/tts", ttsHandler.Speak)
		}
	}

	admin := r.Group("/api/admin", middleware.AdminMiddleware(cfg.JWTSecret))
	{
		admin.GET("/users", userHandler.List)
		admin.PUT("/users/:id/role", userHandler.SetRole)

		admin.POST("/words", wordHandler.Add)
		admin.POST("/words/batch_add", wordHandler.BatchAdd)
		admin.PUT("/words/:id", wordHandler.Update)
		admin.POST("/words/:id/generate_audio", wordHandler.GenerateAudio)

		admin.GET("/news", newsHandler.All)
		admin.POST("/news/refresh", newsHandler.Refresh)
		admin.GET("/news/scheduler", newsHandler.SchedulerStatus)
		admin.DELETE("/news/:id", newsHandler.Delete)

		if ttsHandler != nil {
			admin.DELETE("/tts/cache", ttsHandler.ClearCache)
		}
	}

	sugar.Infow("server starting", "port", cfg.Port, "env", cfg.Env)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func newLogger(env string) *zap.Logger {
	if env == "local" {
		logger, _ := zap.NewDevelopment()
		return logger
	}
	logger, _ := zap.NewProduction()
	return logger
}

func corsMiddleware(frontendURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", frontendURL)
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Header("Access-Control-Allow-Credentials", "true")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
