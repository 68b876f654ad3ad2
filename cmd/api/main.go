package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"quiz-synth/internal/adapter"
	llmquizgen "quiz-synth/internal/adapter/quizgen"
	"quiz-synth/internal/analysis"
	"quiz-synth/internal/cache"
	"quiz-synth/internal/config"
	"quiz-synth/internal/domain"
	"quiz-synth/internal/extract"
	"quiz-synth/internal/handler"
	"quiz-synth/internal/logger"
	"quiz-synth/internal/middleware"
	"quiz-synth/internal/quizgen"
	"quiz-synth/internal/service"
	"quiz-synth/internal/topic"
	"quiz-synth/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// multipart framing on top of the largest allowed file
const bodyLimitSlack = 1024 * 1024

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	appLogger := logger.Get()
	defer logger.Sync()
	if cfg.File != "" {
		appLogger.Info("Using config file", zap.String("path", cfg.File))
	}

	table, err := topic.TableFromPath(cfg.Synthesis.TopicTable)
	if err != nil {
		appLogger.Fatal("Failed to load topic table", zap.Error(err))
	}
	classifier := topic.NewClassifier(table)
	analyzer := analysis.NewAnalyzer()
	validator := validation.NewValidator(cfg.Upload.MaxBytes, cfg.Upload.AllowedTypes)

	acquirer := extract.NewAcquirer(appLogger,
		extract.WithMaxBytes(cfg.Upload.MaxBytes),
		extract.WithAllowedTypes(cfg.Upload.AllowedTypes),
	)

	var generator domain.QuizGenerationService = quizgen.NewGenerator(appLogger, classifier, analyzer, quizgen.WithSeed(cfg.Synthesis.Seed))
	if cfg.LLM.Enabled {
		llmGenerator, err := llmquizgen.NewOllamaQuizGenerator(cfg.LLM.Server, cfg.LLM.Model, generator, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to create LLM quiz generator", zap.Error(err))
		}
		generator = llmGenerator
	}

	var quizCache domain.Cache
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			appLogger.Warn("Redis unavailable, quiz cache disabled", zap.Error(err))
		} else {
			defer redisClient.Close()
			quizCache = adapter.NewRedisCache(redisClient)
			appLogger.Info("Quiz cache enabled", zap.String("address", cfg.Redis.Address), zap.Duration("ttl", cfg.CacheTTLs.Quiz))
		}
	}

	documentService := service.NewDocumentService(acquirer, analyzer, classifier, validator)
	quizService := service.NewQuizService(generator, analyzer, validator, quizCache, cfg.CacheTTLs.Quiz)

	documentHandler := handler.NewDocumentHandler(documentService)
	quizHandler := handler.NewQuizHandler(quizService)
	healthHandler := handler.NewHealthHandler(quizCache)
	validationMiddleware := middleware.NewValidationMiddleware(validator)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
		BodyLimit:    cfg.Upload.MaxBytes + bodyLimitSlack,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,X-Request-ID", MaxAge: 300}))

	app.Get("/health", healthHandler.Check)

	apiGroup := app.Group("/api")
	apiGroup.Post("/documents/upload", validationMiddleware.ValidateUpload(), documentHandler.Upload)
	apiGroup.Post("/documents/text", documentHandler.PasteText)
	apiGroup.Post("/quizzes/generate", quizHandler.GenerateQuiz)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
