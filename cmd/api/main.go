package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"skillmap/portfolio-api/internal/config"
	"skillmap/portfolio-api/internal/handlers"
	"skillmap/portfolio-api/internal/logger"
	"skillmap/portfolio-api/internal/repositories"
	"skillmap/portfolio-api/internal/routes"
	"skillmap/portfolio-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zl, err := logger.New(cfg.Server.Env)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	defer logger.Sync(zl)

	if err := cfg.Validate(); err != nil {
		zl.Fatal("invalid configuration", zap.Error(err))
	}
	zl.Info("config loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("llm_provider", cfg.LLM.Provider),
		zap.String("llm_model", cfg.LLM.Model),
	)

	// Initialize database
	db, err := config.InitDatabase(cfg, zl)
	if err != nil {
		zl.Fatal("failed to initialize database", zap.Error(err))
	}

	// Initialize repositories
	skillMapRepo := repositories.NewSkillMapRepository(db)
	rubricRepo := repositories.NewRubricRepository(db)
	skillRepo := repositories.NewSkillRepository(db)
	levelRepo := repositories.NewLevelRepository(db)
	criteriaRepo := repositories.NewCriteriaRepository(db)

	// Worker pool for OCR, completion and embedding calls
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool := services.NewWorkerPool(cfg.Worker.Concurrency, zl)
	pool.Start(ctx)

	storageService := services.NewStorageService(cfg.Extraction.TempDir, zl)
	if err := storageService.EnsureUploadDir(); err != nil {
		zl.Fatal("failed to create upload directory", zap.Error(err))
	}

	// Completion capability, built once and shared
	var (
		completer services.Completer
		gemini    services.GeminiService
	)
	if cfg.LLM.GeminiAPIKey != "" {
		gemini, err = services.NewGeminiService(cfg.LLM.GeminiAPIKey, cfg.LLM.Model, zl)
		if err != nil {
			zl.Fatal("failed to initialize Gemini", zap.Error(err))
		}
	}
	switch cfg.LLM.Provider {
	case config.ProviderGemini:
		completer = gemini
	default:
		completer = services.NewOpenAIService(services.OpenAIConfig{
			APIKey:  cfg.LLM.OpenAIAPIKey,
			BaseURL: cfg.LLM.BaseURL,
			Model:   cfg.LLM.Model,
			Timeout: cfg.LLM.Timeout,
		}, zl)
	}

	cache := services.NewNoopCache()
	if cfg.Redis.URL != "" {
		redisCache, err := services.NewRedisCache(cfg.Redis.URL, cfg.Redis.TTL, zl)
		if err != nil {
			zl.Warn("classification cache disabled", zap.Error(err))
		} else {
			cache = redisCache
			zl.Info("classification cache enabled")
		}
	}
	defer cache.Close()

	var index services.PortfolioIndex
	if cfg.IndexEnabled() {
		qdrantIndex, err := services.NewQdrantIndex(
			cfg.Qdrant.URL,
			cfg.Qdrant.APIKey,
			cfg.Qdrant.Collection,
			gemini,
			pool,
			zl,
		)
		if err != nil {
			zl.Fatal("failed to initialize Qdrant", zap.Error(err))
		}
		if err := qdrantIndex.InitCollection(ctx); err != nil {
			zl.Fatal("failed to initialize Qdrant collection", zap.Error(err))
		}
		index = qdrantIndex
		zl.Info("portfolio index enabled", zap.String("collection", cfg.Qdrant.Collection))
	}

	chunker := services.NewTextChunker()

	extractor := services.NewTextExtractor(
		services.ExtractorConfig{
			MaxFileSize:   cfg.Extraction.MaxFileSize,
			MinTextLength: cfg.Extraction.MinTextLength,
		},
		services.NewPDFParserService(),
		services.NewOCRService(services.OCRConfig{
			Pdftoppm:  cfg.Extraction.Pdftoppm,
			Tesseract: cfg.Extraction.Tesseract,
			DPI:       cfg.Extraction.OCRDPI,
			Lang:      cfg.Extraction.OCRLang,
		}, services.NewExecRunner(zl), zl),
		storageService,
		pool,
		zl,
	)

	classifier := services.NewClassifierService(
		services.ClassifierConfig{
			ChunkSize:       cfg.Classifier.ChunkSize,
			Concurrency:     cfg.Classifier.ChunkConcurrency,
			MaxOutputTokens: cfg.LLM.MaxOutputTokens,
		},
		completer,
		chunker,
		pool,
		cache,
		zl,
	)

	portfolioService := services.NewPortfolioService(
		extractor,
		classifier,
		index,
		chunker,
		cfg.Classifier.ChunkSize,
		cfg.Worker.ImportTimeout,
		zl,
	)
	exporter := services.NewExporterService()
	zl.Info("services initialized")

	app := routes.NewApp(routes.AppConfig{
		// Room for the multipart envelope around a maximum size file
		BodyLimit:    int(cfg.Extraction.MaxFileSize) + 1<<20,
		AllowOrigins: cfg.CORS.AllowOrigins,
		AccessLog:    true,
	}, routes.Handlers{
		SkillMap:  handlers.NewSkillMapHandler(skillMapRepo, exporter),
		Rubric:    handlers.NewRubricHandler(rubricRepo, exporter),
		Skill:     handlers.NewSkillHandler(skillRepo, rubricRepo),
		Level:     handlers.NewLevelHandler(levelRepo),
		Criteria:  handlers.NewCriteriaHandler(criteriaRepo),
		Portfolio: handlers.NewPortfolioHandler(portfolioService, cfg.Extraction.MaxFileSize, zl),
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		zl.Info("shutting down server")
		if err := app.Shutdown(); err != nil {
			zl.Error("server forced to shutdown", zap.Error(err))
		}
		pool.Stop()
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	zl.Info("server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		zl.Fatal("failed to start server", zap.Error(err))
	}
}
