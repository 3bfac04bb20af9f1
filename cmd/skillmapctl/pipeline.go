package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"skillmap/portfolio-api/internal/config"
	"skillmap/portfolio-api/internal/logger"
	"skillmap/portfolio-api/internal/models"
	"skillmap/portfolio-api/internal/services"
)

type pipeline struct {
	cfg        *config.Config
	log        *zap.Logger
	pool       services.WorkerPool
	cache      services.ClassificationCache
	extractor  services.TextExtractor
	classifier services.ClassifierService
	portfolio  services.PortfolioService
}

// newPipeline builds the services the commands share. needCompleter is false
// for commands that never classify, so they run without an API key.
func newPipeline(ctx context.Context, needCompleter, needIndex bool) (*pipeline, error) {
	cfg := config.Load()

	var (
		log *zap.Logger
		err error
	)
	if verbose {
		log, err = logger.New(cfg.Server.Env)
		if err != nil {
			return nil, err
		}
	} else {
		log = zap.NewNop()
	}

	p := &pipeline{cfg: cfg, log: log, cache: services.NewNoopCache()}

	p.pool = services.NewWorkerPool(cfg.Worker.Concurrency, log)
	p.pool.Start(ctx)

	storage := services.NewStorageService(cfg.Extraction.TempDir, log)
	if err := storage.EnsureUploadDir(); err != nil {
		return nil, err
	}

	chunker := services.NewTextChunker()
	p.extractor = services.NewTextExtractor(
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
		}, services.NewExecRunner(log), log),
		storage,
		p.pool,
		log,
	)

	if !needCompleter && !needIndex {
		return p, nil
	}

	var gemini services.GeminiService
	if cfg.LLM.GeminiAPIKey != "" {
		gemini, err = services.NewGeminiService(cfg.LLM.GeminiAPIKey, cfg.LLM.Model, log)
		if err != nil {
			return nil, err
		}
	}

	var index services.PortfolioIndex
	if needIndex {
		if !cfg.IndexEnabled() {
			return nil, fmt.Errorf("QDRANT_URL and GEMINI_API_KEY are required for indexing")
		}
		index, err = services.NewQdrantIndex(cfg.Qdrant.URL, cfg.Qdrant.APIKey, cfg.Qdrant.Collection, gemini, p.pool, log)
		if err != nil {
			return nil, err
		}
		if err := index.InitCollection(ctx); err != nil {
			return nil, err
		}
	}

	var completer services.Completer
	if needCompleter {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		if cfg.LLM.Provider == config.ProviderGemini {
			completer = gemini
		} else {
			completer = services.NewOpenAIService(services.OpenAIConfig{
				APIKey:  cfg.LLM.OpenAIAPIKey,
				BaseURL: cfg.LLM.BaseURL,
				Model:   cfg.LLM.Model,
				Timeout: cfg.LLM.Timeout,
			}, log)
		}

		if cfg.Redis.URL != "" {
			if cache, err := services.NewRedisCache(cfg.Redis.URL, cfg.Redis.TTL, log); err == nil {
				p.cache = cache
			} else {
				log.Warn("classification cache disabled", zap.Error(err))
			}
		}

		p.classifier = services.NewClassifierService(
			services.ClassifierConfig{
				ChunkSize:       cfg.Classifier.ChunkSize,
				Concurrency:     cfg.Classifier.ChunkConcurrency,
				MaxOutputTokens: cfg.LLM.MaxOutputTokens,
			},
			completer,
			chunker,
			p.pool,
			p.cache,
			log,
		)
		p.portfolio = services.NewPortfolioService(
			p.extractor,
			p.classifier,
			index,
			chunker,
			cfg.Classifier.ChunkSize,
			cfg.Worker.ImportTimeout,
			log,
		)
	} else {
		p.portfolio = services.NewPortfolioService(p.extractor, nil, index, chunker, cfg.Classifier.ChunkSize, 0, log)
	}

	return p, nil
}

func (p *pipeline) Close() {
	p.pool.Stop()
	_ = p.cache.Close()
	logger.Sync(p.log)
}

func readDocument(path string) (*models.UploadedDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return &models.UploadedDocument{Filename: filepath.Base(path), Data: data}, nil
}
