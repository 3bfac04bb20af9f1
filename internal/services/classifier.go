package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"skillmap/portfolio-api/internal/models"
)

type ClassifierConfig struct {
	ChunkSize       int
	Concurrency     int
	MaxOutputTokens int
}

// ClassifierService extracts skills, categories and a summary from text by
// classifying fixed-size chunks and merging the answers in chunk order.
type ClassifierService interface {
	Classify(ctx context.Context, text, promptOverride string) (*models.ClassificationResult, error)
}

type classifierService struct {
	cfg           ClassifierConfig
	completer     Completer
	chunker       TextChunker
	promptBuilder *PromptBuilder
	pool          WorkerPool
	cache         ClassificationCache
	log           *zap.Logger
}

func NewClassifierService(
	cfg ClassifierConfig,
	completer Completer,
	chunker TextChunker,
	pool WorkerPool,
	cache ClassificationCache,
	log *zap.Logger,
) ClassifierService {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = 3000
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if cfg.MaxOutputTokens <= 0 {
		cfg.MaxOutputTokens = 800
	}
	if cache == nil {
		cache = NewNoopCache()
	}
	return &classifierService{
		cfg:           cfg,
		completer:     completer,
		chunker:       chunker,
		promptBuilder: NewPromptBuilder(),
		pool:          pool,
		cache:         cache,
		log:           log,
	}
}

func (c *classifierService) Classify(ctx context.Context, text, promptOverride string) (*models.ClassificationResult, error) {
	chunks := c.chunker.ChunkText(text, c.cfg.ChunkSize)
	if len(chunks) == 0 {
		return models.NewClassificationResult(), nil
	}

	key := CacheKey(c.completer.Model(), promptOverride, c.cfg.ChunkSize, text)
	if cached, ok := c.cache.Get(ctx, key); ok {
		c.log.Debug("classification cache hit", zap.Int("chunks", len(chunks)))
		return cached, nil
	}

	start := time.Now()
	c.log.Info("classifying text", zap.Int("chunks", len(chunks)), zap.String("model", c.completer.Model()))

	outcomes := make([]ChunkOutcome, len(chunks))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.Concurrency)
	for i, chunk := range chunks {
		g.Go(func() error {
			content, err := c.completeChunk(gCtx, chunk, promptOverride)
			if err != nil {
				return fmt.Errorf("chunk %d/%d: %w", i+1, len(chunks), err)
			}
			outcome := ParseChunkResponse(content)
			if _, raw := outcome.(RawChunk); raw {
				c.log.Warn("chunk response is not valid JSON; keeping raw text", zap.Int("chunk", i+1))
			}
			outcomes[i] = outcome
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrClassification, err)
	}

	result := MergeChunkOutcomes(outcomes)
	c.cache.Set(ctx, key, result)

	c.log.Info("classification completed",
		zap.Int("skills", len(result.Skills)),
		zap.Int("categories", len(result.Categories)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return result, nil
}

func (c *classifierService) completeChunk(ctx context.Context, chunk, promptOverride string) (string, error) {
	req := CompletionRequest{
		Messages:        c.promptBuilder.BuildClassificationMessages(chunk, promptOverride),
		Temperature:     0,
		MaxOutputTokens: c.cfg.MaxOutputTokens,
	}

	var content string
	err := c.pool.Do(ctx, func(ctx context.Context) error {
		var err error
		content, err = c.completer.Complete(ctx, req)
		return err
	})
	return content, err
}

// MergeChunkOutcomes folds per-chunk outcomes in the given order. Raw chunks
// only add their text to the summary.
func MergeChunkOutcomes(outcomes []ChunkOutcome) *models.ClassificationResult {
	var skills, categories, summaries []string

	for _, outcome := range outcomes {
		switch o := outcome.(type) {
		case ParsedChunk:
			skills = append(skills, o.Skills...)
			categories = append(categories, o.Categories...)
			if o.Summary != "" {
				summaries = append(summaries, o.Summary)
			}
		case RawChunk:
			if o.Raw != "" {
				summaries = append(summaries, o.Raw)
			}
		}
	}

	result := models.NewClassificationResult()
	result.Skills = DedupeStrings(skills)
	result.Categories = DedupeStrings(categories)
	result.Summary = strings.TrimSpace(strings.Join(summaries, " "))
	return result
}

// DedupeStrings trims entries, drops empty ones and keeps the first
// occurrence of each value.
func DedupeStrings(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
