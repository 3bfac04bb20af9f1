package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"skillmap/portfolio-api/internal/models"
)

// ClassificationCache stores classification results keyed by CacheKey.
// Completions run at temperature 0, so equal inputs give equal results.
// Cache failures are logged and treated as misses.
type ClassificationCache interface {
	Get(ctx context.Context, key string) (*models.ClassificationResult, bool)
	Set(ctx context.Context, key string, result *models.ClassificationResult)
	Close() error
}

// CacheKey derives the cache key for one classification input.
func CacheKey(model, promptOverride string, chunkSize int, text string) string {
	h := sha256.New()
	for _, part := range []string{model, promptOverride, strconv.Itoa(chunkSize), text} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return "classification:" + hex.EncodeToString(h.Sum(nil))
}

type noopCache struct{}

func NewNoopCache() ClassificationCache {
	return noopCache{}
}

func (noopCache) Get(context.Context, string) (*models.ClassificationResult, bool) { return nil, false }
func (noopCache) Set(context.Context, string, *models.ClassificationResult)        {}
func (noopCache) Close() error                                                     { return nil }

type redisCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

// NewRedisCache connects to redisURL (redis:// or rediss://) and checks the
// connection before returning.
func NewRedisCache(redisURL string, ttl time.Duration, log *zap.Logger) (ClassificationCache, error) {
	if redisURL == "" {
		return nil, errors.New("redis: URL not configured")
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid URL: %w", err)
	}
	opts.DialTimeout = 5 * time.Second
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: connection failed: %w", err)
	}

	return &redisCache{client: client, ttl: ttl, log: log}, nil
}

func (r *redisCache) Get(ctx context.Context, key string) (*models.ClassificationResult, bool) {
	b, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.log.Warn("classification cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var result models.ClassificationResult
	if err := json.Unmarshal(b, &result); err != nil {
		r.log.Warn("classification cache entry is corrupt", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return &result, true
}

func (r *redisCache) Set(ctx context.Context, key string, result *models.ClassificationResult) {
	b, err := json.Marshal(result)
	if err != nil {
		r.log.Warn("classification cache encode failed", zap.Error(err))
		return
	}
	if err := r.client.Set(ctx, key, b, r.ttl).Err(); err != nil {
		r.log.Warn("classification cache write failed", zap.Error(err))
	}
}

func (r *redisCache) Close() error {
	return r.client.Close()
}
