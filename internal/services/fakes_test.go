package services

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"skillmap/portfolio-api/internal/models"
)

// fakeCompleter answers each chunk with responses[chunk], after delays[chunk].
type fakeCompleter struct {
	responses map[string]string
	delays    map[string]time.Duration
	errs      map[string]error
	calls     atomic.Int32

	mu       sync.Mutex
	requests []CompletionRequest
}

func (f *fakeCompleter) Model() string { return "fake-model" }

func (f *fakeCompleter) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()

	chunk := chunkOf(req)
	if d := f.delays[chunk]; d > 0 {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if err := f.errs[chunk]; err != nil {
		return "", err
	}
	return f.responses[chunk], nil
}

func chunkOf(req CompletionRequest) string {
	user := req.Messages[len(req.Messages)-1].Content
	if i := strings.LastIndex(user, "Text:\n"); i >= 0 {
		return user[i+len("Text:\n"):]
	}
	return user
}

type memoryCache struct {
	mu      sync.Mutex
	entries map[string]*models.ClassificationResult
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[string]*models.ClassificationResult{}}
}

func (m *memoryCache) Get(_ context.Context, key string) (*models.ClassificationResult, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.entries[key]
	return r, ok
}

func (m *memoryCache) Set(_ context.Context, key string, r *models.ClassificationResult) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = r
}

func (m *memoryCache) Close() error { return nil }

func startPool(t *testing.T, concurrency int) WorkerPool {
	t.Helper()
	pool := NewWorkerPool(concurrency, zap.NewNop())
	pool.Start(context.Background())
	t.Cleanup(pool.Stop)
	return pool
}
