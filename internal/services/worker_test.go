package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestWorkerPool_Do(t *testing.T) {
	pool := startPool(t, 2)

	ran := false
	err := pool.Do(context.Background(), func(context.Context) error {
		ran = true
		return nil
	})
	assert.NoError(t, err)
	assert.True(t, ran)

	boom := errors.New("boom")
	assert.Equal(t, boom, pool.Do(context.Background(), func(context.Context) error { return boom }))
}

func TestWorkerPool_RecoversPanics(t *testing.T) {
	pool := startPool(t, 1)

	err := pool.Do(context.Background(), func(context.Context) error { panic("bad page") })
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "bad page")

	// the worker survives
	assert.NoError(t, pool.Do(context.Background(), func(context.Context) error { return nil }))
}

func TestWorkerPool_BoundsConcurrency(t *testing.T) {
	pool := startPool(t, 2)

	var running, peak atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = pool.Do(context.Background(), func(context.Context) error {
				n := running.Add(1)
				for {
					p := peak.Load()
					if n <= p || peak.CompareAndSwap(p, n) {
						break
					}
				}
				time.Sleep(10 * time.Millisecond)
				running.Add(-1)
				return nil
			})
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, peak.Load(), int32(2))
	assert.GreaterOrEqual(t, peak.Load(), int32(1))
}

func TestWorkerPool_CanceledContext(t *testing.T) {
	pool := startPool(t, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := pool.Do(ctx, func(context.Context) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWorkerPool_Stopped(t *testing.T) {
	pool := NewWorkerPool(1, zap.NewNop())
	pool.Start(context.Background())
	pool.Stop()
	pool.Stop()

	err := pool.Do(context.Background(), func(context.Context) error { return nil })
	assert.ErrorIs(t, err, ErrPoolStopped)
}
