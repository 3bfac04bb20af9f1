package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// ErrPoolStopped is returned for jobs submitted after Stop.
var ErrPoolStopped = errors.New("worker pool stopped")

// WorkerPool runs blocking calls (OCR, completion, embedding) on a fixed set
// of goroutines so request handlers only ever wait on a result channel.
type WorkerPool interface {
	Start(ctx context.Context)
	Stop()
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type job struct {
	ctx  context.Context
	fn   func(ctx context.Context) error
	done chan error
}

type workerPool struct {
	jobQueue    chan job
	concurrency int
	wg          sync.WaitGroup
	stopChan    chan struct{}
	stopOnce    sync.Once
	log         *zap.Logger
}

func NewWorkerPool(concurrency int, log *zap.Logger) WorkerPool {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &workerPool{
		jobQueue:    make(chan job, 100),
		concurrency: concurrency,
		stopChan:    make(chan struct{}),
		log:         log,
	}
}

// Start implements WorkerPool.
func (w *workerPool) Start(ctx context.Context) {
	w.log.Info("starting worker pool", zap.Int("workers", w.concurrency))

	for i := 0; i < w.concurrency; i++ {
		w.wg.Add(1)
		go w.processJobs(ctx, i+1)
	}
}

// Stop implements WorkerPool.
func (w *workerPool) Stop() {
	w.stopOnce.Do(func() {
		w.log.Info("stopping worker pool")
		close(w.stopChan)
		w.wg.Wait()
		w.log.Info("worker pool stopped")
	})
}

// Do implements WorkerPool. It blocks until fn has run on a worker or ctx is done.
func (w *workerPool) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	j := job{ctx: ctx, fn: fn, done: make(chan error, 1)}

	select {
	case w.jobQueue <- j:
	case <-w.stopChan:
		return ErrPoolStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-j.done:
		return err
	case <-w.stopChan:
		return ErrPoolStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (w *workerPool) processJobs(ctx context.Context, workerID int) {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopChan:
			w.log.Debug("worker stopped", zap.Int("worker", workerID))
			return
		case <-ctx.Done():
			return
		case j := <-w.jobQueue:
			if err := j.ctx.Err(); err != nil {
				j.done <- err
				continue
			}
			j.done <- w.run(j)
		}
	}
}

func (w *workerPool) run(j job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			w.log.Error("worker job panicked", zap.Any("panic", r))
			err = fmt.Errorf("worker job panicked: %v", r)
		}
	}()
	return j.fn(j.ctx)
}
