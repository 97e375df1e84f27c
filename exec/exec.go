// Package exec provides alternative executors for deferred tasks: a
// bounded-concurrency pool and a synchronous executor for deterministic
// tests.
package exec

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

// PoolExecutor runs submitted work on at most a fixed number of concurrent
// goroutines. Submit never blocks the caller; work over the limit waits for
// a free slot and can still be abandoned through its context while queued.
type PoolExecutor struct {
	sem *semaphore.Weighted
	wg  sync.WaitGroup
}

// Pool returns an executor limited to n concurrent units of work.
func Pool(n int64) *PoolExecutor {
	if n < 1 {
		n = 1
	}
	return &PoolExecutor{sem: semaphore.NewWeighted(n)}
}

func (p *PoolExecutor) Submit(ctx context.Context, fn func()) {
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		if err := p.sem.Acquire(ctx, 1); err != nil {
			return // abandoned while queued
		}
		defer p.sem.Release(1)
		select {
		case <-ctx.Done():
			return
		default:
		}
		fn()
	}()
}

// Wait blocks until every submitted unit of work has returned or been
// abandoned.
func (p *PoolExecutor) Wait() { p.wg.Wait() }

// SyncExecutor runs work inline on the submitting goroutine, which makes
// task execution deterministic.
type SyncExecutor struct{}

// Sync returns a synchronous executor.
func Sync() SyncExecutor { return SyncExecutor{} }

func (SyncExecutor) Submit(_ context.Context, fn func()) { fn() }
