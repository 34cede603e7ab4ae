// Package parallel runs independent, indexed jobs on a fixed set of
// goroutines.
package parallel

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool is a pool of goroutines for per-frame image work.
//
// Jobs are addressed by index, so callers write results into a
// pre-sized slice and ordering is preserved without extra bookkeeping.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	// workers is the number of worker goroutines.
	workers int

	// queue feeds job closures to the workers.
	queue chan func()

	// wg waits for all workers to finish.
	wg sync.WaitGroup

	// running indicates whether the pool is accepting work.
	running atomic.Bool
}

// NewWorkerPool creates a new worker pool with the specified number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
// The pool starts immediately and workers begin waiting for work.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	p := &WorkerPool{
		workers: workers,
		queue:   make(chan func(), workers*2),
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for range workers {
		go p.worker()
	}
	return p
}

// worker is the main loop for each worker goroutine.
func (p *WorkerPool) worker() {
	defer p.wg.Done()
	for work := range p.queue {
		work()
	}
}

// Run calls fn(i) for every i in [0, n) across the workers and waits for
// all of them. The first error cancels the context passed to the remaining
// jobs and is returned; jobs not yet started are skipped.
// Run on a closed pool runs the jobs on the calling goroutine.
func (p *WorkerPool) Run(ctx context.Context, n int, fn func(ctx context.Context, i int) error) error {
	if n <= 0 {
		return nil
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		once     sync.Once
		firstErr error
		done     sync.WaitGroup
	)
	fail := func(err error) {
		once.Do(func() {
			firstErr = err
			cancel()
		})
	}
	job := func(i int) func() {
		return func() {
			defer done.Done()
			if ctx.Err() != nil {
				fail(ctx.Err())
				return
			}
			if err := fn(ctx, i); err != nil {
				fail(err)
			}
		}
	}

	done.Add(n)
	if !p.running.Load() {
		for i := range n {
			job(i)()
		}
		return firstErr
	}
	for i := range n {
		p.queue <- job(i)
	}
	done.Wait()
	return firstErr
}

// Close stops the workers after queued work completes.
// Close is safe to call multiple times, but not concurrently with Run.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.queue)
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}
