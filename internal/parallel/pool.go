// Package parallel runs render-pass bands on a fixed set of worker
// goroutines.
//
// Shading is pure per sample, so a pass can be cut into bands and run in
// any order. Bands cost roughly the same (every pixel walks the same
// per-cell loop), so scheduling stays dumb: one unbuffered queue, workers
// take the next band as they finish the last.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool runs batches of work functions on persistent goroutines.
// Create pools with NewWorkerPool; the zero value has no workers.
type WorkerPool struct {
	workers int

	// queue is unbuffered: a send is a handoff to a live worker, so no
	// work can be stranded in a buffer when the pool shuts down.
	queue chan func()

	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool
}

// NewWorkerPool starts a pool with the given number of workers; zero or
// negative means GOMAXPROCS. Workers idle until a batch arrives.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	p := &WorkerPool{
		workers: workers,
		queue:   make(chan func()),
		done:    make(chan struct{}),
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for range workers {
		go p.worker()
	}
	return p
}

func (p *WorkerPool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.done:
			return
		case fn := <-p.queue:
			fn()
		}
	}
}

// ExecuteAll runs every function in the batch and returns when the last
// one has finished. On a closed pool it is a no-op. Batches submitted
// concurrently share the workers.
func (p *WorkerPool) ExecuteAll(work []func()) {
	if len(work) == 0 || !p.running.Load() {
		return
	}

	var batch sync.WaitGroup
	batch.Add(len(work))
	for _, fn := range work {
		run := func() {
			defer batch.Done()
			fn()
		}
		select {
		case p.queue <- run:
		case <-p.done:
			// Pool closed mid-batch; account for the band we could not
			// hand off so Wait cannot hang.
			batch.Done()
		}
	}
	batch.Wait()
}

// Close stops the workers and joins them. A band a worker already holds
// finishes; bands not yet handed off are dropped. Close is safe to call
// more than once. Callers close after the last batch, not concurrently
// with one they care about.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers reports the pool size.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool accepts new batches.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}
