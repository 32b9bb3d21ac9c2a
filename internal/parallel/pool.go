// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package parallel runs batches of work on a fixed set of goroutines. It
// drives concurrent AddRef/Release traffic in stress tests and in
// cmd/reftrackdemo.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool is a fixed pool of goroutines, each with its own queue.
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers int
	queues  []chan func()

	// mu is held shared while work is being queued and exclusively by
	// Close, so done is never closed under a pending submission.
	mu   sync.RWMutex
	done chan struct{}
	wg   sync.WaitGroup

	running atomic.Bool
}

// NewWorkerPool starts a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	p := &WorkerPool{
		workers: workers,
		queues:  make([]chan func(), workers),
		done:    make(chan struct{}),
	}
	for i := range workers {
		p.queues[i] = make(chan func(), 4)
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(p.queues[i])
	}
	return p
}

func (p *WorkerPool) worker(queue chan func()) {
	defer p.wg.Done()
	for {
		select {
		case <-p.done:
			// Finish what was queued before Close.
			for {
				select {
				case fn := <-queue:
					fn()
				default:
					return
				}
			}
		case fn := <-queue:
			fn()
		}
	}
}

// ExecuteAll runs every function in work, spread round-robin over the
// workers, and waits for all of them. It is a no-op on a closed pool.
func (p *WorkerPool) ExecuteAll(work []func()) {
	if len(work) == 0 {
		return
	}

	p.mu.RLock()
	if !p.running.Load() {
		p.mu.RUnlock()
		return
	}
	var pending sync.WaitGroup
	pending.Add(len(work))
	for i, fn := range work {
		p.queues[i%p.workers] <- func() {
			defer pending.Done()
			fn()
		}
	}
	p.mu.RUnlock()

	pending.Wait()
}

// Repeat runs fn n times in total, split across all workers, and waits.
// fn receives the worker index and the iteration number within that worker.
func (p *WorkerPool) Repeat(n int, fn func(worker, i int)) {
	if n <= 0 {
		return
	}
	work := make([]func(), p.workers)
	for w := range p.workers {
		share := n / p.workers
		if w < n%p.workers {
			share++
		}
		work[w] = func() {
			for i := range share {
				fn(w, i)
			}
		}
	}
	p.ExecuteAll(work)
}

// Close stops the pool after queued work has run. A concurrent ExecuteAll
// either queues all of its work before the pool stops or none of it. Close
// is safe to call more than once.
func (p *WorkerPool) Close() {
	p.mu.Lock()
	if !p.running.CompareAndSwap(true, false) {
		p.mu.Unlock()
		return
	}
	close(p.done)
	p.mu.Unlock()
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool still accepts work.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}
