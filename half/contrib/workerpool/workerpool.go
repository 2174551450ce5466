// Copyright 2025 The go-highway Authors. SPDX-License-Identifier: Apache-2.0

// Package workerpool runs range-partitioned loops on a fixed set of
// long-lived goroutines.
//
// Bulk float16 conversions are memory bound and cheap per element, so
// spawning goroutines per call costs more than the work for mid-sized
// slices. A Pool is created once and shared:
//
//	pool := workerpool.New(runtime.GOMAXPROCS(0))
//	defer pool.Close()
//
//	cond := half.ParallelFromFloat32s(pool, dst, src)
package workerpool

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a fixed set of worker goroutines. It is safe for concurrent use.
type Pool struct {
	workers int
	tasks   chan task

	// mu is held for reading while a loop queues its tasks, so Close never
	// closes tasks under a pending send.
	mu     sync.RWMutex
	closed bool
}

type task struct {
	run  func()
	done *sync.WaitGroup
}

// New starts a pool of n workers. If n <= 0, GOMAXPROCS workers are used.
func New(n int) *Pool {
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	p := &Pool{
		workers: n,
		tasks:   make(chan task, 2*n),
	}
	for range n {
		go p.loop()
	}
	return p
}

func (p *Pool) loop() {
	for t := range p.tasks {
		t.run()
		t.done.Done()
	}
}

// NumWorkers returns the number of worker goroutines.
func (p *Pool) NumWorkers() int {
	return p.workers
}

// Close stops the workers once queued tasks finish. Calls after the first
// are no-ops. It may be called while loops are running: loops that already
// queued their tasks complete on the workers, later loops run on the calling
// goroutine.
func (p *Pool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.closed {
		p.closed = true
		close(p.tasks)
	}
}

// ParallelFor splits [0, n) into one contiguous range per worker and calls
// fn(start, end) for each. It returns when every range is done.
func (p *Pool) ParallelFor(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	parts := min(p.workers, n)
	p.mu.RLock()
	if parts == 1 || p.closed {
		p.mu.RUnlock()
		fn(0, n)
		return
	}

	size := (n + parts - 1) / parts
	var wg sync.WaitGroup
	for start := 0; start < n; start += size {
		end := min(start+size, n)
		wg.Add(1)
		p.tasks <- task{run: func() { fn(start, end) }, done: &wg}
	}
	p.mu.RUnlock()
	wg.Wait()
}

// ParallelForBatched hands out [0, n) in batches of batchSize to whichever
// worker is free, which balances uneven batches. fn(start, end) is called
// once per batch. It returns when every batch is done.
func (p *Pool) ParallelForBatched(n, batchSize int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	batchSize = max(batchSize, 1)
	batches := (n + batchSize - 1) / batchSize
	parts := min(p.workers, batches)
	p.mu.RLock()
	if parts == 1 || p.closed {
		p.mu.RUnlock()
		fn(0, n)
		return
	}

	var next atomic.Int64
	var wg sync.WaitGroup
	wg.Add(parts)
	for range parts {
		p.tasks <- task{
			run: func() {
				for {
					start := int(next.Add(int64(batchSize))) - batchSize
					if start >= n {
						return
					}
					fn(start, min(start+batchSize, n))
				}
			},
			done: &wg,
		}
	}
	p.mu.RUnlock()
	wg.Wait()
}
