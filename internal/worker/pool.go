// Package worker implements the fixed-size pools that back both the
// category-scan orchestrator and the disk-usage explorer. Pools are
// long-lived: they are created once per size bucket and reused for every
// subsequent scan, because rescans and directory descents are frequent
// enough that per-request goroutine churn would dominate.
package worker

import (
	"sync"
	"sync/atomic"
)

// Pool is a fixed set of long-lived workers consuming jobs from a shared
// FIFO queue. Submit never blocks the caller; the queue is unbounded.
//
// There is no job timeout: a job stuck on a pathological filesystem
// (huge tree, dead network mount) pins its worker until the syscall
// returns. That is an accepted limitation, not a bug to patch here.
type Pool struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []func()
	closed bool

	size      int
	active    atomic.Int64
	submitted atomic.Int64
}

// NewPool starts size workers and returns the pool.
func NewPool(size int) *Pool {
	if size < 1 {
		size = 1
	}
	p := &Pool{size: size}
	p.cond = sync.NewCond(&p.mu)
	for i := 0; i < size; i++ {
		go p.run()
	}
	return p
}

func (p *Pool) run() {
	for {
		p.mu.Lock()
		for len(p.queue) == 0 && !p.closed {
			p.cond.Wait()
		}
		if len(p.queue) == 0 && p.closed {
			p.mu.Unlock()
			return
		}
		job := p.queue[0]
		p.queue = p.queue[1:]
		p.mu.Unlock()

		p.active.Add(1)
		job()
		p.active.Add(-1)
	}
}

// Submit enqueues a job for whichever idle worker picks it up first.
// It never blocks. Submitting to a closed pool is a no-op.
func (p *Pool) Submit(job func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.queue = append(p.queue, job)
	p.submitted.Add(1)
	p.cond.Signal()
}

// Close lets workers drain the remaining queue and exit. Intended for
// tests; in the application pools live for the whole process.
func (p *Pool) Close() {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	p.cond.Broadcast()
}

// Size returns the fixed worker count.
func (p *Pool) Size() int { return p.size }

// Active returns the number of workers currently running a job.
func (p *Pool) Active() int { return int(p.active.Load()) }

// Submitted returns the total number of jobs ever submitted.
func (p *Pool) Submitted() int64 { return p.submitted.Load() }
