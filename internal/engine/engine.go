// Package engine implements the concurrent scan core: long-lived worker
// pools, the scan orchestrator that streams findings from scanner
// goroutines into an aggregate report, and the directory-usage explorer.
//
// All aggregate state (Report, Explorer entries, caches) is owned by the
// consumer goroutine and mutated only there, by draining session
// channels. Worker goroutines produce immutable values and send them;
// the per-pool active counters are the only concurrently mutated state
// and they are atomics.
package engine

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/macsweep/macsweep/internal/worker"
)

const scanPoolSize = 4

// Engine owns the process-wide worker pools. Create one at startup and
// share the handle; pools are keyed by size bucket and each bucket is
// created at most once, then reused for the rest of the process.
type Engine struct {
	log zerolog.Logger

	mu       sync.Mutex
	scanPool *worker.Pool
	browse   map[int]*worker.Pool
}

func New(log zerolog.Logger) *Engine {
	return &Engine{
		log:    log,
		browse: make(map[int]*worker.Pool),
	}
}

// ScanPool returns the pool category scans run on.
func (e *Engine) ScanPool() *worker.Pool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.scanPool == nil {
		e.scanPool = worker.NewPool(scanPoolSize)
		e.log.Debug().Int("size", scanPoolSize).Msg("scan pool created")
	}
	return e.scanPool
}

// browseBucket maps a requested thread count onto one of three coarse
// pool sizes, so changing the setting between nearby values reuses the
// same long-lived pool instead of spawning a new one.
func browseBucket(threads int) int {
	switch {
	case threads <= 4:
		return 4
	case threads <= 8:
		return 8
	default:
		return 16
	}
}

// BrowsePool returns the directory-explorer pool for the requested
// thread count, creating its bucket on first use.
func (e *Engine) BrowsePool(threads int) *worker.Pool {
	bucket := browseBucket(threads)

	e.mu.Lock()
	defer e.mu.Unlock()
	p, ok := e.browse[bucket]
	if !ok {
		p = worker.NewPool(bucket)
		e.browse[bucket] = p
		e.log.Debug().Int("size", bucket).Msg("browse pool created")
	}
	return p
}

// ActiveWorkers returns how many workers in the bucket for the given
// thread count are currently running a job. Zero when the bucket has
// not been created yet.
func (e *Engine) ActiveWorkers(threads int) int {
	bucket := browseBucket(threads)

	e.mu.Lock()
	p, ok := e.browse[bucket]
	e.mu.Unlock()
	if !ok {
		return 0
	}
	return p.Active()
}
