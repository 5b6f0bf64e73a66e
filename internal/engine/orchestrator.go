package engine

import (
	"sync"

	"github.com/macsweep/macsweep/internal/scanner"
)

// sessionBuffer bounds each session channel. Semantic messages block
// when it fills; PathVisited is dropped instead, it is progress
// decoration and arrives at a much higher rate.
const sessionBuffer = 1024

// Msg is one message produced by a scan session.
type Msg interface{ scanMsg() }

// ScannerStarted announces a scanner picked up by a worker.
type ScannerStarted struct {
	ScannerID string
	Name      string
}

// PathVisited reports a candidate path, for the progress line. Lossy.
type PathVisited struct {
	Path string
}

// ItemFound carries one accepted finding.
type ItemFound struct {
	ScannerID string
	Item      scanner.Finding
}

// ScannerFinished announces a scanner ran to completion, found items or
// not.
type ScannerFinished struct {
	ScannerID string
	Name      string
	Category  scanner.Category
}

// ScanComplete is the sole termination signal: it arrives after every
// submitted scanner has finished. Consumers must not infer completion
// from channel closure, the channel has multiple senders and closure is
// only a cleanup detail.
type ScanComplete struct{}

func (ScannerStarted) scanMsg()  {}
func (PathVisited) scanMsg()     {}
func (ItemFound) scanMsg()       {}
func (ScannerFinished) scanMsg() {}
func (ScanComplete) scanMsg()    {}

// ScanSession is the consumer handle for one orchestration run. The
// consumer must keep calling Poll until Done reports true: semantic
// sends block once the buffer fills, so a session that stops being
// polled mid-scan would pin scan-pool workers on their sends. Every
// entry point (TUI tick, headless poll loop) polls to completion.
type ScanSession struct {
	ch    chan Msg
	total int
	done  bool
}

// Total returns how many scanners were submitted.
func (s *ScanSession) Total() int { return s.total }

// Done reports whether ScanComplete has been observed by Poll.
func (s *ScanSession) Done() bool { return s.done }

// Poll drains every message currently available without blocking, so
// it can be interleaved with UI rendering.
func (s *ScanSession) Poll() []Msg {
	var msgs []Msg
	for {
		select {
		case m, ok := <-s.ch:
			if !ok {
				return msgs
			}
			if _, complete := m.(ScanComplete); complete {
				s.done = true
			}
			msgs = append(msgs, m)
		default:
			return msgs
		}
	}
}

// StartScan rescans the given scanners. Their previous categories are
// dropped from rep (untouched categories keep their findings byte for
// byte), progress counters reset, and one job per scanner goes into the
// scan pool. Messages stream over the session channel; drain with Poll
// and fold into rep with Report.Apply.
func (e *Engine) StartScan(scanners []scanner.Scanner, cfg *scanner.Config, rep *Report) *ScanSession {
	ids := make([]string, 0, len(scanners))
	for _, sc := range scanners {
		ids = append(ids, sc.ID())
	}
	rep.DropCategories(ids)
	rep.ResetProgress()

	session := &ScanSession{
		ch:    make(chan Msg, sessionBuffer),
		total: len(scanners),
	}

	var wg sync.WaitGroup
	pool := e.ScanPool()

	for _, sc := range scanners {
		sc := sc
		wg.Add(1)
		pool.Submit(func() {
			defer wg.Done()
			e.runScanner(sc, cfg, session.ch)
		})
	}

	// Completion supervisor. The channel is closed only after the
	// terminal ScanComplete, once no sender remains.
	go func() {
		wg.Wait()
		session.ch <- ScanComplete{}
		close(session.ch)
	}()

	return session
}

func (e *Engine) runScanner(sc scanner.Scanner, base *scanner.Config, ch chan<- Msg) {
	e.log.Debug().Str("scanner", sc.ID()).Msg("scanner started")
	ch <- ScannerStarted{ScannerID: sc.ID(), Name: sc.Name()}

	runCfg := scanner.Config{
		MinSize:       base.MinSize,
		MaxDepth:      base.MaxDepth,
		ExcludedPaths: base.ExcludedPaths,
		OnProgress: func(path string) {
			select {
			case ch <- PathVisited{Path: path}:
			default: // PathVisited is lossy
			}
		},
		OnItem: func(f scanner.Finding) {
			ch <- ItemFound{ScannerID: sc.ID(), Item: f}
		},
	}

	if _, err := sc.Scan(&runCfg); err != nil {
		// A failed scanner contributes nothing; the orchestration still
		// completes.
		e.log.Warn().Err(err).Str("scanner", sc.ID()).Msg("scanner failed")
	}

	e.log.Debug().Str("scanner", sc.ID()).Msg("scanner finished")
	ch <- ScannerFinished{ScannerID: sc.ID(), Name: sc.Name(), Category: sc.Category()}
}
