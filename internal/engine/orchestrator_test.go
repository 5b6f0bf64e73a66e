package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macsweep/macsweep/internal/scanner"
)

// fakeScanner streams a fixed set of findings, optionally after a delay.
type fakeScanner struct {
	id       string
	findings []scanner.Finding
	delay    time.Duration
	err      error
}

func (f *fakeScanner) ID() string                 { return f.id }
func (f *fakeScanner) Name() string               { return f.id }
func (f *fakeScanner) Category() scanner.Category { return scanner.CategorySystem }
func (f *fakeScanner) IsAvailable() bool          { return true }

func (f *fakeScanner) Scan(cfg *scanner.Config) ([]scanner.Finding, error) {
	time.Sleep(f.delay)
	if f.err != nil {
		return nil, f.err
	}
	for _, it := range f.findings {
		if cfg.OnProgress != nil {
			cfg.OnProgress(it.Path)
		}
		if cfg.OnItem != nil {
			cfg.OnItem(it)
		}
	}
	return f.findings, nil
}

func drainSession(t *testing.T, s *ScanSession) []Msg {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)

	var msgs []Msg
	for !s.Done() {
		if time.Now().After(deadline) {
			t.Fatal("scan session did not complete")
		}
		msgs = append(msgs, s.Poll()...)
		time.Sleep(time.Millisecond)
	}
	return msgs
}

func TestScanCompleteArrivesAfterEveryFinished(t *testing.T) {
	eng := New(zerolog.Nop())
	scanners := []scanner.Scanner{
		&fakeScanner{id: "fast", findings: []scanner.Finding{{ID: "a", Size: 10}}},
		&fakeScanner{id: "slow", delay: 50 * time.Millisecond, findings: []scanner.Finding{{ID: "b", Size: 20}}},
		&fakeScanner{id: "broken", err: errors.New("boom")},
	}

	rep := NewReport()
	session := eng.StartScan(scanners, &scanner.Config{}, rep)
	msgs := drainSession(t, session)

	finished := 0
	completeAt := -1
	for i, m := range msgs {
		switch m.(type) {
		case ScannerFinished:
			finished++
		case ScanComplete:
			completeAt = i
		}
	}

	assert.Equal(t, 3, finished, "a failed scanner still finishes")
	require.GreaterOrEqual(t, completeAt, 0)
	assert.Equal(t, len(msgs)-1, completeAt, "ScanComplete is the last message")
}

func TestPerScannerMessageOrdering(t *testing.T) {
	eng := New(zerolog.Nop())
	scanners := []scanner.Scanner{
		&fakeScanner{id: "s1", findings: []scanner.Finding{{ID: "a", Size: 1}, {ID: "b", Size: 2}}},
		&fakeScanner{id: "s2", findings: []scanner.Finding{{ID: "c", Size: 3}}},
	}

	session := eng.StartScan(scanners, &scanner.Config{}, NewReport())
	msgs := drainSession(t, session)

	state := map[string]string{} // scanner id -> last phase seen
	for _, m := range msgs {
		switch msg := m.(type) {
		case ScannerStarted:
			assert.Empty(t, state[msg.ScannerID])
			state[msg.ScannerID] = "started"
		case ItemFound:
			assert.Equal(t, "started", state[msg.ScannerID])
		case ScannerFinished:
			assert.Equal(t, "started", state[msg.ScannerID])
			state[msg.ScannerID] = "finished"
		}
	}
	assert.Equal(t, "finished", state["s1"])
	assert.Equal(t, "finished", state["s2"])
}

func TestFindingsStreamIntoReport(t *testing.T) {
	eng := New(zerolog.Nop())
	scanners := []scanner.Scanner{
		&fakeScanner{id: "caches", findings: []scanner.Finding{{ID: "a", Size: 100}, {ID: "b", Size: 50}}},
	}

	rep := NewReport()
	session := eng.StartScan(scanners, &scanner.Config{}, rep)
	for _, m := range drainSession(t, session) {
		rep.Apply(m)
	}

	c := rep.Category("caches")
	require.NotNil(t, c)
	assert.Equal(t, 2, c.ItemCount())
	assert.Equal(t, int64(150), rep.TotalSize)
	assert.False(t, rep.Scanning())
}

func TestStartScanDropsPreviousResultsForRescannedIDs(t *testing.T) {
	eng := New(zerolog.Nop())

	rep := NewReport()
	applyScanner(rep, "caches", 100)
	applyScanner(rep, "logs", 42)

	rescan := []scanner.Scanner{
		&fakeScanner{id: "caches", findings: []scanner.Finding{{ID: "new", Size: 7}}},
	}
	session := eng.StartScan(rescan, &scanner.Config{}, rep)
	for _, m := range drainSession(t, session) {
		rep.Apply(m)
	}

	assert.Equal(t, int64(7), rep.Category("caches").SizeBytes)
	assert.Equal(t, int64(42), rep.Category("logs").SizeBytes)
	assert.Equal(t, int64(49), rep.TotalSize)
}

// A result stream well past the session buffer must still deliver every
// finding losslessly, as long as the consumer keeps polling.
func TestLargeResultStreamCompletes(t *testing.T) {
	findings := make([]scanner.Finding, 3*sessionBuffer)
	for i := range findings {
		findings[i] = scanner.Finding{ID: "f", Size: 1}
	}

	eng := New(zerolog.Nop())
	rep := NewReport()
	session := eng.StartScan([]scanner.Scanner{
		&fakeScanner{id: "noisy", findings: findings},
	}, &scanner.Config{}, rep)

	items := 0
	for _, m := range drainSession(t, session) {
		if _, ok := m.(ItemFound); ok {
			items++
		}
		rep.Apply(m)
	}

	assert.Equal(t, len(findings), items)
	assert.Equal(t, int64(len(findings)), rep.TotalSize)
}

func TestPollIsNonBlocking(t *testing.T) {
	eng := New(zerolog.Nop())
	scanners := []scanner.Scanner{
		&fakeScanner{id: "slow", delay: 200 * time.Millisecond},
	}

	session := eng.StartScan(scanners, &scanner.Config{}, NewReport())

	start := time.Now()
	session.Poll()
	assert.Less(t, time.Since(start), 50*time.Millisecond)

	drainSession(t, session)
}
