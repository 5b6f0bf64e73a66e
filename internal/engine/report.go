package engine

import (
	"github.com/macsweep/macsweep/internal/scanner"
)

// CategoryReport aggregates the findings of one scanner.
type CategoryReport struct {
	ScannerID string
	Name      string
	Category  scanner.Category
	Findings  []scanner.Finding
	SizeBytes int64
	// InProgress is true from ScannerStarted until ScannerFinished. A
	// scanner with zero findings still flips to finished, so the UI
	// stops showing it as scanning.
	InProgress bool
}

// ItemCount returns the number of findings in the category.
func (c *CategoryReport) ItemCount() int { return len(c.Findings) }

// Report is the aggregate scan result. It is owned by the consumer
// goroutine: workers never touch it, they send messages that the
// consumer applies via Apply.
//
// TotalSize and TotalItems always equal the sums over the categories.
type Report struct {
	categories map[string]*CategoryReport
	order      []string

	TotalSize  int64
	TotalItems int

	// Progress counters, reset at the start of each orchestration.
	PathsVisited int64
	LastPath     string
}

func NewReport() *Report {
	return &Report{categories: make(map[string]*CategoryReport)}
}

// Category returns the report for a scanner id, or nil.
func (r *Report) Category(scannerID string) *CategoryReport {
	return r.categories[scannerID]
}

// Categories returns the category reports in first-seen order.
func (r *Report) Categories() []*CategoryReport {
	out := make([]*CategoryReport, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.categories[id])
	}
	return out
}

// Scanning reports whether any category is still in progress.
func (r *Report) Scanning() bool {
	for _, c := range r.categories {
		if c.InProgress {
			return true
		}
	}
	return false
}

func (r *Report) category(scannerID string) *CategoryReport {
	c, ok := r.categories[scannerID]
	if !ok {
		c = &CategoryReport{ScannerID: scannerID}
		r.categories[scannerID] = c
		r.order = append(r.order, scannerID)
	}
	return c
}

// DropCategories removes the named categories, subtracting their size
// and item counts from the totals. The orchestrator calls this before
// rescanning a subset, so untouched categories keep their findings.
func (r *Report) DropCategories(scannerIDs []string) {
	for _, id := range scannerIDs {
		c, ok := r.categories[id]
		if !ok {
			continue
		}
		r.TotalSize -= c.SizeBytes
		r.TotalItems -= len(c.Findings)
		delete(r.categories, id)
	}

	kept := r.order[:0]
	for _, id := range r.order {
		if _, ok := r.categories[id]; ok {
			kept = append(kept, id)
		}
	}
	r.order = kept
}

// ResetProgress zeroes the path counters for a new orchestration.
func (r *Report) ResetProgress() {
	r.PathsVisited = 0
	r.LastPath = ""
}

// Apply folds one session message into the report. Call only from the
// consumer goroutine.
func (r *Report) Apply(msg Msg) {
	switch m := msg.(type) {
	case ScannerStarted:
		c := r.category(m.ScannerID)
		c.Name = m.Name
		c.InProgress = true

	case PathVisited:
		r.PathsVisited++
		r.LastPath = m.Path

	case ItemFound:
		c := r.category(m.ScannerID)
		c.Findings = append(c.Findings, m.Item)
		c.SizeBytes += m.Item.Size
		r.TotalSize += m.Item.Size
		r.TotalItems++

	case ScannerFinished:
		c := r.category(m.ScannerID)
		c.Name = m.Name
		c.Category = m.Category
		c.InProgress = false

	case ScanComplete:
		// Terminal marker; per-category state is already final.
	}
}
