// Package scanner defines the scanner plugin interface and the concrete
// scanners that discover reclaimable storage. Each scanner owns its
// candidate-location table and safety classification; the orchestration
// in internal/engine only sees the Scanner interface.
package scanner

import (
	"sort"
	"strings"
	"time"

	"github.com/macsweep/macsweep/internal/safety"
)

// Category groups findings by the kind of scanner that produced them.
type Category int

const (
	CategorySystem Category = iota
	CategoryBrowser
	CategoryDevelopment
	CategoryApps
	CategoryTrash
)

func (c Category) String() string {
	switch c {
	case CategorySystem:
		return "System"
	case CategoryBrowser:
		return "Browser"
	case CategoryDevelopment:
		return "Development"
	case CategoryApps:
		return "Apps"
	case CategoryTrash:
		return "Trash"
	default:
		return "Unknown"
	}
}

// Finding is one reclaimable or actionable filesystem object discovered
// by a scanner. Findings are immutable after creation; scanners send
// owned copies over the session channel, never shared references.
type Finding struct {
	ID           string
	Name         string
	Path         string
	Size         int64
	FileCount    int64
	LastAccessed time.Time // zero when unknown
	LastModified time.Time // zero when unknown
	Safety       safety.Level
	Category     Category
	Metadata     map[string]string
}

// Config supplies scan thresholds and the optional streaming callbacks.
// Callbacks may be invoked from worker goroutines; they must only send,
// never touch consumer-owned state.
type Config struct {
	MinSize       int64
	MaxDepth      int
	ExcludedPaths []string

	// OnProgress is called as candidate paths are visited.
	OnProgress func(path string)
	// OnItem is called as each finding is accepted.
	OnItem func(f Finding)
}

func (c *Config) reportProgress(path string) {
	if c.OnProgress != nil {
		c.OnProgress(path)
	}
}

func (c *Config) reportItem(f Finding) {
	if c.OnItem != nil {
		c.OnItem(f)
	}
}

func (c *Config) isExcluded(path string) bool {
	for _, ex := range c.ExcludedPaths {
		if ex != "" && strings.HasPrefix(path, ex) {
			return true
		}
	}
	return false
}

// Scanner is one scan plugin.
type Scanner interface {
	ID() string
	Name() string
	Category() Category

	// Scan enumerates candidates and returns accepted findings, sorted
	// by descending size. Accepted findings are also streamed through
	// cfg.OnItem as they are found.
	Scan(cfg *Config) ([]Finding, error)

	// IsAvailable reports whether the scanner has anything to look at
	// on this machine.
	IsAvailable() bool
}

// Registry holds the ordered set of scanners.
type Registry struct {
	scanners []Scanner
}

// NewRegistry returns a registry with every built-in scanner, in the
// order they are presented to the user.
func NewRegistry() *Registry {
	r := &Registry{}
	for _, s := range []Scanner{
		NewCacheScanner(),
		NewLogScanner(),
		NewTrashScanner(),
		NewBrowserCacheScanner(),
		NewDevJunkScanner(),
		NewLargeOldFilesScanner(),
		NewMailAttachmentsScanner(),
		NewPhotoJunkScanner(),
		NewMusicJunkScanner(),
		NewDuplicatesScanner(),
		NewPrivacyScanner(),
		NewMaintenanceScanner(),
		NewStartupItemsScanner(),
	} {
		r.Register(s)
	}
	return r
}

// NewEmptyRegistry returns a registry with no scanners registered.
func NewEmptyRegistry() *Registry { return &Registry{} }

// Register appends a scanner.
func (r *Registry) Register(s Scanner) {
	r.scanners = append(r.scanners, s)
}

// All returns every registered scanner in order.
func (r *Registry) All() []Scanner {
	return append([]Scanner(nil), r.scanners...)
}

// Available returns the registered scanners that have something to look
// at on this machine, in order. Scan entry points use this so a scanner
// with no candidate locations never shows up as an empty category.
func (r *Registry) Available() []Scanner {
	var out []Scanner
	for _, s := range r.scanners {
		if s.IsAvailable() {
			out = append(out, s)
		}
	}
	return out
}

// Get returns the scanner with the given id, or nil.
func (r *Registry) Get(id string) Scanner {
	for _, s := range r.scanners {
		if s.ID() == id {
			return s
		}
	}
	return nil
}

// Enabled returns the registered scanners whose id appears in ids,
// preserving registration order. Scanners that are not available on
// this machine are skipped even when requested.
func (r *Registry) Enabled(ids []string) []Scanner {
	var out []Scanner
	for _, s := range r.scanners {
		if !s.IsAvailable() {
			continue
		}
		for _, id := range ids {
			if s.ID() == id {
				out = append(out, s)
				break
			}
		}
	}
	return out
}

// IDs returns every registered scanner id in order.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.scanners))
	for _, s := range r.scanners {
		ids = append(ids, s.ID())
	}
	return ids
}

// finalize sorts findings by descending size and caps the list, bounding
// both memory and UI cost for very noisy scanners.
func finalize(items []Finding, maxItems int) []Finding {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Size > items[j].Size
	})
	if maxItems > 0 && len(items) > maxItems {
		items = items[:maxItems]
	}
	return items
}

func withMeta(f Finding, scannerID string) Finding {
	if f.Metadata == nil {
		f.Metadata = make(map[string]string)
	}
	f.Metadata["scanner_id"] = scannerID
	return f
}
