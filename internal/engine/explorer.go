package engine

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/macsweep/macsweep/internal/fsutil"
)

// FolderEntry is one child of the browsed directory. Size grows
// monotonically while Scanning is true; the update carrying
// Scanning=false is the only authoritative final size.
type FolderEntry struct {
	Name     string
	Path     string
	Size     int64
	IsDir    bool
	Scanning bool
}

// CachedScan is the snapshot kept per visited directory. WasLoading
// records whether the snapshot was taken mid-scan; a complete snapshot
// is reused verbatim on re-entry, a partial one resumes only its
// incomplete children.
type CachedScan struct {
	Entries    []FolderEntry
	TotalSize  int64
	WasLoading bool
}

// entryUpdate is one streamed size report for a directory child.
type entryUpdate struct {
	path     string
	size     int64
	scanning bool
}

type browseSession struct {
	ch chan entryUpdate
}

// Explorer drives the disk-usage view: it lists a directory's children
// synchronously and sizes directory children in the background, either
// on the shared browse pool or on one dedicated goroutine. All fields
// are owned by the consumer goroutine; workers only send updates.
type Explorer struct {
	engine *Engine
	log    zerolog.Logger

	excluded []string
	parallel bool
	threads  int

	current string
	entries []FolderEntry
	dirty   bool
	cache   map[string]CachedScan
	session *browseSession
}

func NewExplorer(eng *Engine, log zerolog.Logger, excluded []string) *Explorer {
	return &Explorer{
		engine:   eng,
		log:      log,
		excluded: excluded,
		parallel: true,
		threads:  4,
		cache:    make(map[string]CachedScan),
	}
}

// SetParallel switches between pool-backed and single-goroutine
// scanning. Takes effect on the next Enter.
func (x *Explorer) SetParallel(parallel bool) { x.parallel = parallel }

// SetThreads sets the requested browse pool size. Takes effect on the
// next Enter.
func (x *Explorer) SetThreads(n int) {
	if n < 1 {
		n = 1
	}
	x.threads = n
}

func (x *Explorer) Parallel() bool  { return x.parallel }
func (x *Explorer) Threads() int    { return x.threads }
func (x *Explorer) Current() string { return x.current }

// Entries returns a copy of the current listing.
func (x *Explorer) Entries() []FolderEntry {
	return append([]FolderEntry(nil), x.entries...)
}

// TotalSize sums the current entry sizes.
func (x *Explorer) TotalSize() int64 {
	var total int64
	for _, e := range x.entries {
		total += e.Size
	}
	return total
}

// Scanning reports whether any child is still being sized.
func (x *Explorer) Scanning() bool {
	for _, e := range x.entries {
		if e.Scanning {
			return true
		}
	}
	return false
}

func (x *Explorer) isExcluded(path string) bool {
	for _, ex := range x.excluded {
		if ex != "" && strings.HasPrefix(path, ex) {
			return true
		}
	}
	return false
}

// Enter switches the explorer to path. The previous directory's state
// is cached as-is; a previous complete snapshot of path is reused with
// no new work, a partial one resumes only its unfinished children.
func (x *Explorer) Enter(path string) error {
	path = filepath.Clean(path)

	x.stash()

	cached, hasCache := x.cache[path]
	if hasCache && !cached.WasLoading {
		x.current = path
		x.entries = append([]FolderEntry(nil), cached.Entries...)
		x.session = nil
		return nil
	}

	dirents, err := os.ReadDir(path)
	if err != nil {
		return err
	}

	// Sizes of children a partial snapshot already finished.
	complete := make(map[string]int64)
	if hasCache {
		for _, e := range cached.Entries {
			if !e.Scanning {
				complete[e.Path] = e.Size
			}
		}
	}

	var entries []FolderEntry
	var pending []string

	for _, d := range dirents {
		childPath := filepath.Join(path, d.Name())

		if d.Type()&fs.ModeSymlink != 0 {
			continue
		}
		if x.isExcluded(childPath) {
			continue
		}

		if !d.IsDir() {
			if !d.Type().IsRegular() {
				continue
			}
			// Files are cheap: sized synchronously, complete at once.
			var size int64
			if info, err := d.Info(); err == nil {
				size = info.Size()
			}
			entries = append(entries, FolderEntry{
				Name:  d.Name(),
				Path:  childPath,
				Size:  size,
				IsDir: false,
			})
			continue
		}

		if !fsutil.SameDevice(path, childPath) {
			continue
		}

		if size, ok := complete[childPath]; ok {
			entries = append(entries, FolderEntry{
				Name:  d.Name(),
				Path:  childPath,
				Size:  size,
				IsDir: true,
			})
			continue
		}

		entries = append(entries, FolderEntry{
			Name:     d.Name(),
			Path:     childPath,
			IsDir:    true,
			Scanning: true,
		})
		pending = append(pending, childPath)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })

	x.current = path
	x.entries = entries
	x.session = nil

	if len(pending) == 0 {
		return nil
	}

	session := &browseSession{ch: make(chan entryUpdate, sessionBuffer)}
	x.session = session

	if x.parallel {
		x.startPooled(session, pending)
	} else {
		x.startSerial(session, pending)
	}
	return nil
}

// Ascend enters the parent directory. At the filesystem root it stays
// put.
func (x *Explorer) Ascend() error {
	if x.current == "" {
		return nil
	}
	parent := filepath.Dir(x.current)
	if parent == x.current {
		return nil
	}
	return x.Enter(parent)
}

// stash snapshots the current directory, whatever its state, before
// switching away. A directory that had an entry deleted is not cached;
// only a fresh scan yields authoritative totals after a deletion.
func (x *Explorer) stash() {
	if x.current == "" {
		return
	}
	if !x.dirty {
		x.cache[x.current] = CachedScan{
			Entries:    append([]FolderEntry(nil), x.entries...),
			TotalSize:  x.TotalSize(),
			WasLoading: x.Scanning(),
		}
	}
	x.dirty = false
	if s := x.session; s != nil {
		// Keep abandoned producers from blocking; their output is for a
		// directory no longer tracked and is discarded.
		go func(ch chan entryUpdate) {
			for range ch {
			}
		}(s.ch)
		x.session = nil
	}
}

func (x *Explorer) startPooled(session *browseSession, pending []string) {
	pool := x.engine.BrowsePool(x.threads)

	remaining := make(chan struct{}, len(pending))
	for _, childPath := range pending {
		childPath := childPath
		pool.Submit(func() {
			x.scanChild(session.ch, childPath)
			remaining <- struct{}{}
		})
	}

	go func(n int) {
		for i := 0; i < n; i++ {
			<-remaining
		}
		close(session.ch)
	}(len(pending))
}

func (x *Explorer) startSerial(session *browseSession, pending []string) {
	go func() {
		for _, childPath := range pending {
			x.scanChild(session.ch, childPath)
		}
		close(session.ch)
	}()
}

// scanChild walks one directory child, streaming a running total after
// every file and a terminal scanning=false update when the walk ends.
// Intermediate updates are lossy; the terminal one is not.
func (x *Explorer) scanChild(ch chan<- entryUpdate, childPath string) {
	var total int64
	fsutil.WalkFilesOnDevice(childPath, x.excluded, func(size int64) {
		total += size
		select {
		case ch <- entryUpdate{path: childPath, size: total, scanning: true}:
		default:
		}
	})
	ch <- entryUpdate{path: childPath, size: total, scanning: false}
}

// Poll drains pending size updates into the listing without blocking.
// It returns true if anything changed.
func (x *Explorer) Poll() bool {
	s := x.session
	if s == nil {
		return false
	}

	changed := false
	for {
		select {
		case u, ok := <-s.ch:
			if !ok {
				x.session = nil
				return changed
			}
			if x.apply(u) {
				changed = true
			}
		default:
			return changed
		}
	}
}

func (x *Explorer) apply(u entryUpdate) bool {
	for i := range x.entries {
		e := &x.entries[i]
		if e.Path != u.path || !e.Scanning {
			continue
		}
		if !u.scanning {
			e.Size = u.size
			e.Scanning = false
			return true
		}
		if u.size > e.Size {
			e.Size = u.size
			return true
		}
		return false
	}
	return false
}

// Remove drops an entry from the live listing after the caller deleted
// it on disk. The current directory's cached snapshot is invalidated so
// the next visit rescans for authoritative totals; ancestor caches are
// left alone and may report stale totals until revisited.
func (x *Explorer) Remove(path string) {
	kept := x.entries[:0]
	for _, e := range x.entries {
		if e.Path != path {
			kept = append(kept, e)
		}
	}
	x.entries = kept
	x.dirty = true
	delete(x.cache, x.current)
}
