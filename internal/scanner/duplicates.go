package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/macsweep/macsweep/internal/fsutil"
	"github.com/macsweep/macsweep/internal/safety"
	"github.com/macsweep/macsweep/pkg/utils"
)

// Files below this size are never worth deduplicating, whatever the
// configured threshold says.
const duplicatesFloor = 1024

// DuplicatesScanner groups candidate files by size, hashes only within
// same-size groups, and reports each group of byte-identical files as one
// finding. The oldest file in a group is kept as the original; the
// finding's size is the sum of the duplicates only.
type DuplicatesScanner struct {
	searchPaths []string
	hashWorkers int
}

func NewDuplicatesScanner() *DuplicatesScanner {
	home := homeDir()
	return &DuplicatesScanner{
		searchPaths: []string{
			filepath.Join(home, "Documents"),
			filepath.Join(home, "Downloads"),
			filepath.Join(home, "Desktop"),
			filepath.Join(home, "Pictures"),
			filepath.Join(home, "Movies"),
			filepath.Join(home, "Music"),
		},
		hashWorkers: 4,
	}
}

func (s *DuplicatesScanner) ID() string         { return "duplicates" }
func (s *DuplicatesScanner) Name() string       { return "Duplicates" }
func (s *DuplicatesScanner) Category() Category { return CategorySystem }

func (s *DuplicatesScanner) IsAvailable() bool {
	for _, p := range s.searchPaths {
		if pathExists(p) {
			return true
		}
	}
	return false
}

func (s *DuplicatesScanner) Scan(cfg *Config) ([]Finding, error) {
	minSize := cfg.MinSize
	if minSize < duplicatesFloor {
		minSize = duplicatesFloor
	}

	sizeGroups := make(map[int64][]string)

	for _, root := range s.searchPaths {
		if !pathExists(root) {
			continue
		}

		r := root
		_ = filepath.WalkDir(r, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.IsDir() {
				if walkDepth(r, path) > cfg.MaxDepth {
					return fs.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() {
				return nil
			}
			if cfg.isExcluded(path) {
				return nil
			}
			if strings.HasPrefix(filepath.Base(path), ".") {
				return nil
			}

			cfg.reportProgress(path)

			info, err := d.Info()
			if err != nil {
				return nil
			}
			if info.Size() >= minSize {
				sizeGroups[info.Size()] = append(sizeGroups[info.Size()], path)
			}
			return nil
		})
	}

	// Content hashing is the expensive part; only same-size groups are
	// hashed, with bounded fan-out.
	var mu sync.Mutex
	hashGroups := make(map[string][]string)

	var g errgroup.Group
	g.SetLimit(s.hashWorkers)

	for size, paths := range sizeGroups {
		if len(paths) < 2 {
			continue
		}
		for _, path := range paths {
			size, path := size, path
			g.Go(func() error {
				hash, err := utils.HashFile(path)
				if err != nil {
					return nil // unreadable file contributes nothing
				}
				key := fmt.Sprintf("%d:%s", size, hash)
				mu.Lock()
				hashGroups[key] = append(hashGroups[key], path)
				mu.Unlock()
				return nil
			})
		}
	}
	_ = g.Wait()

	// Deterministic group order for stable IDs.
	keys := make([]string, 0, len(hashGroups))
	for key, paths := range hashGroups {
		if len(paths) >= 2 {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	var items []Finding
	for groupID, key := range keys {
		paths := hashGroups[key]

		sort.Slice(paths, func(i, j int) bool {
			return modTimeOf(paths[i]).Before(modTimeOf(paths[j]))
		})

		original := paths[0]
		duplicates := paths[1:]

		var dupSize int64
		for _, p := range duplicates {
			if info, err := os.Stat(p); err == nil {
				dupSize += info.Size()
			}
		}

		item := Finding{
			ID:           fmt.Sprintf("dup_%d", groupID),
			Name:         fmt.Sprintf("%s (%d duplicates)", filepath.Base(original), len(duplicates)),
			Path:         original,
			Size:         dupSize,
			FileCount:    int64(len(duplicates)),
			LastAccessed: fsutil.AccessTime(original),
			LastModified: fsutil.ModTime(original),
			Safety:       safety.Caution,
			Category:     CategorySystem,
			Metadata: map[string]string{
				"group_id":        fmt.Sprintf("%d", groupID),
				"original_path":   original,
				"duplicate_paths": strings.Join(duplicates, "|"),
			},
		}
		item = withMeta(item, s.ID())

		cfg.reportItem(item)
		items = append(items, item)
	}

	return finalize(items, 100), nil
}

func modTimeOf(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}
