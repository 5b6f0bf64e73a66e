package scanner

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/macsweep/macsweep/internal/fsutil"
	"github.com/macsweep/macsweep/internal/safety"
)

const (
	largeFileDefaultMinSize = 100 * 1024 * 1024
	largeFileMinAgeDays     = 30
)

// LargeOldFilesScanner walks the home directory for big files that have
// not been touched in a month. Media and system folders are skipped; the
// user is assumed to want those where they are.
type LargeOldFilesScanner struct {
	home         string
	excludedDirs []string
}

func NewLargeOldFilesScanner() *LargeOldFilesScanner {
	home := homeDir()
	return &LargeOldFilesScanner{
		home: home,
		excludedDirs: []string{
			filepath.Join(home, "Library"),
			filepath.Join(home, ".Trash"),
			filepath.Join(home, "Applications"),
			filepath.Join(home, "Music"),
			filepath.Join(home, "Movies"),
			filepath.Join(home, "Pictures"),
			filepath.Join(home, ".config"),
			filepath.Join(home, ".cache"),
		},
	}
}

func (s *LargeOldFilesScanner) ID() string         { return "large_old_files" }
func (s *LargeOldFilesScanner) Name() string       { return "Large & Old Files" }
func (s *LargeOldFilesScanner) Category() Category { return CategorySystem }
func (s *LargeOldFilesScanner) IsAvailable() bool  { return true }

func (s *LargeOldFilesScanner) isExcluded(path string) bool {
	for _, ex := range s.excludedDirs {
		if strings.HasPrefix(path, ex) {
			return true
		}
	}
	return false
}

// fileAgeDays is counted from the older of atime and mtime, so a file
// recently read but not modified still counts as in use.
func fileAgeDays(path string) int64 {
	accessed := fsutil.AccessTime(path)
	modified := fsutil.ModTime(path)
	if accessed.IsZero() && modified.IsZero() {
		return -1
	}

	older := accessed
	if older.IsZero() || (!modified.IsZero() && modified.Before(older)) {
		older = modified
	}
	return int64(time.Since(older).Hours() / 24)
}

func (s *LargeOldFilesScanner) Scan(cfg *Config) ([]Finding, error) {
	minSize := cfg.MinSize
	if minSize <= 0 {
		minSize = largeFileDefaultMinSize
	}
	maxDepth := cfg.MaxDepth
	if maxDepth <= 0 {
		maxDepth = 10
	}

	var items []Finding

	_ = filepath.WalkDir(s.home, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if s.isExcluded(path) || cfg.isExcluded(path) {
				return fs.SkipDir
			}
			if path != s.home && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			if walkDepth(s.home, path) > maxDepth {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if s.isExcluded(path) || cfg.isExcluded(path) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		if info.Size() < minSize {
			return nil
		}

		cfg.reportProgress(path)

		age := fileAgeDays(path)
		if age < largeFileMinAgeDays {
			return nil
		}

		item := Finding{
			ID:           fmt.Sprintf("large_file_%d", len(items)),
			Name:         d.Name(),
			Path:         path,
			Size:         info.Size(),
			FileCount:    1,
			LastAccessed: fsutil.AccessTime(path),
			LastModified: info.ModTime(),
			Safety:       safety.Caution,
			Category:     CategorySystem,
		}
		item = withMeta(item, s.ID())

		cfg.reportItem(item)
		items = append(items, item)
		return nil
	})

	return finalize(items, 100), nil
}
