package scanner

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/macsweep/macsweep/internal/fsutil"
	"github.com/macsweep/macsweep/internal/safety"
)

// CacheScanner finds application and developer cache directories under
// the user's Library.
type CacheScanner struct {
	cacheDirs []string
	checker   *safety.Checker
}

func NewCacheScanner() *CacheScanner {
	home := homeDir()
	return &CacheScanner{
		cacheDirs: []string{
			filepath.Join(home, "Library/Caches"),
			filepath.Join(home, "Library/Developer/Xcode/DerivedData"),
		},
		checker: safety.NewChecker(),
	}
}

func (s *CacheScanner) ID() string         { return "system_caches" }
func (s *CacheScanner) Name() string       { return "System Caches" }
func (s *CacheScanner) Category() Category { return CategorySystem }
func (s *CacheScanner) IsAvailable() bool  { return true }

func (s *CacheScanner) Scan(cfg *Config) ([]Finding, error) {
	var items []Finding

	for _, cacheDir := range s.cacheDirs {
		if !pathExists(cacheDir) {
			continue
		}

		root := cacheDir
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if !d.IsDir() {
				return nil
			}
			if walkDepth(root, path) > cfg.MaxDepth {
				return fs.SkipDir
			}
			if cfg.isExcluded(path) {
				return fs.SkipDir
			}

			cfg.reportProgress(path)

			size := fsutil.DirSize(path)
			if size < cfg.MinSize {
				return nil
			}

			item := probeFinding(
				fmt.Sprintf("cache_%d", len(items)),
				filepath.Base(path),
				path,
				size,
				CategorySystem,
				s.checker.Check(path),
			)
			item = withMeta(item, s.ID())

			cfg.reportItem(item)
			items = append(items, item)
			return nil
		})
	}

	return finalize(items, 100), nil
}
