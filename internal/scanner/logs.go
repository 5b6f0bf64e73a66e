package scanner

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/macsweep/macsweep/internal/fsutil"
	"github.com/macsweep/macsweep/internal/safety"
)

// LogScanner finds log files and log directories under the user's
// Library/Logs.
type LogScanner struct {
	logDirs []string
	checker *safety.Checker
}

func NewLogScanner() *LogScanner {
	return &LogScanner{
		logDirs: []string{filepath.Join(homeDir(), "Library/Logs")},
		checker: safety.NewChecker(),
	}
}

func (s *LogScanner) ID() string         { return "system_logs" }
func (s *LogScanner) Name() string       { return "System Logs" }
func (s *LogScanner) Category() Category { return CategorySystem }
func (s *LogScanner) IsAvailable() bool  { return true }

func (s *LogScanner) Scan(cfg *Config) ([]Finding, error) {
	var items []Finding

	for _, logDir := range s.logDirs {
		if !pathExists(logDir) {
			continue
		}

		root := logDir
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.IsDir() && walkDepth(root, path) > cfg.MaxDepth {
				return fs.SkipDir
			}
			if cfg.isExcluded(path) {
				if d.IsDir() {
					return fs.SkipDir
				}
				return nil
			}
			if path == root {
				return nil
			}

			var size int64
			if d.IsDir() {
				size = fsutil.DirSize(path)
			} else if d.Type().IsRegular() {
				info, err := d.Info()
				if err != nil {
					return nil
				}
				size = info.Size()
			} else {
				return nil
			}

			if size < cfg.MinSize {
				return nil
			}

			item := probeFinding(
				fmt.Sprintf("log_%d", len(items)),
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
