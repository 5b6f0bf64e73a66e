package scanner

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/macsweep/macsweep/internal/fsutil"
	"github.com/macsweep/macsweep/internal/safety"
)

// DevJunkScanner globs project roots for regenerable build output:
// node_modules, cargo targets, python venvs and the like.
type DevJunkScanner struct {
	patterns    []devPattern
	searchRoots []string
	checker     *safety.Checker
}

type devPattern struct {
	label string
	glob  string
}

func NewDevJunkScanner() *DevJunkScanner {
	home := homeDir()
	return &DevJunkScanner{
		patterns: []devPattern{
			{"node_modules", "**/node_modules"},
			{"target", "**/target"},
			{".gradle", "**/.gradle"},
			{"build", "**/build"},
			{"dist", "**/dist"},
			{".cache", "**/.cache"},
			{"__pycache__", "**/__pycache__"},
			{".venv", "**/.venv"},
		},
		searchRoots: []string{
			filepath.Join(home, "Documents"),
			filepath.Join(home, "Projects"),
			filepath.Join(home, "Developer"),
			filepath.Join(home, "Workspace"),
			filepath.Join(home, "src"),
			filepath.Join(home, "code"),
		},
		checker: safety.NewChecker(),
	}
}

func (s *DevJunkScanner) ID() string         { return "dev_junk" }
func (s *DevJunkScanner) Name() string       { return "Development Junk" }
func (s *DevJunkScanner) Category() Category { return CategoryDevelopment }
func (s *DevJunkScanner) IsAvailable() bool  { return true }

func (s *DevJunkScanner) Scan(cfg *Config) ([]Finding, error) {
	var items []Finding

	for _, root := range s.searchRoots {
		if !pathExists(root) {
			continue
		}

		for _, pat := range s.patterns {
			fullPattern := filepath.Join(root, pat.glob)
			cfg.reportProgress(fullPattern)

			matches, err := doublestar.FilepathGlob(fullPattern)
			if err != nil {
				continue
			}

			for _, match := range matches {
				info, err := os.Lstat(match)
				if err != nil || !info.IsDir() {
					continue
				}
				if cfg.isExcluded(match) {
					continue
				}

				size := fsutil.DirSize(match)
				if size < cfg.MinSize {
					continue
				}

				item := probeFinding(
					fmt.Sprintf("dev_%s_%d", pat.label, len(items)),
					fmt.Sprintf("%s (%s)", filepath.Base(match), pat.label),
					match,
					size,
					CategoryDevelopment,
					s.checker.Check(match),
				)
				item = withMeta(item, s.ID())

				cfg.reportItem(item)
				items = append(items, item)
			}
		}
	}

	return finalize(items, 50), nil
}
