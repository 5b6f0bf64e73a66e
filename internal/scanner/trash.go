package scanner

import (
	"path/filepath"

	"github.com/macsweep/macsweep/internal/fsutil"
	"github.com/macsweep/macsweep/internal/safety"
)

// TrashScanner reports the user's Trash as a single finding.
type TrashScanner struct {
	trashPaths []string
}

func NewTrashScanner() *TrashScanner {
	return &TrashScanner{
		trashPaths: []string{filepath.Join(homeDir(), ".Trash")},
	}
}

func (s *TrashScanner) ID() string         { return "trash" }
func (s *TrashScanner) Name() string       { return "Trash" }
func (s *TrashScanner) Category() Category { return CategoryTrash }
func (s *TrashScanner) IsAvailable() bool  { return true }

func (s *TrashScanner) Scan(cfg *Config) ([]Finding, error) {
	var items []Finding

	for _, trashPath := range s.trashPaths {
		if !pathExists(trashPath) {
			continue
		}

		cfg.reportProgress(trashPath)

		size := fsutil.DirSize(trashPath)
		if size == 0 {
			continue
		}

		// Trash contents are already marked for deletion by the user.
		item := probeFinding("trash_main", "Trash", trashPath, size, CategoryTrash, safety.Safe)
		item = withMeta(item, s.ID())

		cfg.reportItem(item)
		items = append(items, item)
	}

	return items, nil
}
