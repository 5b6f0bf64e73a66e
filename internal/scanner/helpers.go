package scanner

import (
	"os"

	"github.com/macsweep/macsweep/internal/fsutil"
	"github.com/macsweep/macsweep/internal/safety"
)

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "/"
	}
	return home
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// probeFinding builds a Finding for a path whose size is already known,
// filling counts and timestamps from the filesystem.
func probeFinding(id, name, path string, size int64, cat Category, lvl safety.Level) Finding {
	return Finding{
		ID:           id,
		Name:         name,
		Path:         path,
		Size:         size,
		FileCount:    fsutil.CountFiles(path),
		LastAccessed: fsutil.AccessTime(path),
		LastModified: fsutil.ModTime(path),
		Safety:       lvl,
		Category:     cat,
	}
}

// walkDepth limits a recursive enumeration the way the scanners expect:
// depth 0 is the root itself, depth 1 its immediate children, and so on.
func walkDepth(root, path string) int {
	if root == path {
		return 0
	}
	depth := 0
	for i := len(root); i < len(path); i++ {
		if path[i] == '/' {
			depth++
		}
	}
	return depth
}
