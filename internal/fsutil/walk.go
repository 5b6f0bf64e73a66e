package fsutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

// DeviceID returns the device number a path lives on. The second return
// is false when the path cannot be stat'ed or the platform does not
// expose a device ID.
func DeviceID(path string) (uint64, bool) {
	info, err := os.Lstat(path)
	if err != nil {
		return 0, false
	}
	st, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return 0, false
	}
	return uint64(st.Dev), true
}

// SameDevice reports whether two paths are on the same filesystem.
// If either device ID is unavailable the paths are assumed to match,
// so a stat failure never hides an otherwise scannable subtree.
func SameDevice(a, b string) bool {
	da, oka := DeviceID(a)
	db, okb := DeviceID(b)
	if !oka || !okb {
		return true
	}
	return da == db
}

// WalkFilesOnDevice walks the subtree rooted at root and calls visit with
// the size of every regular file, in walk order. Symlinks are never
// followed, subtrees under an excluded prefix are skipped, and
// directories on a different device than root are not descended into.
// Unreadable entries are skipped rather than aborting the walk.
func WalkFilesOnDevice(root string, excluded []string, visit func(size int64)) {
	rootDev, haveDev := DeviceID(root)

	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}
		if d.IsDir() {
			for _, ex := range excluded {
				if ex != "" && strings.HasPrefix(path, ex) {
					return fs.SkipDir
				}
			}
			if haveDev && path != root {
				if dev, ok := DeviceID(path); ok && dev != rootDev {
					return fs.SkipDir
				}
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		visit(info.Size())
		return nil
	})
}
