// Package fsutil provides the size-probe primitives the scan engine is
// built on: recursive byte totals, file counts, and a device-bounded
// streaming walk. All of them tolerate partially unreadable trees by
// skipping entries they cannot enumerate.
package fsutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// DirSize returns the total byte size of all regular files under path.
// A plain file reports its own length; a non-existent path reports 0.
func DirSize(path string) int64 {
	info, err := os.Lstat(path)
	if err != nil {
		return 0
	}
	if !info.IsDir() {
		return info.Size()
	}

	var total int64
	_ = filepath.WalkDir(path, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entry: count what we can, keep walking.
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			return nil
		}
		total += fi.Size()
		return nil
	})
	return total
}

// CountFiles returns the number of regular files under path.
func CountFiles(path string) int64 {
	info, err := os.Lstat(path)
	if err != nil {
		return 0
	}
	if !info.IsDir() {
		if info.Mode().IsRegular() {
			return 1
		}
		return 0
	}

	var count int64
	_ = filepath.WalkDir(path, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.Type().IsRegular() {
			count++
		}
		return nil
	})
	return count
}

// ModTime returns the last-modified time of path, or the zero time if the
// path cannot be stat'ed.
func ModTime(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}

// AccessTime returns the last-accessed time of path, or the zero time if
// it is unavailable on this platform.
func AccessTime(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return accessTime(info)
}
