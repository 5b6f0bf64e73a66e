//go:build !darwin && !linux

package fsutil

import (
	"os"
	"time"
)

func accessTime(info os.FileInfo) time.Time {
	// No portable atime; fall back to mtime.
	return info.ModTime()
}
