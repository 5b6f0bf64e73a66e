// Package testutil builds throwaway directory trees for scanner,
// engine and cleaner tests. Everything lives under t.TempDir() and is
// cleaned up automatically.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// Fixture is a temp directory with helpers for populating it.
type Fixture struct {
	T    *testing.T
	Root string
}

func NewFixture(t *testing.T) *Fixture {
	t.Helper()
	return &Fixture{T: t, Root: t.TempDir()}
}

// Path joins rel onto the fixture root.
func (f *Fixture) Path(rel string) string {
	return filepath.Join(f.Root, filepath.FromSlash(rel))
}

// Dir creates a directory (and parents) under the root.
func (f *Fixture) Dir(rel string) string {
	f.T.Helper()
	p := f.Path(rel)
	if err := os.MkdirAll(p, 0o755); err != nil {
		f.T.Fatalf("mkdir %s: %v", rel, err)
	}
	return p
}

// File creates a file of the given size, filled with the fill byte so
// content-hash tests can control equality.
func (f *Fixture) File(rel string, size int, fill byte) string {
	f.T.Helper()
	p := f.Path(rel)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		f.T.Fatalf("mkdir for %s: %v", rel, err)
	}
	if err := os.WriteFile(p, bytes.Repeat([]byte{fill}, size), 0o644); err != nil {
		f.T.Fatalf("write %s: %v", rel, err)
	}
	return p
}

// Chtimes backdates a file's access and modification times.
func (f *Fixture) Chtimes(rel string, when time.Time) {
	f.T.Helper()
	if err := os.Chtimes(f.Path(rel), when, when); err != nil {
		f.T.Fatalf("chtimes %s: %v", rel, err)
	}
}
