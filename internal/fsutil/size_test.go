package fsutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/macsweep/macsweep/internal/testutil"
)

func TestDirSize(t *testing.T) {
	f := testutil.NewFixture(t)
	f.File("a/one.bin", 1000, 'x')
	f.File("a/b/two.bin", 500, 'y')
	f.File("a/b/three.bin", 250, 'z')

	assert.Equal(t, int64(1750), DirSize(f.Path("a")))
}

func TestDirSizeMissingPath(t *testing.T) {
	assert.Equal(t, int64(0), DirSize(filepath.Join(t.TempDir(), "nope")))
}

func TestDirSizePlainFile(t *testing.T) {
	f := testutil.NewFixture(t)
	p := f.File("plain.bin", 4096, 'x')

	assert.Equal(t, int64(4096), DirSize(p))
}

func TestCountFiles(t *testing.T) {
	f := testutil.NewFixture(t)
	f.File("a/one.bin", 1, 'x')
	f.File("a/b/two.bin", 1, 'x')
	f.Dir("a/empty")

	assert.Equal(t, int64(2), CountFiles(f.Path("a")))
	assert.Equal(t, int64(0), CountFiles(f.Path("a/empty")))
}

func TestWalkFilesOnDeviceExcludes(t *testing.T) {
	f := testutil.NewFixture(t)
	f.File("keep/one.bin", 100, 'x')
	f.File("skip/two.bin", 100, 'x')

	var total int64
	WalkFilesOnDevice(f.Root, []string{f.Path("skip")}, func(size int64) {
		total += size
	})

	assert.Equal(t, int64(100), total)
}

func TestWalkFilesOnDeviceIgnoresEmptyExclude(t *testing.T) {
	f := testutil.NewFixture(t)
	f.File("keep/one.bin", 100, 'x')

	// An empty prefix matches every path; it must not hide the tree.
	var total int64
	WalkFilesOnDevice(f.Root, []string{""}, func(size int64) {
		total += size
	})

	assert.Equal(t, int64(100), total)
}
