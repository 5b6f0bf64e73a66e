package scanner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macsweep/macsweep/internal/safety"
	"github.com/macsweep/macsweep/internal/testutil"
)

func newTestDuplicatesScanner(roots ...string) *DuplicatesScanner {
	return &DuplicatesScanner{searchPaths: roots, hashWorkers: 2}
}

func TestDuplicatesGroupsIdenticalFiles(t *testing.T) {
	f := testutil.NewFixture(t)

	f1 := f.File("docs/f1.bin", 2048, 'a')
	f2 := f.File("docs/f2.bin", 2048, 'a')
	f.File("docs/f3.bin", 2048, 'b') // same size, different content

	// f1 is the oldest, so it is kept as the original.
	f.Chtimes("docs/f1.bin", time.Now().Add(-48*time.Hour))
	f.Chtimes("docs/f2.bin", time.Now().Add(-24*time.Hour))

	s := newTestDuplicatesScanner(f.Root)
	items, err := s.Scan(&Config{MaxDepth: 5})
	require.NoError(t, err)

	require.Len(t, items, 1)
	item := items[0]
	assert.Equal(t, f1, item.Path)
	assert.Equal(t, int64(2048), item.Size, "size counts the duplicates only, not the original")
	assert.Equal(t, int64(1), item.FileCount)
	assert.Equal(t, safety.Caution, item.Safety)
	assert.Equal(t, f1, item.Metadata["original_path"])
	assert.Equal(t, f2, item.Metadata["duplicate_paths"])
}

func TestDuplicatesIgnoresUniqueAndSmallFiles(t *testing.T) {
	f := testutil.NewFixture(t)
	f.File("docs/unique1.bin", 4096, 'a')
	f.File("docs/unique2.bin", 4096, 'b')
	// Identical but below the 1KB floor.
	f.File("docs/tiny1.bin", 100, 'c')
	f.File("docs/tiny2.bin", 100, 'c')

	s := newTestDuplicatesScanner(f.Root)
	items, err := s.Scan(&Config{MaxDepth: 5})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestDuplicatesMultipleCopies(t *testing.T) {
	f := testutil.NewFixture(t)
	f.File("a.bin", 2048, 'x')
	f.File("b.bin", 2048, 'x')
	f.File("c.bin", 2048, 'x')
	f.Chtimes("a.bin", time.Now().Add(-72*time.Hour))

	s := newTestDuplicatesScanner(f.Root)
	items, err := s.Scan(&Config{MaxDepth: 5})
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, f.Path("a.bin"), items[0].Metadata["original_path"])
	assert.Equal(t, int64(4096), items[0].Size)
	assert.Equal(t, int64(2), items[0].FileCount)
}

func TestDuplicatesSkipsHiddenFiles(t *testing.T) {
	f := testutil.NewFixture(t)
	f.File(".hidden1", 2048, 'x')
	f.File(".hidden2", 2048, 'x')

	s := newTestDuplicatesScanner(f.Root)
	items, err := s.Scan(&Config{MaxDepth: 5})
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestDuplicatesStreamsItems(t *testing.T) {
	f := testutil.NewFixture(t)
	f.File("a.bin", 2048, 'x')
	f.File("b.bin", 2048, 'x')

	var streamed []Finding
	s := newTestDuplicatesScanner(f.Root)
	items, err := s.Scan(&Config{
		MaxDepth: 5,
		OnItem:   func(it Finding) { streamed = append(streamed, it) },
	})
	require.NoError(t, err)
	assert.Equal(t, items, streamed)
}
