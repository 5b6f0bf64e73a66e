package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macsweep/macsweep/internal/scanner"
)

func applyScanner(rep *Report, id string, sizes ...int64) {
	rep.Apply(ScannerStarted{ScannerID: id, Name: id})
	for _, s := range sizes {
		rep.Apply(ItemFound{ScannerID: id, Item: scanner.Finding{ID: id, Size: s}})
	}
	rep.Apply(ScannerFinished{ScannerID: id, Name: id})
}

func assertTotalsConsistent(t *testing.T, rep *Report) {
	t.Helper()
	var size int64
	var items int
	for _, c := range rep.Categories() {
		size += c.SizeBytes
		items += c.ItemCount()
	}
	assert.Equal(t, size, rep.TotalSize)
	assert.Equal(t, items, rep.TotalItems)
}

func TestReportTotalsMatchCategorySums(t *testing.T) {
	rep := NewReport()
	applyScanner(rep, "caches", 100, 200)
	applyScanner(rep, "logs", 50)
	applyScanner(rep, "trash") // zero findings, still finishes

	assert.Equal(t, int64(350), rep.TotalSize)
	assert.Equal(t, 3, rep.TotalItems)
	assertTotalsConsistent(t, rep)

	trash := rep.Category("trash")
	require.NotNil(t, trash)
	assert.False(t, trash.InProgress)
	assert.Zero(t, trash.ItemCount())
}

func TestReportScanningFlag(t *testing.T) {
	rep := NewReport()
	rep.Apply(ScannerStarted{ScannerID: "caches", Name: "Caches"})
	assert.True(t, rep.Scanning())

	rep.Apply(ScannerFinished{ScannerID: "caches", Name: "Caches"})
	assert.False(t, rep.Scanning())
}

func TestDropCategoriesSubtractsTotals(t *testing.T) {
	rep := NewReport()
	applyScanner(rep, "caches", 100, 200)
	applyScanner(rep, "logs", 50)

	rep.DropCategories([]string{"caches", "unknown"})

	assert.Nil(t, rep.Category("caches"))
	assert.Equal(t, int64(50), rep.TotalSize)
	assert.Equal(t, 1, rep.TotalItems)
	assertTotalsConsistent(t, rep)
}

func TestRescanLeavesUntouchedCategoriesIntact(t *testing.T) {
	rep := NewReport()
	applyScanner(rep, "caches", 100)
	applyScanner(rep, "logs", 50, 60)

	logsBefore := append([]scanner.Finding(nil), rep.Category("logs").Findings...)

	// Rescan only caches with different results.
	rep.DropCategories([]string{"caches"})
	applyScanner(rep, "caches", 999)

	assert.Equal(t, logsBefore, rep.Category("logs").Findings)
	assert.Equal(t, int64(999+110), rep.TotalSize)
	assertTotalsConsistent(t, rep)
}

func TestReportProgressCounters(t *testing.T) {
	rep := NewReport()
	rep.Apply(PathVisited{Path: "/a"})
	rep.Apply(PathVisited{Path: "/b"})

	assert.Equal(t, int64(2), rep.PathsVisited)
	assert.Equal(t, "/b", rep.LastPath)

	rep.ResetProgress()
	assert.Zero(t, rep.PathsVisited)
	assert.Empty(t, rep.LastPath)
}
