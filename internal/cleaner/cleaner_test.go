package cleaner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macsweep/macsweep/internal/history"
	"github.com/macsweep/macsweep/internal/safety"
	"github.com/macsweep/macsweep/internal/scanner"
	"github.com/macsweep/macsweep/internal/testutil"
)

func newTestCleaner(t *testing.T) (*Cleaner, *history.Logger) {
	hist := history.NewLogger(filepath.Join(t.TempDir(), "history.log"))
	return New(zerolog.Nop(), hist), hist
}

func safeFinding(path string, size int64) scanner.Finding {
	return scanner.Finding{ID: filepath.Base(path), Name: filepath.Base(path), Path: path, Size: size, Safety: safety.Safe}
}

func TestCleanDeletesFilesAndDirectories(t *testing.T) {
	f := testutil.NewFixture(t)
	file := f.File("junk.bin", 100, 'x')
	dir := f.Dir("cache")
	f.File("cache/a.bin", 200, 'y')
	f.File("cache/b/c.bin", 300, 'z')

	c, _ := newTestCleaner(t)
	out := c.Clean([]scanner.Finding{
		safeFinding(file, 100),
		safeFinding(dir, 500),
	}, Options{})

	assert.Equal(t, StatusSuccess, out.Status())
	assert.Equal(t, 2, out.SuccessCount)
	assert.Equal(t, int64(600), out.TotalFreed)
	assert.NoFileExists(t, file)
	assert.NoDirExists(t, dir)
}

func TestCleanDryRunTouchesNothing(t *testing.T) {
	f := testutil.NewFixture(t)
	file := f.File("junk.bin", 100, 'x')

	c, hist := newTestCleaner(t)
	out := c.Clean([]scanner.Finding{safeFinding(file, 100)}, Options{DryRun: true, LogHistory: true})

	assert.Equal(t, 1, out.SuccessCount)
	assert.Zero(t, out.TotalFreed, "dry run reclaims nothing")
	assert.FileExists(t, file)

	entries, err := hist.Read(0)
	require.NoError(t, err)
	assert.Empty(t, entries, "dry run writes no history")
}

func TestCleanProtectedIsNeverDeleted(t *testing.T) {
	f := testutil.NewFixture(t)
	file := f.File("keychain.db", 100, 'x')

	item := safeFinding(file, 100)
	item.Safety = safety.Protected

	c, _ := newTestCleaner(t)
	out := c.Clean([]scanner.Finding{item}, Options{})

	assert.Equal(t, StatusFailed, out.Status())
	assert.Equal(t, 1, out.FailedCount)
	require.Len(t, out.Failures, 1)
	assert.Equal(t, file, out.Failures[0].Path)
	assert.FileExists(t, file)
}

func TestCleanLiveRecheckOverridesStaleLevel(t *testing.T) {
	// Classified Safe at scan time, but the live path is protected.
	item := scanner.Finding{ID: "x", Path: "/System/Library/Caches/thing", Size: 10, Safety: safety.Safe}

	c, _ := newTestCleaner(t)
	out := c.Clean([]scanner.Finding{item}, Options{})

	assert.Equal(t, StatusFailed, out.Status())
}

func TestCleanMissingPathIsSuccess(t *testing.T) {
	c, _ := newTestCleaner(t)
	missing := filepath.Join(t.TempDir(), "already-gone")

	out := c.Clean([]scanner.Finding{safeFinding(missing, 42)}, Options{})

	assert.Equal(t, StatusSuccess, out.Status())
	assert.Equal(t, 1, out.SuccessCount)
}

func TestCleanOneFailureYieldsPartial(t *testing.T) {
	f := testutil.NewFixture(t)
	file := f.File("ok.bin", 100, 'x')

	bad := safeFinding("/System/Library/thing", 10)

	c, _ := newTestCleaner(t)
	out := c.Clean([]scanner.Finding{safeFinding(file, 100), bad}, Options{})

	assert.Equal(t, StatusPartial, out.Status())
	assert.Equal(t, 1, out.SuccessCount)
	assert.Equal(t, 1, out.FailedCount)
	assert.NoFileExists(t, file)
}

func TestCleanRunsMaintenanceCommand(t *testing.T) {
	f := testutil.NewFixture(t)
	marker := f.Path("marker")

	item := scanner.Finding{
		ID:     "maint_touch",
		Path:   "touch " + marker,
		Safety: safety.Safe,
		Metadata: map[string]string{
			"scanner_id": "maintenance",
			"command":    "touch " + marker,
		},
	}

	c, _ := newTestCleaner(t)
	out := c.Clean([]scanner.Finding{item}, Options{})

	assert.Equal(t, StatusSuccess, out.Status())
	assert.FileExists(t, marker)
}

func TestCleanMaintenanceCommandFailure(t *testing.T) {
	item := scanner.Finding{
		ID:     "maint_bad",
		Path:   "false",
		Safety: safety.Safe,
		Metadata: map[string]string{
			"scanner_id": "maintenance",
			"command":    "false",
		},
	}

	c, _ := newTestCleaner(t)
	out := c.Clean([]scanner.Finding{item}, Options{})

	assert.Equal(t, StatusFailed, out.Status())
	require.Len(t, out.Failures, 1)
}

func TestCleanMaintenanceDryRunSkipsExecution(t *testing.T) {
	f := testutil.NewFixture(t)
	marker := f.Path("marker")

	item := scanner.Finding{
		ID:     "maint_touch",
		Path:   "touch " + marker,
		Safety: safety.Safe,
		Metadata: map[string]string{
			"scanner_id": "maintenance",
			"command":    "touch " + marker,
		},
	}

	c, _ := newTestCleaner(t)
	out := c.Clean([]scanner.Finding{item}, Options{DryRun: true})

	assert.Equal(t, StatusSuccess, out.Status())
	assert.NoFileExists(t, marker)
}

func TestCleanLogsHistory(t *testing.T) {
	f := testutil.NewFixture(t)
	file := f.File("junk.bin", 100, 'x')

	c, hist := newTestCleaner(t)
	out := c.Clean([]scanner.Finding{safeFinding(file, 100)}, Options{LogHistory: true})
	require.Equal(t, StatusSuccess, out.Status())

	entries, err := hist.Read(0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "DELETE", entries[0].Action)
	assert.Equal(t, file, entries[0].Path)
	assert.Equal(t, int64(100), entries[0].Size)
}

func TestCleanEmptyBatchIsSuccess(t *testing.T) {
	c, _ := newTestCleaner(t)
	out := c.Clean(nil, Options{})

	assert.Equal(t, StatusSuccess, out.Status())
	assert.Zero(t, out.SuccessCount)
}

func TestOutcomeStatusTable(t *testing.T) {
	tests := []struct {
		success, failed int
		want            Status
	}{
		{2, 0, StatusSuccess},
		{1, 1, StatusPartial},
		{0, 3, StatusFailed},
		{0, 0, StatusSuccess},
	}
	for _, tt := range tests {
		out := &Outcome{SuccessCount: tt.success, FailedCount: tt.failed}
		assert.Equal(t, tt.want, out.Status())
	}
}

func TestIsPermissionErr(t *testing.T) {
	assert.True(t, isPermissionErr(os.ErrPermission))
	assert.False(t, isPermissionErr(os.ErrNotExist))
	assert.False(t, isPermissionErr(nil))
}
