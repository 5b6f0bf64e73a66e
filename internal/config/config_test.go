package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	cfg := Default()
	cfg.Scan.MinSizeBytes = 42
	cfg.Scan.ExcludedPaths = []string{"/opt/keep"}
	cfg.UI.ThreadCount = 16
	cfg.Clean.DryRunByDefault = false
	require.NoError(t, Save(cfg, path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestLoadAppliesDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scan:\n  min_size_bytes: 123\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(123), cfg.Scan.MinSizeBytes)
	assert.Equal(t, Default().Scan.MaxDepth, cfg.Scan.MaxDepth)
	assert.Equal(t, Default().UI.ThreadCount, cfg.UI.ThreadCount)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scan: ["), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults ok", func(c *Config) {}, false},
		{"negative min size", func(c *Config) { c.Scan.MinSizeBytes = -1 }, true},
		{"zero max depth", func(c *Config) { c.Scan.MaxDepth = 0 }, true},
		{"relative excluded path", func(c *Config) { c.Scan.ExcludedPaths = []string{"rel/path"} }, true},
		{"thread count too low", func(c *Config) { c.UI.ThreadCount = 0 }, true},
		{"thread count too high", func(c *Config) { c.UI.ThreadCount = 128 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
