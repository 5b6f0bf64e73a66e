package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the application configuration, persisted as YAML under
// ~/.config/macsweep/config.yaml.
type Config struct {
	Scan  ScanConfig  `yaml:"scan"`
	Clean CleanConfig `yaml:"clean"`
	UI    UIConfig    `yaml:"ui"`
}

// ScanConfig controls what the scanners consider a candidate.
type ScanConfig struct {
	MinSizeBytes  int64    `yaml:"min_size_bytes"`
	MaxDepth      int      `yaml:"max_depth"`
	ExcludedPaths []string `yaml:"excluded_paths"`
	ScanPaths     []string `yaml:"scan_paths"`
}

// CleanConfig controls deletion behavior.
type CleanConfig struct {
	DryRunByDefault    bool `yaml:"dry_run_by_default"`
	LogHistory         bool `yaml:"log_history"`
	ConfirmBeforeClean bool `yaml:"confirm_before_clean"`
}

// UIConfig controls the interactive views.
type UIConfig struct {
	ParallelScan bool `yaml:"parallel_scan"`
	ThreadCount  int  `yaml:"thread_count"`
	ColorOutput  bool `yaml:"color_output"`
}

// Load reads the configuration from path, returning defaults if the file
// does not exist.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to path, creating the directory as needed.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate rejects malformed thresholds before any scan worker is spawned.
func (c *Config) Validate() error {
	if c.Scan.MinSizeBytes < 0 {
		return fmt.Errorf("scan.min_size_bytes must be >= 0")
	}
	if c.Scan.MaxDepth < 1 {
		return fmt.Errorf("scan.max_depth must be >= 1")
	}
	for _, p := range c.Scan.ExcludedPaths {
		if !filepath.IsAbs(p) {
			return fmt.Errorf("excluded path must be absolute: %s", p)
		}
	}
	if c.UI.ThreadCount < 1 || c.UI.ThreadCount > 64 {
		return fmt.Errorf("ui.thread_count must be between 1 and 64")
	}
	return nil
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "macsweep", "config.yaml"), nil
}

// EnsureExists creates a default config file if none is present and
// returns its path.
func EnsureExists() (string, error) {
	path, err := DefaultPath()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := Save(Default(), path); err != nil {
			return "", err
		}
	}
	return path, nil
}
