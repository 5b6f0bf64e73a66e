package config

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Scan: ScanConfig{
			MinSizeBytes: 1024 * 1024, // 1 MB
			MaxDepth:     3,
		},
		Clean: CleanConfig{
			DryRunByDefault:    true,
			LogHistory:         true,
			ConfirmBeforeClean: true,
		},
		UI: UIConfig{
			ParallelScan: true,
			ThreadCount:  4,
			ColorOutput:  true,
		},
	}
}
