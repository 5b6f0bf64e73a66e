package models

import (
	"github.com/rs/zerolog"

	"github.com/macsweep/macsweep/internal/cleaner"
	"github.com/macsweep/macsweep/internal/config"
	"github.com/macsweep/macsweep/internal/engine"
	"github.com/macsweep/macsweep/internal/scanner"
)

// Context bundles the long-lived application state every view needs.
// All of it is owned by the bubbletea update loop; background workers
// communicate only through session channels drained on ticks.
type Context struct {
	Config   *config.Config
	Engine   *engine.Engine
	Registry *scanner.Registry
	Report   *engine.Report
	Explorer *engine.Explorer
	Cleaner  *cleaner.Cleaner
	Log      zerolog.Logger
}

// ScanConfig builds the scanner configuration from the loaded config.
func (c *Context) ScanConfig() *scanner.Config {
	return &scanner.Config{
		MinSize:       c.Config.Scan.MinSizeBytes,
		MaxDepth:      c.Config.Scan.MaxDepth,
		ExcludedPaths: c.Config.Scan.ExcludedPaths,
	}
}
