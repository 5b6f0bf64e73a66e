// Package ui wires the engine into the interactive bubbletea frontend.
package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/macsweep/macsweep/internal/cleaner"
	"github.com/macsweep/macsweep/internal/config"
	"github.com/macsweep/macsweep/internal/engine"
	"github.com/macsweep/macsweep/internal/history"
	"github.com/macsweep/macsweep/internal/scanner"
	"github.com/macsweep/macsweep/internal/ui/models"
)

func newContext(cfg *config.Config, log zerolog.Logger) *models.Context {
	eng := engine.New(log)
	hist := history.NewLogger(history.DefaultPath())

	explorer := engine.NewExplorer(eng, log, cfg.Scan.ExcludedPaths)
	explorer.SetParallel(cfg.UI.ParallelScan)
	explorer.SetThreads(cfg.UI.ThreadCount)

	return &models.Context{
		Config:   cfg,
		Engine:   eng,
		Registry: scanner.NewRegistry(),
		Report:   engine.NewReport(),
		Explorer: explorer,
		Cleaner:  cleaner.New(log, hist),
		Log:      log,
	}
}

// Run starts the full interactive flow: scan, review, clean.
func Run(cfg *config.Config, log zerolog.Logger) error {
	ctx := newContext(cfg, log)
	app := models.NewAppModel(ctx, startPath(cfg))

	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("ui: %w", err)
	}
	return nil
}

// RunLens starts directly in the disk-usage explorer rooted at path.
func RunLens(cfg *config.Config, log zerolog.Logger, path string) error {
	ctx := newContext(cfg, log)
	if path == "" {
		path = startPath(cfg)
	}
	app := models.NewLensApp(ctx, path)

	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("ui: %w", err)
	}
	return nil
}

func startPath(cfg *config.Config) string {
	if len(cfg.Scan.ScanPaths) > 0 && cfg.Scan.ScanPaths[0] != "" {
		return cfg.Scan.ScanPaths[0]
	}
	return "/"
}
