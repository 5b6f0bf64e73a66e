package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/macsweep/macsweep/internal/cleaner"
	"github.com/macsweep/macsweep/internal/config"
	"github.com/macsweep/macsweep/internal/engine"
	"github.com/macsweep/macsweep/internal/history"
	"github.com/macsweep/macsweep/internal/safety"
	"github.com/macsweep/macsweep/internal/scanner"
	"github.com/macsweep/macsweep/internal/ui"
	"github.com/macsweep/macsweep/pkg/utils"
)

var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

var (
	configPath string
	verbose    bool
	dryRun     bool
	scannerIDs []string
	limit      int
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "macsweep",
	Short: "Interactive macOS disk cleaner",
	Long: `macsweep scans the usual macOS junk drawers (caches, logs, build
output, duplicates, mail attachments and more), lets you review what it
found, and reclaims the space you approve. Run without a subcommand for
the interactive TUI.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return ui.Run(cfg, newLogger())
	},
}

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan and print a report without the TUI",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		rep, err := runScan(cfg, newLogger())
		if err != nil {
			return err
		}

		cats := rep.Categories()
		sort.Slice(cats, func(i, j int) bool { return cats[i].SizeBytes > cats[j].SizeBytes })

		for _, c := range cats {
			fmt.Printf("%-28s %10s  %d items\n", c.Name, utils.FormatBytes(c.SizeBytes), c.ItemCount())
			if verbose {
				for _, f := range c.Findings {
					fmt.Printf("    %-10s %10s  %s\n", f.Safety, utils.FormatBytes(f.Size), f.Path)
				}
			}
		}
		fmt.Printf("\nTotal: %s in %d items\n", utils.FormatBytes(rep.TotalSize), rep.TotalItems)
		return nil
	},
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Scan and delete every Safe finding",
	Long: `Scans the selected categories and deletes findings classified Safe.
Caution and Protected findings are left alone; review those in the TUI.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := newLogger()

		rep, err := runScan(cfg, log)
		if err != nil {
			return err
		}

		var items []scanner.Finding
		for _, c := range rep.Categories() {
			for _, f := range c.Findings {
				if f.Safety == safety.Safe && f.Metadata["scanner_id"] != "maintenance" {
					items = append(items, f)
				}
			}
		}
		if len(items) == 0 {
			fmt.Println("Nothing safe to clean.")
			return nil
		}

		hist := history.NewLogger(history.DefaultPath())
		out := cleaner.New(log, hist).Clean(items, cleaner.Options{
			DryRun:     dryRun || cfg.Clean.DryRunByDefault,
			LogHistory: cfg.Clean.LogHistory,
		})

		fmt.Printf("%s: %d cleaned, %d failed, %s freed in %s\n",
			out.Status(), out.SuccessCount, out.FailedCount,
			utils.FormatBytes(out.TotalFreed), utils.FormatDuration(out.Duration))
		for _, f := range out.Failures {
			fmt.Printf("  failed: %s (%s)\n", f.Path, f.Reason)
		}
		return nil
	},
}

var lensCmd = &cobra.Command{
	Use:   "lens [path]",
	Short: "Explore disk usage directory by directory",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		path := ""
		if len(args) == 1 {
			path, err = filepath.Abs(args[0])
			if err != nil {
				return err
			}
		}
		return ui.RunLens(cfg, newLogger(), path)
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show what was deleted in past runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := history.NewLogger(history.DefaultPath()).Read(limit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("No history yet.")
			return nil
		}
		for _, e := range entries {
			size := "unknown size"
			if e.Size >= 0 {
				size = utils.FormatBytes(e.Size)
			}
			fmt.Printf("%s  %-8s %-10s %s\n", e.Timestamp.Format(time.RFC3339), e.Action, size, e.Path)
		}
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the active configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			var err error
			if path, err = config.EnsureExists(); err != nil {
				return err
			}
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		fmt.Printf("# %s\n%s", path, data)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	scanCmd.Flags().StringSliceVar(&scannerIDs, "only", nil, "scanner ids to run (default all)")
	cleanCmd.Flags().StringSliceVar(&scannerIDs, "only", nil, "scanner ids to run (default all)")
	cleanCmd.Flags().BoolVar(&dryRun, "dry-run", false, "report what would be deleted without deleting")
	historyCmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of entries to show")

	rootCmd.AddCommand(scanCmd, cleanCmd, lensCmd, historyCmd, configCmd)
}

func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		var err error
		if path, err = config.DefaultPath(); err != nil {
			return nil, err
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// newLogger writes structured logs to a file next to the history log,
// keeping the terminal free for the TUI.
func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	logPath := filepath.Join(filepath.Dir(history.DefaultPath()), "macsweep.log")
	_ = os.MkdirAll(filepath.Dir(logPath), 0o755)
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
	}
	return zerolog.New(f).Level(level).With().Timestamp().Logger()
}

// runScan runs a blocking scan outside the TUI, draining the session on
// a short poll interval the same way the render loop does.
func runScan(cfg *config.Config, log zerolog.Logger) (*engine.Report, error) {
	eng := engine.New(log)
	registry := scanner.NewRegistry()

	scanners := registry.Available()
	if len(scannerIDs) > 0 {
		scanners = registry.Enabled(scannerIDs)
		if len(scanners) == 0 {
			return nil, fmt.Errorf("no scanners match %s (known: %s)",
				strings.Join(scannerIDs, ","), strings.Join(registry.IDs(), ", "))
		}
	}

	rep := engine.NewReport()
	session := eng.StartScan(scanners, &scanner.Config{
		MinSize:       cfg.Scan.MinSizeBytes,
		MaxDepth:      cfg.Scan.MaxDepth,
		ExcludedPaths: cfg.Scan.ExcludedPaths,
	}, rep)

	for !session.Done() {
		for _, m := range session.Poll() {
			rep.Apply(m)
		}
		time.Sleep(16 * time.Millisecond)
	}
	return rep, nil
}
