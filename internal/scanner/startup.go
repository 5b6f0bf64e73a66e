package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"howett.net/plist"

	"github.com/macsweep/macsweep/internal/safety"
)

// StartupItemsScanner enumerates launchd plists and login items. These
// are reported for review rather than bulk deletion; the finding size is
// zero because the plists themselves are tiny.
type StartupItemsScanner struct {
	searchPaths []startupLocation
}

type startupLocation struct {
	path     string
	category string
}

type startupItem struct {
	label     string
	program   string
	path      string
	runAtLoad bool
	disabled  bool
}

func NewStartupItemsScanner() *StartupItemsScanner {
	home := homeDir()
	return &StartupItemsScanner{
		searchPaths: []startupLocation{
			{filepath.Join(home, "Library/LaunchAgents"), "User LaunchAgent"},
			{"/Library/LaunchAgents", "System LaunchAgent"},
			{"/Library/LaunchDaemons", "System LaunchDaemon"},
			{filepath.Join(home, "Library/LoginItems"), "Login Item"},
		},
	}
}

func (s *StartupItemsScanner) ID() string         { return "startup_items" }
func (s *StartupItemsScanner) Name() string       { return "Startup Items" }
func (s *StartupItemsScanner) Category() Category { return CategorySystem }
func (s *StartupItemsScanner) IsAvailable() bool  { return true }

// parseLaunchdPlist reads the fields the review screen shows. Both XML
// and binary plists occur in the wild.
func parseLaunchdPlist(path string) (startupItem, bool) {
	content, err := os.ReadFile(path)
	if err != nil {
		return startupItem{}, false
	}

	var dict map[string]interface{}
	if _, err := plist.Unmarshal(content, &dict); err != nil {
		return startupItem{}, false
	}

	item := startupItem{path: path}

	if label, ok := dict["Label"].(string); ok {
		item.label = label
	} else {
		item.label = strings.TrimSuffix(filepath.Base(path), ".plist")
	}

	if program, ok := dict["Program"].(string); ok {
		item.program = program
	} else if args, ok := dict["ProgramArguments"].([]interface{}); ok && len(args) > 0 {
		if first, ok := args[0].(string); ok {
			item.program = first
		}
	}
	if item.program == "" {
		item.program = path
	}

	if v, ok := dict["RunAtLoad"].(bool); ok {
		item.runAtLoad = v
	}
	if v, ok := dict["Disabled"].(bool); ok {
		item.disabled = v
	}

	return item, true
}

func scanStartupDir(dir string) []startupItem {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var items []startupItem
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".plist") {
			continue
		}
		if item, ok := parseLaunchdPlist(filepath.Join(dir, entry.Name())); ok {
			items = append(items, item)
		}
	}
	return items
}

func (s *StartupItemsScanner) Scan(cfg *Config) ([]Finding, error) {
	var items []Finding

	for _, loc := range s.searchPaths {
		cfg.reportProgress(loc.path)

		for _, si := range scanStartupDir(loc.path) {
			if cfg.isExcluded(si.path) {
				continue
			}

			item := Finding{
				ID:        fmt.Sprintf("startup_%s", strings.ReplaceAll(si.label, ".", "_")),
				Name:      si.label,
				Path:      si.path,
				Size:      0,
				FileCount: 1,
				Safety:    safety.Caution,
				Category:  CategorySystem,
				Metadata: map[string]string{
					"scanner_id":  s.ID(),
					"category":    loc.category,
					"program":     si.program,
					"run_at_load": fmt.Sprintf("%t", si.runAtLoad),
					"disabled":    fmt.Sprintf("%t", si.disabled),
				},
			}

			cfg.reportItem(item)
			items = append(items, item)
		}
	}

	return items, nil
}
