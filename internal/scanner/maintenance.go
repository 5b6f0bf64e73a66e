package scanner

import (
	"fmt"

	"github.com/macsweep/macsweep/internal/safety"
)

// MaintenanceScanner does not walk the filesystem at all: it reports a
// fixed catalogue of maintenance commands as zero-size findings. The
// cleaner recognizes these by metadata and runs the command instead of
// deleting a path.
type MaintenanceScanner struct {
	tasks []maintenanceTask
}

type maintenanceTask struct {
	id           string
	name         string
	description  string
	command      string
	requiresSudo bool
	safety       safety.Level
}

func NewMaintenanceScanner() *MaintenanceScanner {
	home := homeDir()

	return &MaintenanceScanner{
		tasks: []maintenanceTask{
			{
				id:           "flush_dns",
				name:         "Flush DNS Cache",
				description:  "Clear DNS cache to resolve network issues",
				command:      "dscacheutil -flushcache && sudo killall -HUP mDNSResponder",
				requiresSudo: true,
				safety:       safety.Safe,
			},
			{
				id:          "rebuild_launchservices",
				name:        "Rebuild Launch Services",
				description: "Rebuild Launch Services database to fix app associations",
				command:     "/System/Library/Frameworks/CoreServices.framework/Frameworks/LaunchServices.framework/Support/lsregister -kill -r -domain local -domain system -domain user",
				safety:      safety.Safe,
			},
			{
				id:          "clear_font_cache",
				name:        "Clear Font Cache",
				description: "Clear font cache to fix font rendering issues",
				command:     "atsutil databases -remove",
				safety:      safety.Safe,
			},
			{
				id:           "reset_spotlight",
				name:         "Reset Spotlight Index",
				description:  "Reset Spotlight search index (may take time)",
				command:      "sudo mdutil -E /",
				requiresSudo: true,
				safety:       safety.Caution,
			},
			{
				id:          "purge_memory",
				name:        "Purge Memory",
				description: "Free up inactive memory",
				command:     "purge",
				safety:      safety.Safe,
			},
			{
				id:          "clean_tmp",
				name:        "Clean TMP Files",
				description: "Remove temporary system files",
				command:     fmt.Sprintf("rm -rf /tmp/* 2>/dev/null; rm -rf %s/.tmp/* 2>/dev/null", home),
				safety:      safety.Safe,
			},
			{
				id:          "verify_disk",
				name:        "Verify Disk",
				description: "Verify startup disk for errors",
				command:     "diskutil verifyVolume /",
				safety:      safety.Safe,
			},
			{
				id:          "clear_quicklook",
				name:        "Clear Quick Look Cache",
				description: "Clear Quick Look thumbnail cache",
				command:     "qlmanage -r cache",
				safety:      safety.Safe,
			},
			{
				id:          "reset_dock",
				name:        "Reset Dock",
				description: "Reset Dock to default settings",
				command:     "defaults delete com.apple.dock; killall Dock",
				safety:      safety.Caution,
			},
			{
				id:          "reset_finder",
				name:        "Reset Finder",
				description: "Restart Finder to apply changes",
				command:     "killall Finder",
				safety:      safety.Safe,
			},
		},
	}
}

func (s *MaintenanceScanner) ID() string         { return "maintenance" }
func (s *MaintenanceScanner) Name() string       { return "Maintenance" }
func (s *MaintenanceScanner) Category() Category { return CategorySystem }
func (s *MaintenanceScanner) IsAvailable() bool  { return true }

func (s *MaintenanceScanner) Scan(cfg *Config) ([]Finding, error) {
	items := make([]Finding, 0, len(s.tasks))

	for _, task := range s.tasks {
		item := Finding{
			ID:        fmt.Sprintf("maint_%s", task.id),
			Name:      task.name,
			Path:      task.command,
			Size:      0,
			FileCount: 1,
			Safety:    task.safety,
			Category:  CategorySystem,
			Metadata: map[string]string{
				"scanner_id":    s.ID(),
				"task_id":       task.id,
				"command":       task.command,
				"description":   task.description,
				"requires_sudo": fmt.Sprintf("%t", task.requiresSudo),
			},
		}

		cfg.reportItem(item)
		items = append(items, item)
	}

	return items, nil
}
