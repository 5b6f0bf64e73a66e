package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/macsweep/macsweep/internal/fsutil"
	"github.com/macsweep/macsweep/internal/safety"
)

// PrivacyScanner reports the browsing trails scattered across browser
// profiles and macOS recent-item lists. These are small but sensitive;
// credential stores rate Protected and are never deleted.
type PrivacyScanner struct {
	targets []privacyTarget
}

type privacyTarget struct {
	label  string
	path   string
	safety safety.Level
}

func NewPrivacyScanner() *PrivacyScanner {
	home := homeDir()
	support := filepath.Join(home, "Library/Application Support")

	return &PrivacyScanner{
		targets: []privacyTarget{
			{"Safari Cookies", filepath.Join(home, "Library/Cookies/com.apple.Safari/Cookies.binarycookies"), safety.Caution},
			{"Safari History", filepath.Join(home, "Library/Safari/History.db"), safety.Caution},
			{"Safari Downloads", filepath.Join(home, "Library/Safari/Downloads.plist"), safety.Caution},

			{"Chrome Cookies", filepath.Join(support, "Google/Chrome/Default/Cookies"), safety.Caution},
			{"Chrome History", filepath.Join(support, "Google/Chrome/Default/History"), safety.Caution},
			{"Chrome Login Data", filepath.Join(support, "Google/Chrome/Default/Login Data"), safety.Protected},

			{"Firefox Cookies", filepath.Join(support, "Firefox/Profiles/cookies.sqlite"), safety.Caution},
			{"Firefox History", filepath.Join(support, "Firefox/Profiles/places.sqlite"), safety.Caution},

			{"Edge Cookies", filepath.Join(support, "Microsoft Edge/Default/Cookies"), safety.Caution},
			{"Edge History", filepath.Join(support, "Microsoft Edge/Default/History"), safety.Caution},

			{"Brave Cookies", filepath.Join(support, "BraveSoftware/Brave-Browser/Default/Cookies"), safety.Caution},
			{"Brave History", filepath.Join(support, "BraveSoftware/Brave-Browser/Default/History"), safety.Caution},

			{"Arc Cookies", filepath.Join(support, "Arc/User Data/Default/Cookies"), safety.Caution},
			{"Arc History", filepath.Join(support, "Arc/User Data/Default/History"), safety.Caution},

			{"Vivaldi Cookies", filepath.Join(support, "Vivaldi/Default/Cookies"), safety.Caution},
			{"Vivaldi History", filepath.Join(support, "Vivaldi/Default/History"), safety.Caution},

			{"Opera Cookies", filepath.Join(support, "com.operasoftware.Opera/Cookies"), safety.Caution},
			{"Opera History", filepath.Join(support, "com.operasoftware.Opera/History"), safety.Caution},

			{"Recent Items", filepath.Join(support, "com.apple.sharedfilelist/com.apple.LSSharedFileList.ApplicationRecentDocuments/com.apple.LSSharedFileList.ApplicationRecentDocuments.sfl"), safety.Caution},
			{"Recent Servers", filepath.Join(support, "com.apple.sharedfilelist/com.apple.LSSharedFileList.RecentServers.sfl"), safety.Caution},

			{"Download History", filepath.Join(home, "Library/Preferences/com.apple.LaunchServices/com.apple.launchservices.secure.plist"), safety.Caution},

			{"Quick Look Cache", filepath.Join(home, "Library/Caches/com.apple.QuickLookDaemon/Cache.db"), safety.Safe},
			{"Finder Recent", filepath.Join(home, "Library/Preferences/com.apple.finder.plist"), safety.Caution},
		},
	}
}

func (s *PrivacyScanner) ID() string         { return "privacy" }
func (s *PrivacyScanner) Name() string       { return "Privacy" }
func (s *PrivacyScanner) Category() Category { return CategoryBrowser }

func (s *PrivacyScanner) IsAvailable() bool {
	for _, t := range s.targets {
		if pathExists(t.path) {
			return true
		}
	}
	return false
}

// resolveTarget expands the Firefox placeholder path, which cannot name
// the profile directory statically: Firefox generates a random profile
// name per install, so the first profile found is used.
func resolveTarget(path string) (string, bool) {
	if !strings.Contains(path, "Firefox/Profiles/") {
		return path, true
	}

	profilesDir := filepath.Dir(path)
	entries, err := os.ReadDir(profilesDir)
	if err != nil || len(entries) == 0 {
		return "", false
	}
	return filepath.Join(profilesDir, entries[0].Name(), filepath.Base(path)), true
}

func (s *PrivacyScanner) Scan(cfg *Config) ([]Finding, error) {
	var items []Finding

	for _, t := range s.targets {
		path, ok := resolveTarget(t.path)
		if !ok || !pathExists(path) {
			continue
		}

		cfg.reportProgress(path)

		if cfg.isExcluded(path) {
			continue
		}

		var size int64
		if info, err := os.Stat(path); err != nil {
			continue
		} else if info.IsDir() {
			size = fsutil.DirSize(path)
		} else {
			size = info.Size()
		}
		if size < cfg.MinSize {
			continue
		}

		item := Finding{
			ID:           fmt.Sprintf("privacy_%d", len(items)),
			Name:         t.label,
			Path:         path,
			Size:         size,
			FileCount:    1,
			LastAccessed: fsutil.AccessTime(path),
			LastModified: fsutil.ModTime(path),
			Safety:       t.safety,
			Category:     CategoryBrowser,
		}
		item = withMeta(item, s.ID())

		cfg.reportItem(item)
		items = append(items, item)
	}

	return finalize(items, 100), nil
}
