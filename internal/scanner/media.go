package scanner

import (
	"fmt"
	"path/filepath"

	"github.com/macsweep/macsweep/internal/fsutil"
	"github.com/macsweep/macsweep/internal/safety"
)

// MusicJunkScanner sizes the caches left around by Music, Podcasts and
// the audio production apps. Some entries hold downloaded content the
// user may want, so safety varies per entry.
type MusicJunkScanner struct {
	searchPaths []mediaTarget
}

// PhotoJunkScanner sizes the regenerable caches inside the Photos
// library bundle. Everything here is rebuilt by photolibraryd, but a
// rebuild is slow, so it all rates Caution.
type PhotoJunkScanner struct {
	searchPaths []mediaTarget
}

type mediaTarget struct {
	label  string
	path   string
	safety safety.Level
}

func NewMusicJunkScanner() *MusicJunkScanner {
	home := homeDir()
	return &MusicJunkScanner{
		searchPaths: []mediaTarget{
			{"Music Cache", filepath.Join(home, "Library/Caches/com.apple.Music"), safety.Safe},
			{"Music Streaming Cache", filepath.Join(home, "Library/Caches/com.apple.MediaStreaming"), safety.Safe},
			{"Podcasts Cache", filepath.Join(home, "Library/Caches/com.apple.podcasts"), safety.Safe},
			{"iTunes Cache", filepath.Join(home, "Library/Caches/com.apple.iTunes"), safety.Safe},
			{"Podcasts Downloads", filepath.Join(home, "Library/Group Containers/243LU875E5.groups.com.apple.podcasts/Documents"), safety.Caution},
			{"Music Library Cache", filepath.Join(home, "Music/Music/Media.localized"), safety.Caution},
			{"iOS Device Backups Cache", filepath.Join(home, "Library/Apple/MobileDevice/AllBackupCache"), safety.Safe},
			{"GarageBand Cache", filepath.Join(home, "Library/Application Support/GarageBand"), safety.Safe},
			{"Logic Cache", filepath.Join(home, "Library/Application Support/Logic"), safety.Safe},
		},
	}
}

func (s *MusicJunkScanner) ID() string         { return "music_junk" }
func (s *MusicJunkScanner) Name() string       { return "Music & Podcasts" }
func (s *MusicJunkScanner) Category() Category { return CategorySystem }

func (s *MusicJunkScanner) IsAvailable() bool {
	return anyTargetExists(s.searchPaths)
}

func (s *MusicJunkScanner) Scan(cfg *Config) ([]Finding, error) {
	return scanMediaTargets(cfg, s.searchPaths, "music", "Music - %s", s.ID()), nil
}

func NewPhotoJunkScanner() *PhotoJunkScanner {
	photosLib := filepath.Join(homeDir(), "Pictures/Photos Library.photoslibrary")
	return &PhotoJunkScanner{
		searchPaths: []mediaTarget{
			{"Thumbnails", filepath.Join(photosLib, "resources/derivatives/thumbs"), safety.Caution},
			{"Caches", filepath.Join(photosLib, "resources/caches"), safety.Caution},
			{"Compute Cache", filepath.Join(photosLib, "private/com.apple.photolibraryd/caches/computecache"), safety.Caution},
			{"Analysis Cache", filepath.Join(photosLib, "private/com.apple.photoanalysisd/caches"), safety.Caution},
			{"iCloud Sync Cache", filepath.Join(photosLib, "resources/cpl/cloudsync.noindex"), safety.Caution},
			{"Spotlight Cache", filepath.Join(photosLib, "database/search"), safety.Caution},
		},
	}
}

func (s *PhotoJunkScanner) ID() string         { return "photo_junk" }
func (s *PhotoJunkScanner) Name() string       { return "Photo Junk" }
func (s *PhotoJunkScanner) Category() Category { return CategorySystem }

func (s *PhotoJunkScanner) IsAvailable() bool {
	return anyTargetExists(s.searchPaths)
}

func (s *PhotoJunkScanner) Scan(cfg *Config) ([]Finding, error) {
	return scanMediaTargets(cfg, s.searchPaths, "photo", "Photos - %s", s.ID()), nil
}

func anyTargetExists(targets []mediaTarget) bool {
	for _, t := range targets {
		if pathExists(t.path) {
			return true
		}
	}
	return false
}

func scanMediaTargets(cfg *Config, targets []mediaTarget, idPrefix, nameFormat, scannerID string) []Finding {
	var items []Finding

	for _, t := range targets {
		if !pathExists(t.path) {
			continue
		}

		cfg.reportProgress(t.path)

		if cfg.isExcluded(t.path) {
			continue
		}

		size := fsutil.DirSize(t.path)
		if size < cfg.MinSize {
			continue
		}

		item := probeFinding(
			fmt.Sprintf("%s_%d", idPrefix, len(items)),
			fmt.Sprintf(nameFormat, t.label),
			t.path,
			size,
			CategorySystem,
			t.safety,
		)
		item = withMeta(item, scannerID)

		cfg.reportItem(item)
		items = append(items, item)
	}

	return finalize(items, 100)
}
