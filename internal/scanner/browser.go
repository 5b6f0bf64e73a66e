package scanner

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/macsweep/macsweep/internal/fsutil"
	"github.com/macsweep/macsweep/internal/safety"
)

// BrowserCacheScanner sizes the cache directory of every known browser.
type BrowserCacheScanner struct {
	cachePaths []browserCache
}

type browserCache struct {
	browser string
	path    string
}

func NewBrowserCacheScanner() *BrowserCacheScanner {
	home := homeDir()
	caches := filepath.Join(home, "Library/Caches")

	return &BrowserCacheScanner{
		cachePaths: []browserCache{
			{"Safari", filepath.Join(caches, "com.apple.Safari")},
			{"Chrome", filepath.Join(caches, "Google/Chrome")},
			{"Firefox", filepath.Join(caches, "Firefox")},
			{"Edge", filepath.Join(caches, "Microsoft Edge")},
			{"Arc", filepath.Join(caches, "Arc")},
			{"Brave", filepath.Join(caches, "BraveSoftware")},
			{"Vivaldi", filepath.Join(caches, "Vivaldi")},
			{"Opera", filepath.Join(caches, "com.operasoftware.Opera")},
			{"Opera GX", filepath.Join(caches, "com.operasoftware.OperaGX")},
			{"Whale", filepath.Join(caches, "Naver/Whale")},
			{"Chromium", filepath.Join(caches, "Chromium")},
			{"Orion", filepath.Join(caches, "com.kagi.kagimac")},
		},
	}
}

func (s *BrowserCacheScanner) ID() string         { return "browser_caches" }
func (s *BrowserCacheScanner) Name() string       { return "Browser Caches" }
func (s *BrowserCacheScanner) Category() Category { return CategoryBrowser }
func (s *BrowserCacheScanner) IsAvailable() bool  { return true }

func (s *BrowserCacheScanner) Scan(cfg *Config) ([]Finding, error) {
	var items []Finding

	for _, bc := range s.cachePaths {
		if !pathExists(bc.path) {
			continue
		}
		if cfg.isExcluded(bc.path) {
			continue
		}

		cfg.reportProgress(bc.path)

		size := fsutil.DirSize(bc.path)
		if size < cfg.MinSize {
			continue
		}

		item := probeFinding(
			fmt.Sprintf("browser_%s", strings.ToLower(strings.ReplaceAll(bc.browser, " ", "_"))),
			fmt.Sprintf("%s Cache", bc.browser),
			bc.path,
			size,
			CategoryBrowser,
			safety.Safe,
		)
		item = withMeta(item, s.ID())

		cfg.reportItem(item)
		items = append(items, item)
	}

	return finalize(items, 50), nil
}
