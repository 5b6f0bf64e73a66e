package scanner

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/macsweep/macsweep/internal/fsutil"
	"github.com/macsweep/macsweep/internal/safety"
)

// MailAttachmentsScanner finds Mail.app attachment directories, which
// accumulate copies of every attachment ever opened.
type MailAttachmentsScanner struct {
	searchPaths []mailSearchPath
}

type mailSearchPath struct {
	label string
	path  string
}

func NewMailAttachmentsScanner() *MailAttachmentsScanner {
	home := homeDir()
	return &MailAttachmentsScanner{
		searchPaths: []mailSearchPath{
			{"Mail Attachments", filepath.Join(home, "Library/Mail")},
			{"Mail Downloads", filepath.Join(home, "Library/Containers/com.apple.mail/Data/Library/Mail Downloads")},
		},
	}
}

func (s *MailAttachmentsScanner) ID() string         { return "mail_attachments" }
func (s *MailAttachmentsScanner) Name() string       { return "Mail Attachments" }
func (s *MailAttachmentsScanner) Category() Category { return CategorySystem }

func (s *MailAttachmentsScanner) IsAvailable() bool {
	for _, sp := range s.searchPaths {
		if pathExists(sp.path) {
			return true
		}
	}
	return false
}

// findAttachmentDirs looks a few levels deep for directories literally
// named "Attachments" or "Mail Downloads".
func findAttachmentDirs(base string) []string {
	var results []string

	_ = filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if walkDepth(base, path) > 4 {
			return fs.SkipDir
		}
		if d.Name() == "Attachments" || d.Name() == "Mail Downloads" {
			results = append(results, path)
		}
		return nil
	})

	return results
}

func (s *MailAttachmentsScanner) Scan(cfg *Config) ([]Finding, error) {
	var items []Finding

	for _, sp := range s.searchPaths {
		if !pathExists(sp.path) {
			continue
		}

		cfg.reportProgress(sp.path)

		for _, dir := range findAttachmentDirs(sp.path) {
			if cfg.isExcluded(dir) {
				continue
			}

			size := fsutil.DirSize(dir)
			if size < cfg.MinSize {
				continue
			}

			// Use the mailbox (account) name when the parent dir looks
			// like an email address; it reads better in the list.
			displayName := fmt.Sprintf("%s (%s)", filepath.Base(dir), sp.label)
			if parent := filepath.Base(filepath.Dir(dir)); strings.Contains(parent, "@") {
				displayName = fmt.Sprintf("%s (%s)", filepath.Base(dir), parent)
			}

			item := probeFinding(
				fmt.Sprintf("mail_%d", len(items)),
				displayName,
				dir,
				size,
				CategorySystem,
				safety.Caution,
			)
			item = withMeta(item, s.ID())

			cfg.reportItem(item)
			items = append(items, item)
		}
	}

	return finalize(items, 100), nil
}
