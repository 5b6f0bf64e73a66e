package models

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/macsweep/macsweep/internal/cleaner"
	"github.com/macsweep/macsweep/internal/scanner"
	"github.com/macsweep/macsweep/internal/ui/styles"
)

// pollInterval paces the non-blocking channel drains between redraws.
const pollInterval = 50 * time.Millisecond

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// ScanCompleteMsg fires when the orchestration's ScanComplete arrived.
type ScanCompleteMsg struct{}

// CategoriesSelectedMsg carries the scanner ids chosen for review.
type CategoriesSelectedMsg struct {
	ScannerIDs []string
}

// RescanMsg requests a rescan of only the named scanners.
type RescanMsg struct {
	ScannerIDs []string
}

// ItemsSelectedMsg carries the findings chosen for cleanup.
type ItemsSelectedMsg struct {
	Items []scanner.Finding
}

// ConfirmedMsg starts the cleanup.
type ConfirmedMsg struct {
	DryRun bool
}

// CleanupCompleteMsg carries the batch outcome.
type CleanupCompleteMsg struct {
	Outcome *cleaner.Outcome
}

// OpenLensMsg switches to the disk-usage explorer.
type OpenLensMsg struct{}

// BackMsg returns to the previous screen.
type BackMsg struct{}

func newSpinner() spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SelectedStyle
	return s
}
