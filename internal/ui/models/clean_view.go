package models

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/macsweep/macsweep/internal/cleaner"
	"github.com/macsweep/macsweep/internal/scanner"
	"github.com/macsweep/macsweep/internal/ui/styles"
	"github.com/macsweep/macsweep/pkg/utils"
)

// CleanViewModel runs the cleanup batch off the update loop and then
// shows the outcome.
type CleanViewModel struct {
	ctx     *Context
	items   []scanner.Finding
	dryRun  bool
	spinner spinner.Model
	outcome *cleaner.Outcome
}

func NewCleanViewModel(ctx *Context, items []scanner.Finding, dryRun bool) *CleanViewModel {
	return &CleanViewModel{
		ctx:     ctx,
		items:   items,
		dryRun:  dryRun,
		spinner: newSpinner(),
	}
}

func (m *CleanViewModel) Init() tea.Cmd {
	run := func() tea.Msg {
		out := m.ctx.Cleaner.Clean(m.items, cleaner.Options{
			DryRun:     m.dryRun,
			LogHistory: m.ctx.Config.Clean.LogHistory,
		})
		return CleanupCompleteMsg{Outcome: out}
	}
	return tea.Batch(m.spinner.Tick, run)
}

// Running reports whether the batch is still in flight.
func (m *CleanViewModel) Running() bool { return m.outcome == nil }

func (m *CleanViewModel) Update(msg tea.Msg) (*CleanViewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if m.outcome == nil {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	case CleanupCompleteMsg:
		m.outcome = msg.Outcome
	}
	return m, nil
}

func (m *CleanViewModel) View() string {
	var b strings.Builder

	if m.outcome == nil {
		b.WriteString(styles.TitleStyle.Render("Cleaning"))
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("%s processing %d items...\n", m.spinner.View(), len(m.items)))
		return b.String()
	}

	out := m.outcome
	b.WriteString(styles.TitleStyle.Render("Summary"))
	b.WriteString("\n\n")

	var status string
	switch out.Status() {
	case cleaner.StatusSuccess:
		status = styles.SuccessStyle.Render(out.Status().String())
	case cleaner.StatusPartial:
		status = styles.FileSizeStyle.Render(out.Status().String())
	default:
		status = styles.ErrorStyle.Render(out.Status().String())
	}

	panel := fmt.Sprintf("Status: %s\nCleaned: %d  Failed: %d\nFreed: %s in %s",
		status,
		out.SuccessCount, out.FailedCount,
		utils.FormatBytes(out.TotalFreed),
		utils.FormatDuration(out.Duration),
	)
	if out.DryRun {
		panel += "\n" + styles.BoldStyle.Render("dry run, nothing was deleted")
	}
	b.WriteString(styles.PanelStyle.Render(panel))
	b.WriteString("\n")

	if len(out.Failures) > 0 {
		b.WriteString("\n")
		max := len(out.Failures)
		if max > 8 {
			max = 8
		}
		for _, f := range out.Failures[:max] {
			b.WriteString(styles.ErrorStyle.Render("  ✗ ") + truncatePath(f.Path, 50) + styles.DimStyle.Render("  "+f.Reason) + "\n")
		}
		if len(out.Failures) > max {
			b.WriteString(styles.DimStyle.Render(fmt.Sprintf("  … and %d more\n", len(out.Failures)-max)))
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render("r: rescan  q: quit"))
	return b.String()
}
