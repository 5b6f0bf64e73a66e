package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/macsweep/macsweep/internal/engine"
	"github.com/macsweep/macsweep/internal/scanner"
	"github.com/macsweep/macsweep/internal/ui/styles"
	"github.com/macsweep/macsweep/pkg/utils"
)

// ScanViewModel drives one orchestration run and renders live progress.
// Findings stream into the shared report as they arrive, so category
// sizes grow on screen while scanners are still running.
type ScanViewModel struct {
	ctx      *Context
	scanners []scanner.Scanner
	session  *engine.ScanSession
	spinner  spinner.Model

	startTime time.Time
	finished  int
	width     int
}

// NewScanViewModel prepares a scan of the given scanners; pass every
// registered scanner for a full scan, or a subset for a rescan.
func NewScanViewModel(ctx *Context, scanners []scanner.Scanner, width int) *ScanViewModel {
	return &ScanViewModel{
		ctx:       ctx,
		scanners:  scanners,
		spinner:   newSpinner(),
		startTime: time.Now(),
		width:     width,
	}
}

func (m *ScanViewModel) Init() tea.Cmd {
	m.session = m.ctx.Engine.StartScan(m.scanners, m.ctx.ScanConfig(), m.ctx.Report)
	return tea.Batch(m.spinner.Tick, tick())
}

func (m *ScanViewModel) Update(msg tea.Msg) (*ScanViewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tickMsg:
		for _, sm := range m.session.Poll() {
			if _, ok := sm.(engine.ScannerFinished); ok {
				m.finished++
			}
			m.ctx.Report.Apply(sm)
		}
		if m.session.Done() {
			return m, func() tea.Msg { return ScanCompleteMsg{} }
		}
		return m, tick()
	}

	return m, nil
}

func (m *ScanViewModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("Scanning"))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("%s %d/%d scanners finished, %s found\n",
		m.spinner.View(),
		m.finished, m.session.Total(),
		styles.FileSizeStyle.Render(utils.FormatBytes(m.ctx.Report.TotalSize)),
	))

	ratio := 0.0
	if m.session.Total() > 0 {
		ratio = float64(m.finished) / float64(m.session.Total())
	}
	b.WriteString(styles.ProgressBar(ratio, 40))
	b.WriteString("\n\n")

	for _, c := range m.ctx.Report.Categories() {
		status := styles.SuccessStyle.Render("done")
		if c.InProgress {
			status = styles.DimStyle.Render("scanning")
		}
		b.WriteString(fmt.Sprintf("  %-28s %10s  %4d items  %s\n",
			c.Name,
			utils.FormatBytes(c.SizeBytes),
			c.ItemCount(),
			status,
		))
	}

	if p := m.ctx.Report.LastPath; p != "" {
		b.WriteString("\n")
		b.WriteString(styles.DimStyle.Render(truncatePath(p, m.width-4)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render("q: quit"))
	return b.String()
}

func truncatePath(p string, max int) string {
	if max < 8 {
		max = 8
	}
	if len(p) <= max {
		return p
	}
	return "…" + p[len(p)-max+1:]
}
