package models

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/macsweep/macsweep/internal/cleaner"
	"github.com/macsweep/macsweep/internal/diskinfo"
	"github.com/macsweep/macsweep/internal/engine"
	"github.com/macsweep/macsweep/internal/safety"
	"github.com/macsweep/macsweep/internal/scanner"
	"github.com/macsweep/macsweep/internal/ui/styles"
	"github.com/macsweep/macsweep/pkg/utils"
)

const lensPageSize = 18

// LensViewModel is the disk-usage explorer: it descends directories,
// streams child sizes as background walks progress, and can delete an
// entry in place.
type LensViewModel struct {
	ctx     *Context
	spinner spinner.Model

	cursor  int
	offset  int
	pending string // path awaiting delete confirmation, "" if none
	errMsg  string
	usage   diskinfo.Info
	hasInfo bool
}

func NewLensViewModel(ctx *Context, startPath string) *LensViewModel {
	m := &LensViewModel{ctx: ctx, spinner: newSpinner()}

	if ctx.Explorer.Current() == "" {
		if err := ctx.Explorer.Enter(startPath); err != nil {
			m.errMsg = err.Error()
		}
	}
	if u, err := diskinfo.Usage(ctx.Explorer.Current()); err == nil {
		m.usage = u
		m.hasInfo = true
	}
	return m
}

func (m *LensViewModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, tick())
}

func (m *LensViewModel) clampCursor() {
	n := len(m.ctx.Explorer.Entries())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+lensPageSize {
		m.offset = m.cursor - lensPageSize + 1
	}
}

func (m *LensViewModel) Update(msg tea.Msg) (*LensViewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tickMsg:
		m.ctx.Explorer.Poll()
		return m, tick()

	case tea.KeyMsg:
		entries := m.ctx.Explorer.Entries()

		if m.pending != "" {
			switch msg.String() {
			case "y":
				m.deletePending()
			default:
				m.pending = ""
			}
			m.clampCursor()
			return m, nil
		}

		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(entries)-1 {
				m.cursor++
			}
		case "enter", "right":
			if m.cursor < len(entries) && entries[m.cursor].IsDir {
				if err := m.ctx.Explorer.Enter(entries[m.cursor].Path); err != nil {
					m.errMsg = err.Error()
				} else {
					m.errMsg = ""
					m.cursor, m.offset = 0, 0
				}
			}
		case "left", "backspace":
			if err := m.ctx.Explorer.Ascend(); err != nil {
				m.errMsg = err.Error()
			} else {
				m.errMsg = ""
				m.cursor, m.offset = 0, 0
			}
		case "x", "delete":
			if m.cursor < len(entries) {
				m.pending = entries[m.cursor].Path
			}
		case "p":
			m.ctx.Explorer.SetParallel(!m.ctx.Explorer.Parallel())
		case "+", "=":
			m.ctx.Explorer.SetThreads(m.ctx.Explorer.Threads() * 2)
		case "-":
			m.ctx.Explorer.SetThreads(m.ctx.Explorer.Threads() / 2)
		}
		m.clampCursor()
	}

	return m, nil
}

// deletePending routes the deletion through the cleaner so the safety
// re-check, sudo retry and history logging all apply, then drops the
// entry from the listing.
func (m *LensViewModel) deletePending() {
	path := m.pending
	m.pending = ""

	var entry engine.FolderEntry
	for _, e := range m.ctx.Explorer.Entries() {
		if e.Path == path {
			entry = e
			break
		}
	}

	item := scanner.Finding{
		ID:     "lens_delete",
		Name:   entry.Name,
		Path:   path,
		Size:   entry.Size,
		Safety: safety.NewChecker().Check(path),
	}
	out := m.ctx.Cleaner.Clean([]scanner.Finding{item}, cleaner.Options{
		DryRun:     false,
		LogHistory: m.ctx.Config.Clean.LogHistory,
	})
	if out.Status() != cleaner.StatusSuccess {
		if len(out.Failures) > 0 {
			m.errMsg = out.Failures[0].Reason
		}
		return
	}

	m.errMsg = ""
	m.ctx.Explorer.Remove(path)
}

func (m *LensViewModel) View() string {
	x := m.ctx.Explorer
	entries := x.Entries()

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Disk Lens"))
	b.WriteString("\n")

	if m.hasInfo {
		b.WriteString(styles.SubtitleStyle.Render(fmt.Sprintf("%s  %s free of %s (%.0f%% used)",
			x.Current(),
			utils.FormatBytes(int64(m.usage.FreeBytes)),
			utils.FormatBytes(int64(m.usage.TotalBytes)),
			m.usage.UsedPercent)))
	} else {
		b.WriteString(styles.SubtitleStyle.Render(x.Current()))
	}
	b.WriteString("\n")

	status := fmt.Sprintf("total %s", utils.FormatBytes(x.TotalSize()))
	if x.Scanning() {
		status = fmt.Sprintf("%s %s, scanning (%d workers active)",
			m.spinner.View(), status, m.ctx.Engine.ActiveWorkers(x.Threads()))
	}
	b.WriteString(status + "\n\n")

	end := m.offset + lensPageSize
	if end > len(entries) {
		end = len(entries)
	}
	for i := m.offset; i < end; i++ {
		e := entries[i]

		marker := " "
		if e.IsDir {
			marker = "/"
		}
		size := utils.FormatBytes(e.Size)
		if e.Scanning {
			size += " …"
		}

		line := fmt.Sprintf("%-40s %12s", truncatePath(e.Name+marker, 40), size)
		if i == m.cursor {
			line = styles.HighlightStyle.Render(line)
		}
		b.WriteString("  " + line + "\n")
	}
	if len(entries) == 0 {
		b.WriteString(styles.DimStyle.Render("  (empty)\n"))
	}

	if m.pending != "" {
		b.WriteString("\n")
		b.WriteString(styles.ErrorStyle.Render(fmt.Sprintf("Delete %s? y/n", m.pending)))
	}
	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(styles.ErrorStyle.Render(m.errMsg))
	}

	mode := "parallel"
	if !x.Parallel() {
		mode = "serial"
	}
	b.WriteString("\n\n")
	b.WriteString(styles.HelpStyle.Render(fmt.Sprintf(
		"enter: open  backspace: up  x: delete  p: mode (%s)  +/-: threads (%d)  esc: back  q: quit",
		mode, x.Threads())))
	return b.String()
}
