package models

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/macsweep/macsweep/internal/safety"
	"github.com/macsweep/macsweep/internal/scanner"
	"github.com/macsweep/macsweep/internal/ui/styles"
	"github.com/macsweep/macsweep/pkg/utils"
)

const reviewPageSize = 15

// ReviewViewModel lists the findings of the selected categories for
// item-level selection. Protected findings are shown but cannot be
// selected; the cleaner would refuse them anyway.
type ReviewViewModel struct {
	ctx      *Context
	items    []scanner.Finding
	selected []bool
	cursor   int
	offset   int
}

func NewReviewViewModel(ctx *Context, scannerIDs []string) *ReviewViewModel {
	var items []scanner.Finding
	for _, id := range scannerIDs {
		if c := ctx.Report.Category(id); c != nil {
			items = append(items, c.Findings...)
		}
	}

	selected := make([]bool, len(items))
	for i, it := range items {
		selected[i] = it.Safety == safety.Safe
	}

	return &ReviewViewModel{ctx: ctx, items: items, selected: selected}
}

func (m *ReviewViewModel) selectedItems() []scanner.Finding {
	var out []scanner.Finding
	for i, it := range m.items {
		if m.selected[i] {
			out = append(out, it)
		}
	}
	return out
}

func (m *ReviewViewModel) Update(msg tea.Msg) (*ReviewViewModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
		case " ":
			if m.cursor < len(m.items) && m.items[m.cursor].Safety != safety.Protected {
				m.selected[m.cursor] = !m.selected[m.cursor]
			}
		case "a":
			any := false
			for i := range m.selected {
				if !m.selected[i] && m.items[i].Safety != safety.Protected {
					any = true
				}
			}
			for i := range m.selected {
				m.selected[i] = any && m.items[i].Safety != safety.Protected
			}
		case "enter", "c":
			if items := m.selectedItems(); len(items) > 0 {
				return m, func() tea.Msg { return ItemsSelectedMsg{Items: items} }
			}
		}

		if m.cursor < m.offset {
			m.offset = m.cursor
		}
		if m.cursor >= m.offset+reviewPageSize {
			m.offset = m.cursor - reviewPageSize + 1
		}
	}
	return m, nil
}

func (m *ReviewViewModel) View() string {
	var b strings.Builder

	var selSize int64
	var selCount int
	for i, it := range m.items {
		if m.selected[i] {
			selSize += it.Size
			selCount++
		}
	}

	b.WriteString(styles.TitleStyle.Render("Review"))
	b.WriteString("\n")
	b.WriteString(styles.SubtitleStyle.Render(fmt.Sprintf("%d of %d items selected, %s",
		selCount, len(m.items), utils.FormatBytes(selSize))))
	b.WriteString("\n\n")

	end := m.offset + reviewPageSize
	if end > len(m.items) {
		end = len(m.items)
	}

	for i := m.offset; i < end; i++ {
		it := m.items[i]

		box := styles.UncheckedBox()
		if m.selected[i] {
			box = styles.CheckedBox()
		}

		line := fmt.Sprintf("%s %-36s %10s  %s",
			box,
			truncatePath(it.Name, 36),
			utils.FormatBytes(it.Size),
			styles.SafetyStyle(it.Safety).Render(it.Safety.String()),
		)
		if i == m.cursor {
			line = styles.HighlightStyle.Render(line)
		}
		b.WriteString("  " + line + "\n")
	}

	if len(m.items) > reviewPageSize {
		b.WriteString(styles.DimStyle.Render(fmt.Sprintf("\n  %d-%d of %d", m.offset+1, end, len(m.items))))
	}

	if m.cursor < len(m.items) {
		b.WriteString("\n")
		b.WriteString(styles.DimStyle.Render("  " + truncatePath(m.items[m.cursor].Path, 76)))
	}

	b.WriteString("\n\n")
	b.WriteString(styles.HelpStyle.Render("space: toggle  a: all  enter: clean  esc: back  q: quit"))
	return b.String()
}
