package models

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/macsweep/macsweep/internal/ui/styles"
	"github.com/macsweep/macsweep/pkg/utils"
)

// CategoryViewModel lets the user pick which scan categories to review,
// rescan a subset, or jump into the disk-usage lens.
type CategoryViewModel struct {
	ctx      *Context
	cursor   int
	selected map[string]bool
}

func NewCategoryViewModel(ctx *Context) *CategoryViewModel {
	selected := make(map[string]bool)
	for _, c := range ctx.Report.Categories() {
		if c.ItemCount() > 0 {
			selected[c.ScannerID] = true
		}
	}
	return &CategoryViewModel{ctx: ctx, selected: selected}
}

func (m *CategoryViewModel) selectedIDs() []string {
	var ids []string
	for _, c := range m.ctx.Report.Categories() {
		if m.selected[c.ScannerID] {
			ids = append(ids, c.ScannerID)
		}
	}
	return ids
}

func (m *CategoryViewModel) Update(msg tea.Msg) (*CategoryViewModel, tea.Cmd) {
	cats := m.ctx.Report.Categories()

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(cats)-1 {
				m.cursor++
			}
		case " ":
			if m.cursor < len(cats) {
				id := cats[m.cursor].ScannerID
				m.selected[id] = !m.selected[id]
			}
		case "a":
			all := len(m.selectedIDs()) < len(cats)
			for _, c := range cats {
				m.selected[c.ScannerID] = all
			}
		case "r":
			if ids := m.selectedIDs(); len(ids) > 0 {
				return m, func() tea.Msg { return RescanMsg{ScannerIDs: ids} }
			}
		case "l":
			return m, func() tea.Msg { return OpenLensMsg{} }
		case "enter":
			if ids := m.selectedIDs(); len(ids) > 0 {
				return m, func() tea.Msg { return CategoriesSelectedMsg{ScannerIDs: ids} }
			}
		}
	}
	return m, nil
}

func (m *CategoryViewModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("Categories"))
	b.WriteString("\n")
	b.WriteString(styles.SubtitleStyle.Render(fmt.Sprintf("%s reclaimable in %d items",
		utils.FormatBytes(m.ctx.Report.TotalSize), m.ctx.Report.TotalItems)))
	b.WriteString("\n\n")

	for i, c := range m.ctx.Report.Categories() {
		box := styles.UncheckedBox()
		if m.selected[c.ScannerID] {
			box = styles.CheckedBox()
		}

		line := fmt.Sprintf("%s %-28s %10s  %4d items",
			box, c.Name, utils.FormatBytes(c.SizeBytes), c.ItemCount())
		if i == m.cursor {
			line = styles.HighlightStyle.Render(line)
		}
		b.WriteString("  " + line + "\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render("space: toggle  a: all  enter: review  r: rescan selected  l: disk lens  q: quit"))
	return b.String()
}
