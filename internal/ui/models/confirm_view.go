package models

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/macsweep/macsweep/internal/scanner"
	"github.com/macsweep/macsweep/internal/ui/styles"
	"github.com/macsweep/macsweep/pkg/utils"
)

// ConfirmViewModel is the last stop before deletion.
type ConfirmViewModel struct {
	ctx    *Context
	items  []scanner.Finding
	dryRun bool
}

func NewConfirmViewModel(ctx *Context, items []scanner.Finding) *ConfirmViewModel {
	return &ConfirmViewModel{
		ctx:    ctx,
		items:  items,
		dryRun: ctx.Config.Clean.DryRunByDefault,
	}
}

// Items returns the findings awaiting confirmation.
func (m *ConfirmViewModel) Items() []scanner.Finding { return m.items }

func (m *ConfirmViewModel) Update(msg tea.Msg) (*ConfirmViewModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "d":
			m.dryRun = !m.dryRun
		case "y", "enter":
			dry := m.dryRun
			return m, func() tea.Msg { return ConfirmedMsg{DryRun: dry} }
		case "n":
			return m, func() tea.Msg { return BackMsg{} }
		}
	}
	return m, nil
}

func (m *ConfirmViewModel) View() string {
	var total int64
	commands := 0
	for _, it := range m.items {
		total += it.Size
		if it.Metadata["scanner_id"] == "maintenance" {
			commands++
		}
	}

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("Confirm Cleanup"))
	b.WriteString("\n\n")

	panel := fmt.Sprintf("%d items, %s to reclaim",
		len(m.items), styles.FileSizeStyle.Render(utils.FormatBytes(total)))
	if commands > 0 {
		panel += fmt.Sprintf("\n%d maintenance commands will run", commands)
	}
	if m.dryRun {
		panel += "\n" + styles.BoldStyle.Render("DRY RUN — nothing will be deleted")
	} else {
		panel += "\n" + styles.ErrorStyle.Render("Deletion is permanent")
	}
	b.WriteString(styles.PanelStyle.Render(panel))

	b.WriteString("\n\n")
	b.WriteString(styles.HelpStyle.Render("y: proceed  n/esc: back  d: toggle dry-run  q: quit"))
	return b.String()
}
