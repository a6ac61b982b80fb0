package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/xab-mack/reguard/internal/model"
)

type modelT struct {
	reports []model.Report
}

func initialModel(reports []model.Report) modelT { return modelT{reports: reports} }

func (m modelT) Init() tea.Cmd { return nil }

func (m modelT) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m modelT) View() string {
	var b strings.Builder
	for _, r := range m.reports {
		fmt.Fprintf(&b, "%s (%d flagged)\n", r.Contract, len(r.Findings))
		for _, f := range r.Findings {
			fmt.Fprintf(&b, "  %s %s:%d\n", f.Function, f.File, f.Line)
		}
	}
	b.WriteString("\nq to quit\n")
	return b.String()
}

// Run launches a minimal TUI list view
func Run(reports []model.Report) error {
	p := tea.NewProgram(initialModel(reports))
	_, err := p.Run()
	return err
}
