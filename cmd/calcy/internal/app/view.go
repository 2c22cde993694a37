package app

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/germanamz/calcy/cmd/calcy/internal/format"
	"github.com/germanamz/calcy/cmd/calcy/internal/styles"
	"github.com/germanamz/calcy/pkg/calc"
)

// displayWidth matches the keypad grid: four keys of five cells.
const displayWidth = 20

const faceDelete = "DEL"

var keypadRows = [][]string{
	{"7", "8", "9", "/"},
	{"4", "5", "6", "*"},
	{"1", "2", "3", "-"},
	{"0", ".", "=", "+"},
	{"C", faceDelete},
}

func (m Model) View() string {
	if !m.eng.State().Opened {
		return m.viewLauncher()
	}
	if m.showHelp {
		return lipgloss.JoinVertical(lipgloss.Left,
			format.RenderMarkdown(format.HelpMarkdown),
			m.theme.Dim.Render("press ? or esc to return"),
		)
	}

	parts := []string{m.viewDisplay()}
	if m.cfg.KeypadVisible() {
		parts = append(parts, m.viewKeypad())
	}
	if tape := m.viewTape(); tape != "" {
		parts = append(parts, tape)
	}
	if m.configErr != nil {
		parts = append(parts, m.theme.KeyClear.UnsetWidth().Render("config: "+m.configErr.Error()))
	}
	parts = append(parts, m.help.View(m.bindings))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewLauncher() string {
	return lipgloss.JoinVertical(lipgloss.Center,
		m.theme.Launcher.Render("calcy"),
		m.theme.Dim.Render("enter to open · q to quit"),
	)
}

func (m Model) viewDisplay() string {
	line := func(s string) string {
		return format.PadLeft(format.FitLeft(s, displayWidth), displayWidth)
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Previous.Render(line(m.eng.PreviousExpression())),
		m.theme.Expression.Render(line(m.eng.Display())),
		m.theme.Result.Render(line(m.eng.Result())),
	)
	return m.theme.Frame.Render(body)
}

func (m Model) viewKeypad() string {
	rows := make([]string, 0, len(keypadRows))
	for _, row := range keypadRows {
		cells := make([]string, 0, len(row))
		for _, face := range row {
			cells = append(cells, m.keyStyle(face).Render(face))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.NewStyle().Padding(0, 2).Render(strings.Join(rows, "\n"))
}

func (m Model) keyStyle(face string) lipgloss.Style {
	if face == m.pressed {
		return m.theme.KeyPressed
	}
	switch {
	case face == "=":
		return m.theme.KeyEquals
	case face == "C" || face == faceDelete:
		return m.theme.KeyClear
	case len(face) == 1 && calc.IsOperator(rune(face[0])):
		return m.theme.KeyOperator
	default:
		return m.theme.Key
	}
}

func (m Model) viewTape() string {
	if len(m.tape) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(m.theme.TapeHead.Render("tape"))
	for i, e := range m.tape {
		prefix := styles.TreeTee
		if i == len(m.tape)-1 {
			prefix = styles.TreeCorner
		}
		text := e.Previous
		if text == "" {
			text = "= " + e.Result
		}
		sb.WriteString("\n")
		sb.WriteString(m.theme.Tape.Render(prefix + text))
	}
	return sb.String()
}
