package styles

import "github.com/charmbracelet/lipgloss"

// Palette is the set of colors a theme is built from.
type Palette struct {
	Fg       lipgloss.TerminalColor
	Muted    lipgloss.TerminalColor
	Accent   lipgloss.TerminalColor
	Operator lipgloss.TerminalColor
	Equals   lipgloss.TerminalColor
	Danger   lipgloss.TerminalColor
}

// GitHub terminal dark and light palettes.
var (
	DarkPalette = Palette{
		Fg:       lipgloss.Color("#e6edf3"),
		Muted:    lipgloss.Color("#7d8590"),
		Accent:   lipgloss.Color("#58a6ff"),
		Operator: lipgloss.Color("#d2a8ff"),
		Equals:   lipgloss.Color("#3fb950"),
		Danger:   lipgloss.Color("#f85149"),
	}
	LightPalette = Palette{
		Fg:       lipgloss.Color("#24292f"),
		Muted:    lipgloss.Color("#656d76"),
		Accent:   lipgloss.Color("#0969da"),
		Operator: lipgloss.Color("#8250df"),
		Equals:   lipgloss.Color("#1a7f37"),
		Danger:   lipgloss.Color("#cf222e"),
	}
)

// Theme holds every style the TUI renders with.
type Theme struct {
	Name string

	Frame      lipgloss.Style
	Previous   lipgloss.Style
	Expression lipgloss.Style
	Result     lipgloss.Style

	Key         lipgloss.Style
	KeyOperator lipgloss.Style
	KeyEquals   lipgloss.Style
	KeyClear    lipgloss.Style
	KeyPressed  lipgloss.Style

	Tape     lipgloss.Style
	TapeHead lipgloss.Style
	Launcher lipgloss.Style
	Dim      lipgloss.Style
}

// ForName returns the theme with the given name. Unknown names get the dark
// theme.
func ForName(name string) Theme {
	switch name {
	case "light":
		return build("light", LightPalette)
	case "mono":
		return mono()
	default:
		return build("dark", DarkPalette)
	}
}

func build(name string, p Palette) Theme {
	key := lipgloss.NewStyle().Width(5).Align(lipgloss.Center).Foreground(p.Fg)

	return Theme{
		Name: name,

		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Accent).
			Padding(0, 1),
		Previous:   lipgloss.NewStyle().Foreground(p.Muted),
		Expression: lipgloss.NewStyle().Foreground(p.Fg),
		Result:     lipgloss.NewStyle().Bold(true).Foreground(p.Accent),

		Key:         key,
		KeyOperator: key.Foreground(p.Operator).Bold(true),
		KeyEquals:   key.Foreground(p.Equals).Bold(true),
		KeyClear:    key.Foreground(p.Danger),
		KeyPressed:  key.Reverse(true),

		Tape:     lipgloss.NewStyle().Foreground(p.Muted),
		TapeHead: lipgloss.NewStyle().Bold(true).Foreground(p.Fg),
		Launcher: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Accent).
			Foreground(p.Accent).
			Padding(1, 4),
		Dim: lipgloss.NewStyle().Foreground(p.Muted),
	}
}

// mono uses attributes only, for terminals without color.
func mono() Theme {
	key := lipgloss.NewStyle().Width(5).Align(lipgloss.Center)

	return Theme{
		Name: "mono",

		Frame:      lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1),
		Previous:   lipgloss.NewStyle().Faint(true),
		Expression: lipgloss.NewStyle(),
		Result:     lipgloss.NewStyle().Bold(true),

		Key:         key,
		KeyOperator: key.Bold(true),
		KeyEquals:   key.Bold(true).Underline(true),
		KeyClear:    key.Italic(true),
		KeyPressed:  key.Reverse(true),

		Tape:     lipgloss.NewStyle().Faint(true),
		TapeHead: lipgloss.NewStyle().Bold(true),
		Launcher: lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(1, 4),
		Dim:      lipgloss.NewStyle().Faint(true),
	}
}

// Tree-drawing characters for the tape.
const (
	TreeCorner = "└ "
	TreeTee    = "├ "
)
