package app

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/germanamz/calcy/pkg/keypad"
)

// keyMap holds the global bindings and the entries shown in the help bar.
// Calculator keys themselves are recognised by keypad.IsCalculatorKey.
type keyMap struct {
	Open      key.Binding
	Equals    key.Binding
	Backspace key.Binding
	Clear     key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Open: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "open"),
		),
		Equals: key.NewBinding(
			key.WithKeys("enter", "="),
			key.WithHelp("enter/=", "evaluate"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("⌫", "delete"),
		),
		Clear: key.NewBinding(
			key.WithKeys("esc", "c", "C"),
			key.WithHelp("esc/c", "clear"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Equals, k.Backspace, k.Clear, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// rawKey maps a bubbletea key to the name the keypad dispatcher expects.
// Keys with no calculator meaning come back as bubbletea spells them.
func rawKey(msg tea.KeyMsg) string {
	switch msg.Type {
	case tea.KeyEnter:
		return keypad.KeyEnter
	case tea.KeyEsc:
		return keypad.KeyEscape
	case tea.KeyBackspace:
		return keypad.KeyBackspace
	case tea.KeyRunes:
		if len(msg.Runes) == 1 && !msg.Alt {
			return string(msg.Runes)
		}
	}
	return msg.String()
}

// faceFor returns the keypad face lit up by a pressed key.
func faceFor(raw string) string {
	switch raw {
	case keypad.KeyEnter:
		return "="
	case keypad.KeyEscape, "c":
		return "C"
	case keypad.KeyBackspace:
		return faceDelete
	}
	return raw
}
