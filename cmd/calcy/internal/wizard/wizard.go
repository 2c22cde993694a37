// Package wizard collects calcy settings through an interactive huh form and
// renders them as config YAML.
package wizard

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/germanamz/calcy/pkg/engine"
	"gopkg.in/yaml.v3"
)

// Answers are the values the form collects.
type Answers struct {
	Theme      string
	LogLevel   string
	TapeSize   string
	ShowKeypad bool
}

// DefaultAnswers pre-fills the form from the built-in defaults.
func DefaultAnswers() Answers {
	def := engine.DefaultConfig()
	return Answers{
		Theme:      def.Theme,
		LogLevel:   def.LogLevel,
		TapeSize:   strconv.Itoa(def.TapeSize),
		ShowKeypad: def.KeypadVisible(),
	}
}

// Run shows the form and returns the resulting config YAML.
func Run() ([]byte, error) {
	a := DefaultAnswers()

	err := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Theme").
			Options(
				huh.NewOption("Dark", engine.ThemeDark),
				huh.NewOption("Light", engine.ThemeLight),
				huh.NewOption("Monochrome", engine.ThemeMono),
			).
			Value(&a.Theme),
		huh.NewSelect[string]().
			Title("Log level").
			Options(
				huh.NewOption("Debug", "debug"),
				huh.NewOption("Info", "info"),
				huh.NewOption("Warn", "warn"),
				huh.NewOption("Error", "error"),
			).
			Value(&a.LogLevel),
		huh.NewInput().
			Title("Tape size (evaluations kept on screen, 0 = hide)").
			Value(&a.TapeSize).
			Validate(validateNonNegativeInt),
		huh.NewConfirm().Title("Show on-screen keypad?").Value(&a.ShowKeypad),
	)).Run()
	if err != nil {
		return nil, err
	}

	return Marshal(a)
}

// YAML output types.

type configYAML struct {
	Theme      string  `yaml:"theme"`
	LogLevel   string  `yaml:"log_level"`
	TapeSize   int     `yaml:"tape_size"`
	ShowKeypad bool    `yaml:"show_keypad"`
	MCP        mcpYAML `yaml:"mcp"`
}

type mcpYAML struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// Marshal converts answers to config YAML.
func Marshal(a Answers) ([]byte, error) {
	if err := validateNonNegativeInt(a.TapeSize); err != nil {
		return nil, fmt.Errorf("wizard: tape size: %w", err)
	}
	tape, _ := strconv.Atoi(a.TapeSize)

	def := engine.DefaultConfig()
	out := configYAML{
		Theme:      a.Theme,
		LogLevel:   a.LogLevel,
		TapeSize:   tape,
		ShowKeypad: a.ShowKeypad,
		MCP:        mcpYAML{Name: def.MCP.Name, Version: def.MCP.Version},
	}

	data, err := yaml.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("wizard: marshal config: %w", err)
	}

	return data, nil
}

func validateNonNegativeInt(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return fmt.Errorf("must be a non-negative integer")
	}

	return nil
}
