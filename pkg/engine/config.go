package engine

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Supported themes.
const (
	ThemeDark  = "dark"
	ThemeLight = "light"
	ThemeMono  = "mono"
)

// DefaultTapeSize is the number of evaluations kept on the tape.
const DefaultTapeSize = 8

// Config is the top-level calcy configuration.
type Config struct {
	CalcyDir   string    `yaml:"-"` // Set by CLI, not from YAML.
	Theme      string    `yaml:"theme"`
	LogLevel   string    `yaml:"log_level"`
	LogFile    string    `yaml:"log_file"`
	TapeSize   int       `yaml:"tape_size"`
	ShowKeypad *bool     `yaml:"show_keypad"`
	MCP        MCPConfig `yaml:"mcp"`
}

// MCPConfig holds settings for the calcy mcp server.
type MCPConfig struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Theme:    ThemeDark,
		LogLevel: "info",
		TapeSize: DefaultTapeSize,
		MCP:      MCPConfig{Name: "calcy", Version: "1.0.0"},
	}
}

// LoadConfig reads a YAML file and returns a Config with defaults filled in
// for omitted fields. Environment variables referenced as ${VAR} or $VAR in
// the YAML are expanded before parsing.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is caller-provided configuration, not user input
	if err != nil {
		return Config{}, fmt.Errorf("engine: load config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	cfg := DefaultConfig()
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return Config{}, fmt.Errorf("engine: parse config: %w", err)
	}

	return cfg, nil
}

// Overrides are command-line settings that take precedence over the file.
// Empty fields leave the file's value alone.
type Overrides struct {
	Theme    string
	LogLevel string
}

// Apply returns c with the non-empty overrides set.
func (o Overrides) Apply(c Config) Config {
	if o.Theme != "" {
		c.Theme = o.Theme
	}
	if o.LogLevel != "" {
		c.LogLevel = o.LogLevel
	}
	return c
}

// KeypadVisible reports whether the on-screen keypad should be drawn.
func (c Config) KeypadVisible() bool {
	return c.ShowKeypad == nil || *c.ShowKeypad
}

// Level parses LogLevel. An empty level means info.
func (c Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if c.LogLevel == "" {
		return slog.LevelInfo, nil
	}
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("engine: config: log_level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}

// Validate checks that the configuration is internally consistent.
func (c Config) Validate() error {
	switch c.Theme {
	case "", ThemeDark, ThemeLight, ThemeMono:
	default:
		return fmt.Errorf("engine: config: unknown theme %q", c.Theme)
	}

	if _, err := c.Level(); err != nil {
		return err
	}

	if c.TapeSize < 0 {
		return fmt.Errorf("engine: config: tape_size must not be negative, got %d", c.TapeSize)
	}

	if c.MCP.Name == "" {
		return fmt.Errorf("engine: config: mcp name is required")
	}

	return nil
}
