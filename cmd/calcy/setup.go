package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/germanamz/calcy/pkg/calcdir"
	"github.com/germanamz/calcy/pkg/engine"
	"github.com/joho/godotenv"
)

// options are the flags shared by the TUI and the mcp subcommand.
type options struct {
	configPath string
	calcyDir   string
	envFile    string
	theme      string
	logLevel   string
}

func (o *options) register(fs *flag.FlagSet) {
	fs.StringVar(&o.configPath, "config", "", "path to configuration file (default: .calcy/config.yaml or calcy.yaml)")
	fs.StringVar(&o.calcyDir, "calcy-dir", ".calcy", "path to .calcy directory")
	fs.StringVar(&o.envFile, "env", ".env", "path to .env file (ignored if missing)")
}

func (o options) overrides() engine.Overrides {
	return engine.Overrides{Theme: o.theme, LogLevel: o.logLevel}
}

func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// loadConfig resolves and loads the config, applies flag overrides and
// validates the result. It returns the path that was loaded, or "" when the
// built-in defaults are in use.
func loadConfig(opts options) (engine.Config, string, error) {
	d := calcdir.New(opts.calcyDir)

	// Config resolution: explicit flag → .calcy/config.yaml → calcy.yaml.
	path := calcdir.ResolveConfigPath(opts.configPath, d)

	cfg := engine.DefaultConfig()
	if path != "" {
		var err error
		if cfg, err = engine.LoadConfig(path); err != nil {
			return engine.Config{}, "", err
		}
	}
	cfg.CalcyDir = d.Root()

	cfg = opts.overrides().Apply(cfg)

	if err := cfg.Validate(); err != nil {
		return engine.Config{}, "", err
	}

	return cfg, path, nil
}

// openLogger writes JSON logs to the configured file, or to local/calcy.log
// inside the .calcy directory. Stdout belongs to the TUI or the MCP stream so
// logs never go there.
func openLogger(cfg engine.Config) (*slog.Logger, io.Closer, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, nil, err
	}

	path := cfg.LogFile
	if path == "" {
		d := calcdir.New(cfg.CalcyDir)
		if err := calcdir.EnsureStructure(d); err != nil {
			return nil, nil, err
		}
		path = d.LogPath()
	} else if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, nil, fmt.Errorf("calcy: create log dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600) //nolint:gosec // path comes from trusted config
	if err != nil {
		return nil, nil, fmt.Errorf("calcy: open log file: %w", err)
	}

	log := slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level}))
	return log, f, nil
}
