package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/germanamz/calcy/cmd/calcy/internal/app"
	"github.com/germanamz/calcy/cmd/calcy/internal/format"
	"github.com/germanamz/calcy/cmd/calcy/internal/linemode"
	"github.com/germanamz/calcy/cmd/calcy/internal/msgs"
	"github.com/germanamz/calcy/cmd/calcy/internal/wizard"
	"github.com/germanamz/calcy/pkg/calcdir"
	"github.com/germanamz/calcy/pkg/engine"
	"github.com/germanamz/calcy/pkg/tools/calctools"
	"github.com/germanamz/calcy/pkg/tools/mcpserver"
	"github.com/mattn/go-isatty"
)

func runInit(dirPath string) error {
	configYAML, err := wizard.Run()
	if err != nil {
		return err
	}

	d := calcdir.New(dirPath)

	if err := calcdir.BootstrapWithConfig(d, configYAML); err != nil {
		return err
	}

	fmt.Printf("Initialized %s\n", d.Root())

	return nil
}

// run starts the TUI, or line mode when stdin is not a terminal.
func run(opts options) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, configPath, err := loadConfig(opts)
	if err != nil {
		return err
	}

	log, closer, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	eng := engine.New(engine.WithLogger(log))

	if !isTerminal(os.Stdin) {
		log.Info("starting line mode")
		return linemode.Run(ctx, eng, os.Stdin, os.Stdout, log)
	}

	log.Info("starting tui", "config", configPath, "theme", cfg.Theme)

	// Detect before the program takes over the terminal.
	format.IsDarkBG = lipgloss.HasDarkBackground()

	model := app.New(ctx, eng, cfg, configPath, opts.overrides(), log)
	p := tea.NewProgram(model, tea.WithContext(ctx))

	// Send the program reference so the model can start bridge goroutines.
	go func() {
		p.Send(msgs.ProgramReadyMsg{Program: p})
	}()

	final, err := p.Run()
	if m, ok := final.(app.Model); ok {
		m.Close()
	}
	return err
}

func runMCP(opts options) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, _, err := loadConfig(opts)
	if err != nil {
		return err
	}

	log, closer, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	calc := calctools.New(engine.New(engine.WithLogger(log)), log)

	srv := mcpserver.New(cfg.MCP.Name, cfg.MCP.Version, log,
		mcpserver.WithInstructions(calctools.Instructions))
	srv.Register(calc.Tools())

	log.Info("serving mcp", "name", cfg.MCP.Name, "version", cfg.MCP.Version)

	return srv.Serve(ctx, os.Stdin, os.Stdout)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
