// Package app is the root bubbletea model of the calcy terminal UI: a
// launcher screen, the calculator display, an on-screen keypad, a tape of
// recent evaluations and a help screen.
package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/germanamz/calcy/cmd/calcy/internal/bridge"
	"github.com/germanamz/calcy/cmd/calcy/internal/format"
	"github.com/germanamz/calcy/cmd/calcy/internal/msgs"
	"github.com/germanamz/calcy/cmd/calcy/internal/styles"
	"github.com/germanamz/calcy/pkg/engine"
	"github.com/germanamz/calcy/pkg/keypad"
)

// flashDuration is how long a pressed key stays highlighted.
const flashDuration = 120 * time.Millisecond

// Model is the root bubbletea model.
type Model struct {
	ctx        context.Context
	eng        *engine.Engine
	keys       *keypad.Dispatcher
	cfg        engine.Config
	configPath string
	overrides  engine.Overrides
	log        *slog.Logger

	theme    styles.Theme
	bindings keyMap
	help     help.Model

	cancelBridge context.CancelFunc
	tape         []msgs.EvaluatedMsg
	configErr    error
	showHelp     bool
	pressed      string
	flashSeq     uint64
	width        int
}

// New creates the model. configPath is watched for changes once the program
// is running; pass "" to disable reloading. overrides are re-applied to every
// reloaded config.
func New(ctx context.Context, eng *engine.Engine, cfg engine.Config, configPath string, overrides engine.Overrides, log *slog.Logger) Model {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return Model{
		ctx:        ctx,
		eng:        eng,
		keys:       keypad.New(eng),
		cfg:        cfg,
		configPath: configPath,
		overrides:  overrides,
		log:        log,
		theme:      styles.ForName(cfg.Theme),
		bindings:   newKeyMap(),
		help:       help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		format.InitMarkdownRenderer(msg.Width - 4)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case msgs.ProgramReadyMsg:
		m.cancelBridge = bridge.Start(m.ctx, msg.Program, m.eng.Events(), m.configPath, m.log,
			bridge.WithOverrides(m.overrides))
		return m, nil

	case msgs.EvaluatedMsg:
		m.tape = append(m.tape, msg)
		m.trimTape()
		return m, nil

	case msgs.ConfigChangedMsg:
		m.applyConfig(msg.Config)
		return m, nil

	case msgs.ConfigErrorMsg:
		m.configErr = msg.Err
		return m, nil

	case msgs.KeyFlashDoneMsg:
		// A newer press owns the highlight.
		if msg.Seq == m.flashSeq {
			m.pressed = ""
		}
		return m, nil
	}

	return m, nil
}

// Close stops the bridge goroutines. It is safe to call more than once.
func (m Model) Close() {
	if m.cancelBridge != nil {
		m.cancelBridge()
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.bindings.Quit) {
		m.Close()
		return m, tea.Quit
	}

	if !m.eng.State().Opened {
		if key.Matches(msg, m.bindings.Open) {
			m.eng.Open()
			m.log.Debug("calculator opened")
		}
		return m, nil
	}

	if m.showHelp {
		if key.Matches(msg, m.bindings.Help) || msg.Type == tea.KeyEsc {
			m.showHelp = false
		}
		return m, nil
	}

	if key.Matches(msg, m.bindings.Help) {
		m.showHelp = true
		return m, nil
	}

	// Pasted text arrives as one message with many runes.
	if msg.Type == tea.KeyRunes && len(msg.Runes) > 1 {
		m.keys.DispatchAll(keypad.Tokens(string(msg.Runes)))
		return m, nil
	}

	raw := rawKey(msg)
	if !keypad.IsCalculatorKey(raw) {
		return m, nil
	}
	m.keys.Dispatch(raw)

	return m.flash(faceFor(raw))
}

func (m Model) flash(face string) (tea.Model, tea.Cmd) {
	m.flashSeq++
	m.pressed = face
	seq := m.flashSeq
	return m, tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return msgs.KeyFlashDoneMsg{Seq: seq}
	})
}

func (m *Model) applyConfig(cfg engine.Config) {
	if cfg.Theme != m.cfg.Theme {
		m.log.Info("theme changed", "from", m.cfg.Theme, "to", cfg.Theme)
	}
	m.cfg = cfg
	m.theme = styles.ForName(cfg.Theme)
	m.configErr = nil
	m.trimTape()
}

func (m *Model) trimTape() {
	if over := len(m.tape) - m.cfg.TapeSize; over > 0 {
		m.tape = append([]msgs.EvaluatedMsg(nil), m.tape[over:]...)
	}
}
