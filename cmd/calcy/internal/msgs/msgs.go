package msgs

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/germanamz/calcy/pkg/engine"
)

// --- Bridge → TUI messages ---

// EvaluatedMsg carries a successful evaluation observed on the engine bus.
type EvaluatedMsg struct {
	Previous string // "expression = result", empty for a chained re-evaluation
	Result   string
	At       time.Time
}

// ConfigChangedMsg delivers a reloaded configuration after the file changed.
type ConfigChangedMsg struct {
	Config engine.Config
}

// ConfigErrorMsg reports a config file that changed but failed to load.
type ConfigErrorMsg struct {
	Err error
}

// --- Internal messages ---

// ProgramReadyMsg passes the *tea.Program to the model so it can start bridge goroutines.
type ProgramReadyMsg struct {
	Program *tea.Program
}

// KeyFlashDoneMsg clears the pressed-key highlight.
type KeyFlashDoneMsg struct {
	Seq uint64
}
