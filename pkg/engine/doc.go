// Package engine owns the calculator's expression state machine. An Engine
// accumulates keypad input into a textual expression, evaluates it on demand
// through [github.com/germanamz/calcy/pkg/calc] and keeps the strings a display
// renders. Frontends (TUI, line mode, MCP tools) drive an Engine one input at
// a time, observe changes through an EventBus, and load their settings with
// LoadConfig.
package engine
