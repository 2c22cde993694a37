// Package calctools binds a calculator engine to a set of tools so that
// tool-calling clients can drive the keypad. All tools share one engine and
// are serialised by a mutex.
package calctools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/germanamz/calcy/pkg/engine"
	"github.com/germanamz/calcy/pkg/keypad"
	"github.com/germanamz/calcy/pkg/tools/toolbox"
)

// Instructions describes the tools to MCP clients.
const Instructions = "A four-function calculator. Use evaluate for a whole expression, " +
	"or press to type keys one at a time exactly like a keypad (after '=' a digit starts over " +
	"and an operator continues from the result). Every tool returns the display state as JSON."

// Snapshot is the JSON body every tool returns.
type Snapshot struct {
	Display            string `json:"display"`
	Result             string `json:"result"`
	PreviousExpression string `json:"previous_expression"`
	Evaluated          bool   `json:"evaluated"`
	Recognized         int    `json:"recognized,omitempty"`
}

// Calculator serves keypad tools backed by a single engine.
type Calculator struct {
	mu   sync.Mutex
	eng  *engine.Engine
	keys *keypad.Dispatcher
	log  *slog.Logger
}

// New wraps eng and opens it so the dispatcher accepts input.
func New(eng *engine.Engine, log *slog.Logger) *Calculator {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	eng.Open()
	return &Calculator{
		eng:  eng,
		keys: keypad.New(eng),
		log:  log,
	}
}

// Tools returns a ToolBox holding the press, evaluate, clear and state tools.
func (c *Calculator) Tools() *toolbox.ToolBox {
	tb := toolbox.New()
	tb.Register(
		c.pressTool(),
		c.evaluateTool(),
		c.clearTool(),
		c.stateTool(),
	)
	return tb
}

type pressInput struct {
	Keys string `json:"keys"`
}

func (c *Calculator) pressTool() toolbox.Tool {
	return toolbox.Tool{
		Name: "press",
		Description: "Press calculator keys in order. Digits, '.', + - * /, '=' and 'c' are single characters; " +
			"named keys go in braces: {Enter}, {Backspace}, {Escape}. Returns the display state.",
		InputSchema: json.RawMessage(`{"type":"object","properties":{"keys":{"type":"string","description":"Keys to press, e.g. 12+3= or 45{Backspace}"}},"required":["keys"]}`),
		Handler: func(ctx context.Context, input json.RawMessage) (string, error) {
			var in pressInput
			if err := json.Unmarshal(input, &in); err != nil {
				return "", fmt.Errorf("press: invalid input: %w", err)
			}

			c.mu.Lock()
			defer c.mu.Unlock()

			n := c.keys.DispatchAll(keypad.Tokens(in.Keys))
			c.log.DebugContext(ctx, "keys pressed", "keys", in.Keys, "recognized", n)

			return c.snapshot(n)
		},
	}
}

type evaluateInput struct {
	Expression string `json:"expression"`
}

func (c *Calculator) evaluateTool() toolbox.Tool {
	return toolbox.Tool{
		Name: "evaluate",
		Description: "Clear the calculator, type an expression made of digits, '.', and + - * / " +
			"and press Enter. Returns the display state with the result.",
		InputSchema: json.RawMessage(`{"type":"object","properties":{"expression":{"type":"string","description":"Expression such as 2+3*4"}},"required":["expression"]}`),
		Handler: func(ctx context.Context, input json.RawMessage) (string, error) {
			var in evaluateInput
			if err := json.Unmarshal(input, &in); err != nil {
				return "", fmt.Errorf("evaluate: invalid input: %w", err)
			}

			c.mu.Lock()
			defer c.mu.Unlock()

			c.eng.Clear()
			n := c.keys.DispatchAll(keypad.Tokens(in.Expression))
			c.keys.Dispatch(keypad.KeyEnter)
			c.log.InfoContext(ctx, "expression evaluated",
				"expression", in.Expression,
				"result", c.eng.Result(),
				"evaluated", c.eng.State().LastActionWasEqual,
			)

			return c.snapshot(n)
		},
	}
}

func (c *Calculator) clearTool() toolbox.Tool {
	return toolbox.Tool{
		Name:        "clear",
		Description: "Reset the calculator. Returns the display state.",
		InputSchema: json.RawMessage(`{"type":"object"}`),
		Handler: func(context.Context, json.RawMessage) (string, error) {
			c.mu.Lock()
			defer c.mu.Unlock()

			c.eng.Clear()
			return c.snapshot(0)
		},
	}
}

func (c *Calculator) stateTool() toolbox.Tool {
	return toolbox.Tool{
		Name:        "state",
		Description: "Return the current display state without pressing anything.",
		InputSchema: json.RawMessage(`{"type":"object"}`),
		Handler: func(context.Context, json.RawMessage) (string, error) {
			c.mu.Lock()
			defer c.mu.Unlock()

			return c.snapshot(0)
		},
	}
}

// snapshot must be called with c.mu held.
func (c *Calculator) snapshot(recognized int) (string, error) {
	s := Snapshot{
		Display:            c.eng.Display(),
		Result:             c.eng.Result(),
		PreviousExpression: c.eng.PreviousExpression(),
		Evaluated:          c.eng.State().LastActionWasEqual,
		Recognized:         recognized,
	}

	data, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("calctools: encode state: %w", err)
	}

	return string(data), nil
}
