// Package keypad translates raw key names into calculator operations. It is
// the input-dispatch layer shared by the terminal UI, line mode and the MCP
// tools, so every frontend recognises the same keys the same way.
package keypad

import (
	"strings"

	"github.com/germanamz/calcy/pkg/calc"
	"github.com/germanamz/calcy/pkg/engine"
)

// Named keys, spelled the way browser KeyboardEvent.key values are.
const (
	KeyEnter     = "Enter"
	KeyEscape    = "Escape"
	KeyBackspace = "Backspace"
)

// Engine is the subset of *engine.Engine the dispatcher drives.
type Engine interface {
	AddDigit(token string)
	AddOperator(op string)
	Calculate() (float64, bool)
	Clear()
	Backspace()
	State() engine.State
}

// Dispatcher forwards recognised keys to an Engine.
type Dispatcher struct {
	eng Engine
}

// New creates a Dispatcher for eng.
func New(eng Engine) *Dispatcher {
	return &Dispatcher{eng: eng}
}

// Dispatch applies key to the engine and reports whether the key was
// recognised. Nothing happens until the engine has been opened. Enter and
// '=' only calculate when the expression is non-empty and does not end with
// an operator.
func (d *Dispatcher) Dispatch(key string) bool {
	if !d.eng.State().Opened {
		return false
	}

	switch key {
	case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9", ".":
		d.eng.AddDigit(key)
	case "+", "-", "*", "/":
		d.eng.AddOperator(key)
	case KeyEnter, "=":
		expr := d.eng.State().CurrentExpression
		if expr != "" && !calc.EndsWithOperator(expr) {
			d.eng.Calculate()
		}
	case KeyEscape, "c", "C":
		d.eng.Clear()
	case KeyBackspace:
		d.eng.Backspace()
	default:
		return false
	}

	return true
}

// DispatchAll applies every key in order and returns how many were
// recognised.
func (d *Dispatcher) DispatchAll(keys []string) int {
	n := 0
	for _, k := range keys {
		if d.Dispatch(k) {
			n++
		}
	}
	return n
}

// IsCalculatorKey reports whether key is one the calculator consumes. A host
// should suppress its own default handling for these keys.
func IsCalculatorKey(key string) bool {
	switch key {
	case KeyEnter, KeyEscape, KeyBackspace:
		return true
	}
	if len(key) != 1 {
		return false
	}
	r := rune(key[0])
	return calc.IsDigitToken(r) || calc.IsOperator(r) || r == '=' || r == 'c' || r == 'C'
}

// Tokens splits typed text into keys. Single characters map to themselves,
// named keys are written in braces ({Enter}, {Backspace}, {Escape}) and
// whitespace is skipped.
func Tokens(text string) []string {
	var keys []string
	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			continue
		case c == '{':
			end := strings.IndexByte(text[i:], '}')
			if end < 0 {
				keys = append(keys, text[i:i+1])
				continue
			}
			keys = append(keys, text[i+1:i+end])
			i += end
		default:
			keys = append(keys, text[i:i+1])
		}
	}
	return keys
}
