package engine

import (
	"log/slog"
	"time"

	"github.com/germanamz/calcy/pkg/calc"
)

// InitialResult is the result shown before anything has been evaluated.
const InitialResult = "0"

// State is the calculator's complete mutable state.
type State struct {
	CurrentExpression  string `json:"current_expression"`
	Result             string `json:"result"`
	PreviousExpression string `json:"previous_expression"`
	LastActionWasEqual bool   `json:"last_action_was_equal"`
	Opened             bool   `json:"opened"`
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for evaluation diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithEvents sets the bus state changes are published to.
func WithEvents(bus *EventBus) Option {
	return func(e *Engine) { e.events = bus }
}

// Engine is the expression state machine. It is not safe for concurrent use;
// callers feed it one input at a time.
type Engine struct {
	state  State
	log    *slog.Logger
	events *EventBus
}

// New creates an Engine in the cleared state.
func New(opts ...Option) *Engine {
	e := &Engine{
		state: State{Result: InitialResult},
		log:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.events == nil {
		e.events = NewEventBus()
	}
	return e
}

// Events returns the bus the engine publishes to.
func (e *Engine) Events() *EventBus { return e.events }

// State returns a copy of the current state.
func (e *Engine) State() State { return e.state }

// Display returns the expression line, or "0" when nothing was entered.
func (e *Engine) Display() string {
	if e.state.CurrentExpression == "" {
		return "0"
	}
	return e.state.CurrentExpression
}

// Result returns the last computed value.
func (e *Engine) Result() string { return e.state.Result }

// PreviousExpression returns the last "expression = result" pair.
func (e *Engine) PreviousExpression() string { return e.state.PreviousExpression }

// AddDigit handles a digit or decimal point. After an evaluation it starts a
// fresh expression. Repeated decimal points in one operand are accepted.
func (e *Engine) AddDigit(token string) {
	if len(token) != 1 || !calc.IsDigitToken(rune(token[0])) {
		e.log.Debug("ignoring non-digit token", "token", token)
		return
	}

	if e.state.LastActionWasEqual {
		e.state.CurrentExpression = token
		e.state.Result = InitialResult
		e.state.LastActionWasEqual = false
	} else {
		e.state.CurrentExpression += token
	}

	e.publish(EventDigit, token)
}

// AddOperator handles + - * /. After an evaluation it chains onto the result;
// otherwise a trailing operator is replaced rather than stacked.
func (e *Engine) AddOperator(op string) {
	if len(op) != 1 || !calc.IsOperator(rune(op[0])) {
		e.log.Debug("ignoring non-operator token", "token", op)
		return
	}

	switch {
	case e.state.LastActionWasEqual:
		e.state.CurrentExpression = e.state.Result + op
		e.state.LastActionWasEqual = false
	case calc.EndsWithOperator(e.state.CurrentExpression):
		expr := e.state.CurrentExpression
		e.state.CurrentExpression = expr[:len(expr)-1] + op
	default:
		e.state.CurrentExpression += op
	}

	e.publish(EventOperator, op)
}

// Calculate evaluates the current expression. It returns the computed value
// and true when the state was updated. An empty expression or one ending in
// an operator is left alone and yields (0, false). When the expression cannot
// be evaluated the numeric coercion of the raw expression is returned with
// false and nothing changes.
func (e *Engine) Calculate() (float64, bool) {
	raw := e.state.CurrentExpression
	if raw == "" || calc.EndsWithOperator(raw) {
		return 0, false
	}

	expr, ok := calc.Sanitize(raw)
	if !ok {
		e.log.Debug("expression has characters outside the keypad set", "expression", raw)
		return calc.Coerce(raw), false
	}

	res := calc.Evaluate(expr)
	if res.OK() {
		result := calc.FormatNumber(res.Value)
		if e.state.LastActionWasEqual {
			e.state.PreviousExpression = ""
		} else {
			e.state.PreviousExpression = raw + " = " + result
		}
		e.state.Result = result
		e.state.LastActionWasEqual = true
		e.publish(EventEvaluated, "=")
		return res.Value, true
	}

	e.log.Debug("evaluation failed, retrying without trailing operators",
		"expression", expr,
		"error", res.Err,
	)

	retry := calc.Evaluate(calc.TrimTrailingOperators(expr))
	if !retry.OK() {
		e.log.Debug("evaluation failed", "expression", expr, "error", retry.Err)
		return calc.Coerce(raw), false
	}

	e.state.Result = calc.FormatNumber(retry.Value)
	e.state.LastActionWasEqual = true
	e.publish(EventEvaluated, "=")
	return retry.Value, true
}

// Clear resets the expression, result and history. The opened flag is kept.
func (e *Engine) Clear() {
	e.state.CurrentExpression = ""
	e.state.Result = InitialResult
	e.state.PreviousExpression = ""
	e.state.LastActionWasEqual = false
	e.publish(EventCleared, "")
}

// Backspace removes the last character of the expression. It does nothing
// right after an evaluation. Deleting the last character leaves "0".
func (e *Engine) Backspace() {
	if e.state.LastActionWasEqual {
		return
	}

	expr := e.state.CurrentExpression
	if expr != "" {
		expr = expr[:len(expr)-1]
	}
	if expr == "" {
		expr = "0"
	}
	e.state.CurrentExpression = expr
	e.publish(EventBackspace, "")
}

// Open marks the calculator as the active input target.
func (e *Engine) Open() {
	e.state.Opened = true
	e.publish(EventOpened, "")
}

func (e *Engine) publish(kind EventKind, token string) {
	e.events.Publish(Event{
		Kind:      kind,
		Token:     token,
		State:     e.state,
		Timestamp: time.Now(),
	})
}
