package engine

import (
	"bytes"
	"log/slog"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// press feeds a keypad sequence: digits and points go to AddDigit, operators
// to AddOperator, '=' to Calculate, 'C' to Clear and '<' to Backspace.
func press(e *Engine, keys string) {
	for _, r := range keys {
		k := string(r)
		switch r {
		case '=':
			e.Calculate()
		case 'C':
			e.Clear()
		case '<':
			e.Backspace()
		case '+', '-', '*', '/':
			e.AddOperator(k)
		default:
			e.AddDigit(k)
		}
	}
}

func TestNew_InitialState(t *testing.T) {
	e := New()
	want := State{Result: "0"}
	if diff := cmp.Diff(want, e.State()); diff != "" {
		t.Errorf("initial state mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, "0", e.Display())
}

func TestAddDigit_Concatenates(t *testing.T) {
	e := New()
	press(e, "1234.5")
	assert.Equal(t, "1234.5", e.State().CurrentExpression)
	assert.Equal(t, "1234.5", e.Display())
}

func TestAddDigit_RepeatedDecimalPointAccepted(t *testing.T) {
	e := New()
	press(e, "1.2.3")
	assert.Equal(t, "1.2.3", e.State().CurrentExpression)
}

func TestAddDigit_IgnoresOtherTokens(t *testing.T) {
	e := New()
	e.AddDigit("+")
	e.AddDigit("12")
	e.AddDigit("")
	assert.Empty(t, e.State().CurrentExpression)
}

func TestAddOperator_ReplacesTrailingOperator(t *testing.T) {
	ops := []string{"+", "-", "*", "/"}
	for _, first := range ops {
		for _, second := range ops {
			e := New()
			press(e, "9")
			e.AddOperator(first)
			e.AddOperator(second)
			assert.Equal(t, "9"+second, e.State().CurrentExpression)
		}
	}
}

func TestAddOperator_OnEmptyExpression(t *testing.T) {
	e := New()
	e.AddOperator("-")
	assert.Equal(t, "-", e.State().CurrentExpression)
}

func TestAddOperator_IgnoresOtherTokens(t *testing.T) {
	e := New()
	press(e, "5")
	e.AddOperator("=")
	e.AddOperator("7")
	assert.Equal(t, "5", e.State().CurrentExpression)
}

func TestScenarios(t *testing.T) {
	tests := []struct {
		name string
		keys string
		want State
	}{
		{
			name: "simple addition",
			keys: "1+2=",
			want: State{
				CurrentExpression:  "1+2",
				Result:             "3",
				PreviousExpression: "1+2 = 3",
				LastActionWasEqual: true,
			},
		},
		{
			name: "trailing operator is not evaluated",
			keys: "5+=",
			want: State{CurrentExpression: "5+", Result: "0"},
		},
		{
			name: "digit after equals starts fresh",
			keys: "1+2=4",
			want: State{
				CurrentExpression:  "4",
				Result:             "0",
				PreviousExpression: "1+2 = 3",
			},
		},
		{
			name: "operator after equals chains result",
			keys: "1+2=*2=",
			want: State{
				CurrentExpression:  "3*2",
				Result:             "6",
				PreviousExpression: "3*2 = 6",
				LastActionWasEqual: true,
			},
		},
		{
			name: "second operator replaces first",
			keys: "7/*",
			want: State{CurrentExpression: "7*", Result: "0"},
		},
		{
			name: "clear resets everything",
			keys: "1+2=*3C",
			want: State{Result: "0"},
		},
		{
			name: "precedence",
			keys: "2+3*4=",
			want: State{
				CurrentExpression:  "2+3*4",
				Result:             "14",
				PreviousExpression: "2+3*4 = 14",
				LastActionWasEqual: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New()
			press(e, tt.keys)
			if diff := cmp.Diff(tt.want, e.State()); diff != "" {
				t.Errorf("state mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCalculate_ReturnValues(t *testing.T) {
	e := New()

	v, ok := e.Calculate()
	assert.False(t, ok)
	assert.Zero(t, v)

	press(e, "6*7")
	v, ok = e.Calculate()
	assert.True(t, ok)
	assert.Equal(t, 42.0, v)
}

func TestCalculate_RepeatedEqualsClearsPrevious(t *testing.T) {
	e := New()
	press(e, "1+2==")

	s := e.State()
	assert.Equal(t, "3", s.Result)
	assert.Empty(t, s.PreviousExpression)
	assert.True(t, s.LastActionWasEqual)
}

func TestCalculate_MalformedNumberFallsBack(t *testing.T) {
	e := New()
	press(e, "1.2.3")

	v, ok := e.Calculate()
	assert.False(t, ok)
	assert.Zero(t, v)

	if diff := cmp.Diff(State{CurrentExpression: "1.2.3", Result: "0"}, e.State()); diff != "" {
		t.Errorf("state mismatch (-want +got):\n%s", diff)
	}
}

func TestCalculate_LeadingOperator(t *testing.T) {
	e := New()
	press(e, "-5=")
	assert.Equal(t, "-5", e.Result())

	e.Clear()
	press(e, "*5")
	v, ok := e.Calculate()
	assert.False(t, ok)
	assert.Zero(t, v)
	assert.Equal(t, "0", e.Result())
}

func TestCalculate_DivisionByZero(t *testing.T) {
	e := New()
	press(e, "1/0=")
	assert.Equal(t, "Infinity", e.Result())
	assert.Equal(t, "1/0 = Infinity", e.PreviousExpression())

	e.Clear()
	press(e, "0/0=")
	assert.Equal(t, "NaN", e.Result())
}

func TestCalculate_NonKeypadCharactersFallBack(t *testing.T) {
	e := New()
	press(e, "1/0=+2")
	require.Equal(t, "Infinity+2", e.State().CurrentExpression)

	before := e.State()
	v, ok := e.Calculate()
	assert.False(t, ok)
	assert.Zero(t, v)
	if diff := cmp.Diff(before, e.State()); diff != "" {
		t.Errorf("state changed (-before +after):\n%s", diff)
	}
}

func TestCalculate_InfinityAloneCoerces(t *testing.T) {
	e := New()
	press(e, "1/0=")
	e.state.CurrentExpression = e.state.Result
	e.state.LastActionWasEqual = false

	v, ok := e.Calculate()
	assert.False(t, ok)
	assert.True(t, math.IsInf(v, 1))
}

func TestCalculate_RetryWithoutTrailingOperator(t *testing.T) {
	e := New()
	// Trailing whitespace hides the operator from the empty/trailing guard;
	// sanitising exposes it, so only the trimmed retry succeeds.
	e.state.CurrentExpression = "5+ "

	v, ok := e.Calculate()
	assert.True(t, ok)
	assert.Equal(t, 5.0, v)

	st := e.State()
	assert.Equal(t, "5", st.Result)
	assert.Empty(t, st.PreviousExpression)
	assert.True(t, st.LastActionWasEqual)
	assert.Equal(t, "5+ ", st.CurrentExpression)
}

func TestCalculate_RetryKeepsEarlierPreviousExpression(t *testing.T) {
	e := New()
	press(e, "2*3=")
	e.state.CurrentExpression = "4-\t"
	e.state.LastActionWasEqual = false

	v, ok := e.Calculate()
	assert.True(t, ok)
	assert.Equal(t, 4.0, v)
	assert.Equal(t, "4", e.Result())
	assert.Equal(t, "2*3 = 6", e.PreviousExpression())
}

func TestCalculate_FloatingPointResult(t *testing.T) {
	e := New()
	press(e, "0.1+0.2=")
	assert.Equal(t, "0.30000000000000004", e.Result())
}

func TestBackspace(t *testing.T) {
	e := New()
	press(e, "12+3")

	e.Backspace()
	assert.Equal(t, "12+", e.State().CurrentExpression)

	for range 10 {
		e.Backspace()
	}
	assert.Equal(t, "0", e.State().CurrentExpression)

	e.Backspace()
	assert.Equal(t, "0", e.State().CurrentExpression)
}

func TestBackspace_ZeroIsAppendedTo(t *testing.T) {
	e := New()
	press(e, "7<5")
	assert.Equal(t, "05", e.State().CurrentExpression)

	press(e, "+1=")
	assert.Equal(t, "6", e.Result())
}

func TestBackspace_NoOpAfterEquals(t *testing.T) {
	e := New()
	press(e, "8*8=")
	before := e.State()

	e.Backspace()
	if diff := cmp.Diff(before, e.State()); diff != "" {
		t.Errorf("backspace changed state (-before +after):\n%s", diff)
	}
}

func TestOpen(t *testing.T) {
	e := New()
	assert.False(t, e.State().Opened)

	e.Open()
	assert.True(t, e.State().Opened)

	e.Clear()
	assert.True(t, e.State().Opened, "clear keeps the opened flag")
}

func TestEngine_PublishesEvents(t *testing.T) {
	bus := NewEventBus()
	sub := bus.Subscribe(16)
	defer bus.Unsubscribe(sub)

	e := New(WithEvents(bus))
	press(e, "2*3=")

	var kinds []EventKind
	var last Event
	timeout := time.After(time.Second)
	for len(kinds) < 4 {
		select {
		case ev := <-sub.C:
			kinds = append(kinds, ev.Kind)
			last = ev
		case <-timeout:
			t.Fatalf("timed out after %v", kinds)
		}
	}

	assert.Equal(t, []EventKind{EventDigit, EventOperator, EventDigit, EventEvaluated}, kinds)
	assert.Equal(t, "6", last.State.Result)
	assert.Equal(t, "2*3 = 6", last.State.PreviousExpression)
	assert.Same(t, bus, e.Events())
}

func TestEngine_LogsEvaluationFailure(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	e := New(WithLogger(log))
	press(e, "1.2.3=")

	assert.Contains(t, buf.String(), "evaluation failed")
	assert.Contains(t, buf.String(), "expression=1.2.3")
}
