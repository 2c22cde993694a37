// Package linemode drives the calculator from a plain text stream. Each line
// is a sequence of keys; after every line the display is printed. It is used
// when stdin is not a terminal, e.g. `echo '12*3=' | calcy`.
package linemode

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/germanamz/calcy/pkg/engine"
	"github.com/germanamz/calcy/pkg/keypad"
)

// Run reads lines from in until EOF or ctx is done and writes one report per
// line to out: the result when the line ended in an evaluation, otherwise
// the expression being entered.
func Run(ctx context.Context, eng *engine.Engine, in io.Reader, out io.Writer, log *slog.Logger) error {
	eng.Open()
	keys := keypad.New(eng)

	sc := bufio.NewScanner(in)
	lineNo := 0
	for sc.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		lineNo++

		tokens := keypad.Tokens(sc.Text())
		if len(tokens) == 0 {
			continue
		}
		n := keys.DispatchAll(tokens)
		if n < len(tokens) {
			log.Debug("unrecognised keys skipped", "line", lineNo, "skipped", len(tokens)-n)
		}

		if err := report(out, eng); err != nil {
			return err
		}
	}

	if err := sc.Err(); err != nil {
		return fmt.Errorf("linemode: read input: %w", err)
	}

	return nil
}

func report(out io.Writer, eng *engine.Engine) error {
	var err error
	if eng.State().LastActionWasEqual {
		if prev := eng.PreviousExpression(); prev != "" {
			_, err = fmt.Fprintln(out, prev)
		} else {
			_, err = fmt.Fprintln(out, eng.Result())
		}
	} else {
		_, err = fmt.Fprintln(out, eng.Display())
	}
	if err != nil {
		return fmt.Errorf("linemode: write output: %w", err)
	}
	return nil
}
