package calc

import (
	"errors"
	"fmt"
	"strconv"
)

// Sentinel causes wrapped by SyntaxError.
var (
	ErrEmpty           = errors.New("empty expression")
	ErrMissingOperand  = errors.New("missing operand")
	ErrMalformedNumber = errors.New("malformed number")
	ErrUnexpected      = errors.New("unexpected character")
)

// SyntaxError describes why an expression could not be evaluated.
type SyntaxError struct {
	Pos int // byte offset into the expression
	Err error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("calc: %v at position %d", e.Err, e.Pos)
}

func (e *SyntaxError) Unwrap() error { return e.Err }

// Result is the outcome of Evaluate. Err is nil on success.
type Result struct {
	Value float64
	Err   error
}

// OK reports whether the evaluation succeeded.
func (r Result) OK() bool { return r.Err == nil }

// Evaluate computes the value of expr. Multiplication and division bind
// tighter than addition and subtraction; operators of equal precedence
// associate left to right. Whitespace is not accepted; call Sanitize first.
func Evaluate(expr string) Result {
	if expr == "" {
		return Result{Err: &SyntaxError{Pos: 0, Err: ErrEmpty}}
	}

	p := &parser{src: expr}
	v, err := p.expr()
	if err == nil && p.pos != len(p.src) {
		err = p.errorf(ErrUnexpected)
	}
	if err != nil {
		return Result{Err: err}
	}

	return Result{Value: v}
}

// parser is a recursive-descent evaluator over a byte string.
type parser struct {
	src string
	pos int
}

func (p *parser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) errorf(cause error) error {
	return &SyntaxError{Pos: p.pos, Err: cause}
}

// expr := term (('+' | '-') term)*
func (p *parser) expr() (float64, error) {
	acc, err := p.term()
	if err != nil {
		return 0, err
	}

	for {
		op := p.peek()
		if op != '+' && op != '-' {
			return acc, nil
		}
		p.pos++

		rhs, err := p.term()
		if err != nil {
			return 0, err
		}

		if op == '+' {
			acc += rhs
		} else {
			acc -= rhs
		}
	}
}

// term := unary (('*' | '/') unary)*
func (p *parser) term() (float64, error) {
	acc, err := p.unary()
	if err != nil {
		return 0, err
	}

	for {
		op := p.peek()
		if op != '*' && op != '/' {
			return acc, nil
		}
		p.pos++

		rhs, err := p.unary()
		if err != nil {
			return 0, err
		}

		if op == '*' {
			acc *= rhs
		} else {
			acc /= rhs
		}
	}
}

// unary := ('+' | '-') unary | number
func (p *parser) unary() (float64, error) {
	switch p.peek() {
	case '-':
		p.pos++
		v, err := p.unary()
		return -v, err
	case '+':
		p.pos++
		return p.unary()
	}

	return p.number()
}

// number := digits ['.' digits?] | '.' digits
// Leading zeros are plain decimal ("05" is 5, "010" is 10), where a strict JS
// evaluator would reject the literal.
func (p *parser) number() (float64, error) {
	start := p.pos

	switch c := p.peek(); {
	case c == 0:
		return 0, p.errorf(ErrMissingOperand)
	case c == '*' || c == '/':
		return 0, p.errorf(ErrMissingOperand)
	case !isDigit(c) && c != '.':
		return 0, p.errorf(ErrUnexpected)
	}

	intDigits := p.digits()
	fracDigits := 0
	if p.peek() == '.' {
		p.pos++
		fracDigits = p.digits()
	}

	if intDigits == 0 && fracDigits == 0 {
		return 0, &SyntaxError{Pos: start, Err: ErrMalformedNumber}
	}
	// A second point or a digit run glued onto the literal, as in "1.2.3".
	if c := p.peek(); c == '.' || isDigit(c) {
		return 0, &SyntaxError{Pos: p.pos, Err: ErrMalformedNumber}
	}

	v, err := strconv.ParseFloat(p.src[start:p.pos], 64)
	if err != nil {
		// ParseFloat only fails here on range errors; it still returns ±Inf.
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			return v, nil
		}
		return 0, &SyntaxError{Pos: start, Err: ErrMalformedNumber}
	}

	return v, nil
}

func (p *parser) digits() int {
	n := 0
	for isDigit(p.peek()) {
		p.pos++
		n++
	}
	return n
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
