package calc

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Operators lists the binary operator characters in keypad order.
const Operators = "+-*/"

// IsOperator reports whether r is one of + - * /.
func IsOperator(r rune) bool {
	return strings.ContainsRune(Operators, r)
}

// IsDigitToken reports whether r is a digit or the decimal point.
func IsDigitToken(r rune) bool {
	return r == '.' || (r >= '0' && r <= '9')
}

// EndsWithOperator reports whether the last character of s is an operator.
func EndsWithOperator(s string) bool {
	if s == "" {
		return false
	}
	return IsOperator(rune(s[len(s)-1]))
}

// TrimTrailingOperators removes every operator character from the end of s.
func TrimTrailingOperators(s string) string {
	return strings.TrimRight(s, Operators)
}

// Sanitize strips whitespace from s and reports whether what remains consists
// only of digits, decimal points and operators.
func Sanitize(s string) (string, bool) {
	clean := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)

	if clean == "" {
		return clean, false
	}
	for _, r := range clean {
		if !IsDigitToken(r) && !IsOperator(r) {
			return clean, false
		}
	}

	return clean, true
}

// FormatNumber renders v the way JavaScript's String(number) does: no
// trailing fraction for integers, exponent notation outside [1e-6, 1e21),
// and the literals Infinity, -Infinity and NaN.
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		// Covers negative zero too.
		return "0"
	}

	abs := math.Abs(v)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(v, 'e', -1, 64)
		mantissa, exp, _ := strings.Cut(s, "e")
		sign := exp[:1]
		digits := strings.TrimLeft(exp[1:], "0")
		if digits == "" {
			digits = "0"
		}
		return mantissa + "e" + sign + digits
	}

	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Coerce converts s to a number the way `Number(s) || 0` does in a browser:
// surrounding whitespace is ignored, an empty string is zero, and anything
// that is not a plain decimal literal (or NaN) becomes zero.
func Coerce(s string) float64 {
	s = strings.TrimSpace(s)

	switch s {
	case "":
		return 0
	case "Infinity", "+Infinity":
		return math.Inf(1)
	case "-Infinity":
		return math.Inf(-1)
	}

	if !isDecimalLiteral(s) {
		return 0
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil && !math.IsInf(v, 0) {
		return 0
	}

	return v
}

// isDecimalLiteral accepts an optional sign, digits with at most one point,
// and an optional exponent. It rejects the extra spellings ParseFloat allows
// (hex floats, "inf", "nan", underscores).
func isDecimalLiteral(s string) bool {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}

	mantissa := 0
	for i < len(s) && isDigit(s[i]) {
		i++
		mantissa++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			mantissa++
		}
	}
	if mantissa == 0 {
		return false
	}

	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		exp := 0
		for i < len(s) && isDigit(s[i]) {
			i++
			exp++
		}
		if exp == 0 {
			return false
		}
	}

	return i == len(s)
}
