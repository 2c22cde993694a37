// Package calc evaluates the flat arithmetic expressions produced by a
// calculator keypad: decimal literals joined by the four binary operators,
// with optional unary signs and standard precedence. Evaluation never panics;
// failures are reported through [Result.Err] so callers can branch on them.
//
// The package also carries the string conventions the calculator display
// relies on: [FormatNumber] renders values the way a browser's String(number)
// does, and [Coerce] mirrors Number(s) with NaN collapsing to zero.
package calc
