// Package multicurvas compiles and evaluates scalar expressions of a single
// variable, such as "sin(x)*2 + x" or "2*e^(-t/2)".
//
// An expression goes through three stages. Tokenize turns text into an infix
// token stream, with numeric literals kept in a separate pool. ToRPN reorders
// the stream into postfix (reverse Polish) order. EvalRPN runs the postfix
// stream on a small stack machine for one value of the variable. The first
// two stages run once per expression; the last is cheap enough to run once
// per sample of a plot.
//
// The variable may be any one of x, theta, or t, but an expression may not
// mix them. The constants are pi and e, and the functions are sin, cos, tan,
// abs, sqrt, exp, log (natural), log10, sinh, cosh, tanh, asin, acos, atan,
// asinh, acosh, atanh, ceil, floor, and frac. Operators are + - * / and ^, the
// latter right-associative. Functions apply to the parenthesized group that
// follows them.
//
// Decimal literals use either a point or a comma as the decimal marker,
// chosen per call by a Locale.
//
// Errors are values. Tokenizing and compiling report ParserError kinds, and
// evaluation reports EvalError kinds, so a plot can mark one sample as failed
// and carry on.
package multicurvas
