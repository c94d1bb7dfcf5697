package multicurvas

import "strconv"

// ParserError is a kind of error produced while tokenizing or compiling.
// Errors returned by Tokenize and ToRPN are *ParseError values that unwrap to
// one of these, so they can be checked with errors.Is.
type ParserError int

const (
	// ErrUnknownFunction is a name that is not in the keyword table.
	ErrUnknownFunction ParserError = iota + 1
	// ErrUnknownVariable is reserved. Every accepted name is a keyword, so
	// unknown names are always reported as ErrUnknownFunction.
	ErrUnknownVariable
	// ErrMixedVariables is an expression referring to more than one variable.
	ErrMixedVariables
	// ErrSyntax is an unrecognized character, an unbalanced parenthesis, or
	// an invalid number.
	ErrSyntax
	// ErrMemory is a token buffer grown beyond its limits.
	ErrMemory
)

func (e ParserError) Error() string {
	switch e {
	case ErrUnknownFunction:
		return "unknown function"
	case ErrUnknownVariable:
		return "unknown variable"
	case ErrMixedVariables:
		return "mixed variables"
	case ErrSyntax:
		return "syntax error"
	case ErrMemory:
		return "token buffer limit exceeded"
	default:
		return "parser error " + strconv.Itoa(int(e))
	}
}

// EvalError is a kind of error produced while evaluating a compiled
// expression.
type EvalError int

const (
	// ErrDivisionByZero is a division with a zero divisor.
	ErrDivisionByZero EvalError = iota + 1
	// ErrDomain is a function argument outside the function's domain, or a
	// power that is not a real number. Such errors are *DomainError values
	// unwrapping to ErrDomain.
	ErrDomain
	// ErrMath is any other infinite or NaN result.
	ErrMath
	// ErrStack is a malformed token stream: too few operands, too many
	// values left, or an overflowing stack.
	ErrStack
)

func (e EvalError) Error() string {
	switch e {
	case ErrDivisionByZero:
		return "division by zero"
	case ErrDomain:
		return "argument outside domain"
	case ErrMath:
		return "result is not finite"
	case ErrStack:
		return "malformed expression"
	default:
		return "evaluation error " + strconv.Itoa(int(e))
	}
}

// ParseError is an error from tokenizing or compiling. It implements
// InputError.
type ParseError struct {
	// Kind is the kind of error.
	Kind ParserError
	// Col is the 1-based rune column of the token that caused the error, or 0
	// if the error is not tied to a position.
	Col int
	// Text is the offending input, if any.
	Text string
}

func (err *ParseError) Error() string {
	msg := err.Kind.Error()
	if err.Text != "" {
		msg += " " + strconv.Quote(err.Text)
	}
	if err.Col > 0 {
		return errpos(err.Col, msg)
	}
	return msg
}

func (err *ParseError) Pos() int {
	return err.Col
}

func (err *ParseError) Unwrap() error {
	return err.Kind
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Errors from tokenizing
// that can be attributed to a place in the input implement InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var _ InputError = (*ParseError)(nil)
