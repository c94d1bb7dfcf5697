package multicurvas

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ahrtr/gocontainer/set"
)

// lexer holds the state of one Tokenize call.
type lexer struct {
	src string
	// pos is the byte offset of the next rune in src.
	pos int
	// col is the 1-based rune column of pos.
	col int
	loc Locale
	out *TokenBuffer
	// cols holds the column of each emitted token, for error messages.
	cols []int
	// prev is the type of the last emitted token, or End if none.
	prev TokenType
	buf  strings.Builder
}

// Tokenize scans an expression into an infix token stream ending with End.
// Numeric literals use the decimal marker of loc. A unary minus or plus is
// rewritten as a binary operator applied to an inserted literal 0, so later
// stages only see binary operators.
//
// The result is checked to refer to at most one variable and to have balanced
// parentheses. It is not otherwise checked for structure; e.g. "2+" tokenizes
// successfully and fails only when evaluated.
//
// Errors are *ParseError values. On error, the result is nil.
func Tokenize(text string, loc Locale) (*TokenBuffer, error) {
	l := lexer{
		src:  text,
		col:  1,
		loc:  loc,
		out:  NewTokenBuffer(),
		prev: End,
	}
	if err := l.run(); err != nil {
		l.out.Release()
		return nil, err
	}
	return l.out, nil
}

func (l *lexer) run() error {
	mark := l.loc.Mark()
	for l.pos < len(l.src) {
		r, sz := utf8.DecodeRuneInString(l.src[l.pos:])
		switch {
		case unicode.IsSpace(r):
			l.advance(sz)
		case isDigit(r), r == mark && isDigit(l.peek(sz)):
			if err := l.scanNum(mark); err != nil {
				return err
			}
		case unicode.IsLetter(r):
			if err := l.scanKeyword(); err != nil {
				return err
			}
		default:
			if err := l.scanOp(r, sz); err != nil {
				return err
			}
		}
	}
	if err := l.emit(Token{Type: End}, l.col); err != nil {
		return err
	}
	if err := l.checkVariables(); err != nil {
		return err
	}
	return l.checkParens()
}

// advance moves past n bytes of input.
func (l *lexer) advance(n int) {
	l.col += utf8.RuneCountInString(l.src[l.pos : l.pos+n])
	l.pos += n
}

// peek returns the rune at byte offset off from pos, or utf8.RuneError at the
// end of input.
func (l *lexer) peek(off int) rune {
	if l.pos+off >= len(l.src) {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeRuneInString(l.src[l.pos+off:])
	return r
}

func (l *lexer) emit(tok Token, col int) error {
	if err := l.out.Append(tok); err != nil {
		return &ParseError{Kind: ErrMemory, Col: col}
	}
	l.cols = append(l.cols, col)
	l.prev = tok.Type
	return nil
}

// scanNum scans a run of digits with at most one decimal marker. The marker
// is normalized to a point before conversion.
func (l *lexer) scanNum(mark rune) error {
	defer l.buf.Reset()
	col := l.col
	start := l.pos
	dot := false
	for l.pos < len(l.src) {
		r, sz := utf8.DecodeRuneInString(l.src[l.pos:])
		switch {
		case isDigit(r):
			l.buf.WriteRune(r)
		case r == mark && !dot:
			l.buf.WriteByte('.')
			dot = true
		default:
			return l.number(col, start)
		}
		l.advance(sz)
	}
	return l.number(col, start)
}

func (l *lexer) number(col, start int) error {
	v, err := strconv.ParseFloat(l.buf.String(), 64)
	if err != nil {
		// The only possible failure is a literal too large for float64.
		return &ParseError{Kind: ErrSyntax, Col: col, Text: l.src[start:l.pos]}
	}
	k, err := l.out.addValue(v)
	if err != nil {
		return &ParseError{Kind: ErrMemory, Col: col}
	}
	return l.emit(Token{Type: Number, Index: k}, col)
}

// scanKeyword matches the keyword table at the current position. A name
// matches only if it is not followed by another letter or digit.
func (l *lexer) scanKeyword() error {
	rest := l.src[l.pos:]
	for i := range keywords {
		kw := &keywords[i]
		if !strings.HasPrefix(rest, kw.name) || isAlnum(l.peek(len(kw.name))) {
			continue
		}
		col := l.col
		l.advance(len(kw.name))
		return l.emit(Token{Type: kw.typ}, col)
	}
	n := 0
	for n < len(rest) {
		r, sz := utf8.DecodeRuneInString(rest[n:])
		if !isAlnum(r) {
			break
		}
		n += sz
	}
	return &ParseError{Kind: ErrUnknownFunction, Col: l.col, Text: rest[:n]}
}

func (l *lexer) scanOp(r rune, sz int) error {
	col := l.col
	switch r {
	case '+', '-':
		if l.prev == End || l.prev == LParen || IsOperator(l.prev) {
			// Unary: x -> 0-x.
			k, err := l.out.addValue(0)
			if err != nil {
				return &ParseError{Kind: ErrMemory, Col: col}
			}
			if err := l.emit(Token{Type: Number, Index: k}, col); err != nil {
				return err
			}
		}
		fallthrough
	case '*', '/', '^', '(', ')':
		l.advance(sz)
		return l.emit(Token{Type: TokenType(r)}, col)
	default:
		return &ParseError{Kind: ErrSyntax, Col: col, Text: string(r)}
	}
}

// checkVariables rejects streams that refer to more than one variable.
func (l *lexer) checkVariables() error {
	seen := set.New()
	for i, tok := range l.out.tokens {
		if !IsVariable(tok.Type) {
			continue
		}
		seen.Add(tok.Type)
		if seen.Size() > 1 {
			return &ParseError{Kind: ErrMixedVariables, Col: l.cols[i], Text: tok.Type.String()}
		}
	}
	return nil
}

// checkParens verifies that the parenthesis depth never goes negative and
// ends at zero.
func (l *lexer) checkParens() error {
	var open []int
	for i, tok := range l.out.tokens {
		switch tok.Type {
		case LParen:
			open = append(open, l.cols[i])
		case RParen:
			if len(open) == 0 {
				return &ParseError{Kind: ErrSyntax, Col: l.cols[i], Text: ")"}
			}
			open = open[:len(open)-1]
		}
	}
	if len(open) != 0 {
		return &ParseError{Kind: ErrSyntax, Col: open[len(open)-1], Text: "("}
	}
	return nil
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
