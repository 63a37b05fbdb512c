package predicate

import (
	"fmt"
	"strings"
)

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenTerm
	tokenPlus
	tokenComparator
)

func (k tokenKind) String() string {
	switch k {
	case tokenEOF:
		return "EOF"
	case tokenTerm:
		return "term"
	case tokenPlus:
		return "'+'"
	case tokenComparator:
		return "comparator"
	default:
		return "unknown"
	}
}

// token is a single lexical unit of a predicate string.
type token struct {
	kind tokenKind
	pos  int          // pos is the byte offset of the token within the input.
	term Term         // term is only set for tokenTerm.
	op   CompOperator // op is only set for tokenComparator.
}

// lexer splits a predicate string into tokens.
//
// Unlike a general purpose scanner, it knows the configured variable names and the unit suffix, since
// whether "24" is a literal or a variable, and whether a literal is complete, depends on them.
type lexer struct {
	input  string
	pos    int
	names  []string // names must be ordered longest first.
	suffix string
}

// next skips any whitespace and returns the following token.
func (l *lexer) next() (token, error) {
	l.skipSpaces()

	start := l.pos
	if l.pos >= len(l.input) {
		return token{kind: tokenEOF, pos: start}, nil
	}

	if l.input[l.pos] == '+' {
		l.pos++
		return token{kind: tokenPlus, pos: start}, nil
	}

	for _, op := range compOperators {
		if strings.HasPrefix(l.input[l.pos:], string(op)) {
			l.pos += len(op)
			return token{kind: tokenComparator, pos: start, op: op}, nil
		}
	}

	return l.readTerm()
}

// readTerm reads a variable name or an integer literal, including its unit suffix.
// Configured names take precedence over integer literals.
func (l *lexer) readTerm() (token, error) {
	start := l.pos
	rest := l.input[l.pos:]

	for _, name := range l.names {
		if strings.HasPrefix(rest, name) && l.atBoundary(start+len(name), true) {
			l.pos += len(name)

			return token{kind: tokenTerm, pos: start, term: Term{Text: name, Variable: true, Suffixed: l.readSuffix()}}, nil
		}
	}

	end := l.pos
	for end < len(l.input) && isDigit(l.input[end]) {
		end++
	}

	if end == l.pos {
		return token{}, l.errorf(start, "unexpected %q", rest[:1])
	}

	l.pos = end
	term := Term{Text: l.input[start:end], Suffixed: l.readSuffix()}
	if l.suffix != "" && !term.Suffixed {
		return token{}, l.errorf(start, "integer %s is missing the suffix %q", term.Text, l.suffix)
	}

	return token{kind: tokenTerm, pos: start, term: term}, nil
}

// readSuffix consumes the unit suffix and any whitespace in front of it.
// Returns false and leaves the position untouched if the suffix doesn't follow.
func (l *lexer) readSuffix() bool {
	if l.suffix == "" {
		return false
	}

	pos := l.pos
	for pos < len(l.input) && isSpace(l.input[pos]) {
		pos++
	}

	if strings.HasPrefix(l.input[pos:], l.suffix) && l.atBoundary(pos+len(l.suffix), false) {
		l.pos = pos + len(l.suffix)
		return true
	}

	return false
}

// atBoundary reports whether a term may end right before pos.
func (l *lexer) atBoundary(pos int, allowSuffix bool) bool {
	if pos >= len(l.input) {
		return true
	}

	switch ch := l.input[pos]; {
	case isSpace(ch), strings.IndexByte("+<>=", ch) >= 0:
		return true
	default:
		return allowSuffix && l.suffix != "" && strings.HasPrefix(l.input[pos:], l.suffix)
	}
}

func (l *lexer) skipSpaces() {
	for l.pos < len(l.input) && isSpace(l.input[l.pos]) {
		l.pos++
	}
}

func (l *lexer) errorf(pos int, format string, args ...any) error {
	return fmt.Errorf("%s at pos %d", fmt.Sprintf(format, args...), pos)
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isSpace(ch byte) bool {
	switch ch {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	default:
		return false
	}
}
