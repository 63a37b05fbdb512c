package predicate

import (
	"errors"
	"fmt"
)

// parser is a recursive descent parser for the predicate grammar:
//
//	predicate := operand comparator operand
//	operand   := term ('+' term)*
//
// Whitespace between tokens is skipped by the lexer.
type parser struct {
	lex *lexer
	tok token
}

// parse reads the complete input and returns the resulting Predicate.
func (p *parser) parse() (*Predicate, error) {
	if p.lex.input != "" && isSpace(p.lex.input[0]) {
		return nil, errors.New("unexpected leading whitespace")
	}

	if err := p.advance(); err != nil {
		return nil, err
	}

	left, err := p.parseOperand()
	if err != nil {
		return nil, err
	}

	if p.tok.kind != tokenComparator {
		return nil, p.unexpected("comparator")
	}
	op := p.tok.op

	if err := p.advance(); err != nil {
		return nil, err
	}

	right, err := p.parseOperand()
	if err != nil {
		return nil, err
	}

	if p.tok.kind != tokenEOF {
		return nil, p.unexpected("'+' or EOF")
	}

	return &Predicate{Left: left, Op: op, Right: right}, nil
}

func (p *parser) parseOperand() (Operand, error) {
	var operand Operand
	for {
		if p.tok.kind != tokenTerm {
			return nil, p.unexpected("term")
		}

		operand = append(operand, p.tok.term)
		if err := p.advance(); err != nil {
			return nil, err
		}

		if p.tok.kind != tokenPlus {
			return operand, nil
		}

		if err := p.advance(); err != nil {
			return nil, err
		}
	}
}

func (p *parser) advance() error {
	tok, err := p.lex.next()
	if err != nil {
		return err
	}

	p.tok = tok
	return nil
}

func (p *parser) unexpected(want string) error {
	return fmt.Errorf("unexpected %s at pos %d, expected %s", p.tok.kind, p.tok.pos, want)
}
