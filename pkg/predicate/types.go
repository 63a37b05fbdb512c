package predicate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// CompOperator is a type used for grouping the individual comparison operators of a predicate.
type CompOperator string

// List of the supported comparison operators.
const (
	Equal            CompOperator = "="
	LessThan         CompOperator = "<"
	LessThanEqual    CompOperator = "<="
	GreaterThan      CompOperator = ">"
	GreaterThanEqual CompOperator = ">="
)

// compOperators lists the comparators in the order the lexer tries them.
// Two-character operators come first, so that "<=" is never read as "<" followed by "=".
var compOperators = []CompOperator{LessThanEqual, GreaterThanEqual, LessThan, GreaterThan, Equal}

// Term is a single summand of an Operand.
type Term struct {
	// Text is either the variable name or the run of decimal digits of an integer literal.
	Text string
	// Variable is true when Text refers to a configured variable.
	Variable bool
	// Suffixed is true when the term was followed by the configured unit suffix.
	Suffixed bool
}

// Resolve returns the integer value of this Term.
//
// Configured variables are authoritative, even if their value is 0. Any other term is parsed as a
// base-10 integer.
func (t Term) Resolve(c *Config) (int64, error) {
	if v, ok := c.Lookup(t.Text); ok {
		return v, nil
	}

	if t.Variable {
		return 0, fmt.Errorf("%w: variable %q is not configured", ErrUnresolvedTerm, t.Text)
	}

	n, err := strconv.ParseInt(t.Text, 10, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, &ArithmeticOverflowError{Operand: t.Text}
		}

		return 0, fmt.Errorf("%w: cannot parse %q", ErrUnresolvedTerm, t.Text)
	}

	return n, nil
}

func (t Term) String() string {
	return t.Text
}

// Operand is a non-empty sum of terms.
type Operand []Term

// Sum resolves all terms and adds them up.
// Returns an ArithmeticOverflowError if the sum doesn't fit into an int64.
func (o Operand) Sum(c *Config) (int64, error) {
	var sum int64
	for _, term := range o {
		v, err := term.Resolve(c)
		if err != nil {
			return 0, err
		}

		next := sum + v
		if (v > 0 && next < sum) || (v < 0 && next > sum) {
			return 0, &ArithmeticOverflowError{Operand: o.String()}
		}

		sum = next
	}

	return sum, nil
}

func (o Operand) String() string {
	terms := make([]string, 0, len(o))
	for _, term := range o {
		terms = append(terms, term.String())
	}

	return strings.Join(terms, " + ")
}

// Predicate is a successfully parsed comparison of two operands.
// It can only be obtained from a Recognizer and is never partially valid.
type Predicate struct {
	Left  Operand
	Op    CompOperator
	Right Operand
}

// Eval resolves both operands against the given Config and compares them.
func (p *Predicate) Eval(c *Config) (bool, error) {
	left, err := p.Left.Sum(c)
	if err != nil {
		return false, err
	}

	right, err := p.Right.Sum(c)
	if err != nil {
		return false, err
	}

	switch p.Op {
	case Equal:
		return left == right, nil
	case LessThan:
		return left < right, nil
	case LessThanEqual:
		return left <= right, nil
	case GreaterThan:
		return left > right, nil
	case GreaterThanEqual:
		return left >= right, nil
	default:
		return false, &UnknownComparatorError{Op: p.Op}
	}
}

func (p *Predicate) String() string {
	return fmt.Sprintf("%s %s %s", p.Left, p.Op, p.Right)
}
