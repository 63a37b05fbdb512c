package predicate

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedPredicate is returned when a query does not conform to the grammar derived from its Config.
	ErrMalformedPredicate = errors.New("malformed predicate")

	// ErrUnknownComparator signals a comparator that made it past the grammar but cannot be evaluated.
	// It indicates a mismatch between the parser and the evaluator, never a user input error.
	ErrUnknownComparator = errors.New("unknown comparator")

	// ErrArithmeticOverflow is returned when a literal or a sum cannot be represented as int64.
	ErrArithmeticOverflow = errors.New("arithmetic overflow")

	// ErrUnresolvedTerm is returned by Predicate.Eval when a variable term is evaluated against a
	// Config that doesn't know it. Evaluate can't produce it, since the grammar already rejects such terms.
	ErrUnresolvedTerm = errors.New("unresolved term")
)

// MalformedPredicateError is returned whenever a query is rejected by a Recognizer.
//
// Its message only names the rejected query. The reason for the rejection is kept around
// for diagnostics and is available through Reason.
type MalformedPredicateError struct {
	Query  string
	reason error
}

func (e *MalformedPredicateError) Error() string {
	return fmt.Sprintf("%s %q", ErrMalformedPredicate, e.Query)
}

func (e *MalformedPredicateError) Unwrap() error { return ErrMalformedPredicate }

// Reason returns the tokenizer or parser error that caused the query to be rejected.
func (e *MalformedPredicateError) Reason() error { return e.reason }

// UnknownComparatorError reports a comparator that Predicate.Eval doesn't know how to apply.
type UnknownComparatorError struct {
	Op CompOperator
}

func (e *UnknownComparatorError) Error() string {
	return fmt.Sprintf("%s %q", ErrUnknownComparator, string(e.Op))
}

func (e *UnknownComparatorError) Unwrap() error { return ErrUnknownComparator }

// ArithmeticOverflowError reports the operand whose value left the int64 range.
type ArithmeticOverflowError struct {
	Operand string
}

func (e *ArithmeticOverflowError) Error() string {
	return fmt.Sprintf("%s in %q", ErrArithmeticOverflow, e.Operand)
}

func (e *ArithmeticOverflowError) Unwrap() error { return ErrArithmeticOverflow }

// Assert interface compliance.
var (
	_ error = (*MalformedPredicateError)(nil)
	_ error = (*UnknownComparatorError)(nil)
	_ error = (*ArithmeticOverflowError)(nil)
)
