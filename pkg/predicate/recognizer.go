package predicate

import (
	"errors"
	"fmt"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Recognizer tests strings against the predicate grammar derived from a Config.
//
// It only captures the shape of the Config, i.e. the variable names and the unit suffix, not the
// variable values. A Recognizer is immutable and safe for concurrent use.
type Recognizer struct {
	names  []string // names are ordered longest first, ties are broken lexically.
	suffix string
}

// NewRecognizer builds the Recognizer for the given Config. A nil Config behaves like an empty one,
// which yields a Recognizer for predicates made up of integer literals only.
func NewRecognizer(c *Config) *Recognizer {
	var suffix string
	if c != nil {
		suffix = c.NumberSuffix
	}

	return &Recognizer{names: sortedNames(c), suffix: suffix}
}

// Match reports whether the given query conforms to the grammar as a whole.
func (r *Recognizer) Match(query string) bool {
	_, err := r.Parse(query)
	return err == nil
}

// MatchOneSided is like Match but uses the restricted grammar of ParseOneSided.
func (r *Recognizer) MatchOneSided(query string) bool {
	_, err := r.ParseOneSided(query)
	return err == nil
}

// Parse parses the given query into a Predicate.
// Returns a *MalformedPredicateError if the query doesn't conform to the grammar.
func (r *Recognizer) Parse(query string) (*Predicate, error) {
	p := &parser{lex: &lexer{input: query, names: r.names, suffix: r.suffix}}
	predicate, err := p.parse()
	if err != nil {
		return nil, &MalformedPredicateError{Query: query, reason: err}
	}

	return predicate, nil
}

// ParseOneSided parses a predicate of the restricted form, where the right-hand side is a single term
// and only the comparators <, <=, > and >= are allowed.
func (r *Recognizer) ParseOneSided(query string) (*Predicate, error) {
	predicate, err := r.Parse(query)
	if err != nil {
		return nil, err
	}

	if predicate.Op == Equal {
		return nil, &MalformedPredicateError{Query: query, reason: fmt.Errorf("comparator %q is not supported", predicate.Op)}
	}

	if len(predicate.Right) != 1 {
		return nil, &MalformedPredicateError{Query: query, reason: errors.New("right-hand side must be a single term")}
	}

	return predicate, nil
}

// sortedNames returns the variable names of the given Config in the order the lexer tries them.
// Longer names go first, so that a name is never shadowed by one of its prefixes.
func sortedNames(c *Config) []string {
	if c == nil {
		return nil
	}

	names := maps.Keys(c.Variables)
	for i := 0; i < len(names); i++ {
		if names[i] == "" {
			names = append(names[:i], names[i+1:]...)
			break
		}
	}

	slices.SortFunc(names, func(a, b string) bool {
		if len(a) != len(b) {
			return len(a) > len(b)
		}

		return a < b
	})

	return names
}
