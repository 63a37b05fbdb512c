package predicate

import (
	"errors"
	"go.uber.org/zap"
)

// Evaluator validates and evaluates predicate strings.
//
// Every call builds its own Recognizer from the given Config, so calls with different configurations never
// interfere. Rejected predicates are reported to the logger. An Evaluator is safe for concurrent use.
type Evaluator struct {
	logger *zap.SugaredLogger
}

// NewEvaluator creates a new Evaluator. A nil logger disables all diagnostics.
func NewEvaluator(logger *zap.SugaredLogger) *Evaluator {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	return &Evaluator{logger: logger}
}

// Evaluate checks the query against the grammar derived from c and evaluates it.
//
// Returns a *MalformedPredicateError if the query is rejected by the grammar, before any arithmetic is done.
func (e *Evaluator) Evaluate(query string, c *Config) (bool, error) {
	predicate, err := NewRecognizer(c).Parse(query)
	if err != nil {
		e.logRejected(err)
		return false, err
	}

	return e.eval(predicate, c)
}

// EvaluateOneSided is like Evaluate but only accepts the restricted one-sided grammar,
// see Recognizer.ParseOneSided.
func (e *Evaluator) EvaluateOneSided(query string, c *Config) (bool, error) {
	predicate, err := NewRecognizer(c).ParseOneSided(query)
	if err != nil {
		e.logRejected(err)
		return false, err
	}

	return e.eval(predicate, c)
}

func (e *Evaluator) eval(predicate *Predicate, c *Config) (bool, error) {
	result, err := predicate.Eval(c)
	if err != nil {
		return false, err
	}

	e.logger.Debugw("Evaluated predicate", zap.Stringer("predicate", predicate), zap.Bool("result", result))

	return result, nil
}

func (e *Evaluator) logRejected(err error) {
	var malformed *MalformedPredicateError
	if errors.As(err, &malformed) {
		e.logger.Debugw("Rejected malformed predicate", zap.String("query", malformed.Query), zap.NamedError("reason", malformed.Reason()))
	}
}

var defaultEvaluator = NewEvaluator(nil)

// Evaluate evaluates the given query using a shared Evaluator without diagnostics.
func Evaluate(query string, c *Config) (bool, error) {
	return defaultEvaluator.Evaluate(query, c)
}

// EvaluateOneSided evaluates a one-sided query using a shared Evaluator without diagnostics.
func EvaluateOneSided(query string, c *Config) (bool, error) {
	return defaultEvaluator.EvaluateOneSided(query, c)
}
