package predicate_test

import (
	"fmt"
	"github.com/icinga/icinga-predicates/internal/testutils"
	"github.com/icinga/icinga-predicates/pkg/predicate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"sync"
	"testing"
)

func TestEvaluator(t *testing.T) {
	t.Parallel()

	t.Run("LogsRejectedPredicates", func(t *testing.T) {
		t.Parallel()

		logger, logs := testutils.NewObservedLogger(zap.DebugLevel)
		e := predicate.NewEvaluator(logger)

		_, err := e.Evaluate("24.5 = 24", nil)
		require.ErrorIs(t, err, predicate.ErrMalformedPredicate)

		entries := logs.FilterMessage("Rejected malformed predicate").All()
		require.Len(t, entries, 1)
		assert.Equal(t, "24.5 = 24", entries[0].ContextMap()["query"])
		assert.Contains(t, entries[0].ContextMap()["reason"], "pos 2")
	})

	t.Run("LogsEvaluatedPredicates", func(t *testing.T) {
		t.Parallel()

		logger, logs := testutils.NewObservedLogger(zap.DebugLevel)
		e := predicate.NewEvaluator(logger)

		matched, err := e.Evaluate("val+bar+24>24", &predicate.Config{Variables: map[string]int64{"val": 24, "bar": 25}})
		require.NoError(t, err)
		assert.True(t, matched)

		entries := logs.FilterMessage("Evaluated predicate").All()
		require.Len(t, entries, 1)
		assert.Equal(t, "val + bar + 24 > 24", entries[0].ContextMap()["predicate"])
		assert.Equal(t, true, entries[0].ContextMap()["result"])
	})

	t.Run("NilLogger", func(t *testing.T) {
		t.Parallel()

		e := predicate.NewEvaluator(nil)
		matched, err := e.EvaluateOneSided("24 < 25", nil)
		require.NoError(t, err)
		assert.True(t, matched)
	})

	t.Run("IndependentConfigs", func(t *testing.T) {
		t.Parallel()

		e := predicate.NewEvaluator(testutils.NewTestLogger(t))

		matched, err := e.Evaluate("val = 24", &predicate.Config{Variables: map[string]int64{"val": 24}})
		require.NoError(t, err)
		assert.True(t, matched)

		matched, err = e.Evaluate("val = 24", &predicate.Config{Variables: map[string]int64{"val": 25}})
		require.NoError(t, err)
		assert.False(t, matched, "variable values must not carry over between calls")

		_, err = e.Evaluate("val = 24", &predicate.Config{NumberSuffix: "days", Variables: map[string]int64{"val": 24}})
		assert.ErrorIs(t, err, predicate.ErrMalformedPredicate)
	})
	t.Run("DistinctGrammarsWithSharedEvaluator", func(t *testing.T) {
		t.Parallel()

		e := predicate.NewEvaluator(testutils.NewTestLogger(t))

		// A suffix containing a NUL byte and a suffix plus a variable must never share a grammar.
		matched, err := e.Evaluate("1 a\x00b = 1 a\x00b", &predicate.Config{NumberSuffix: "a\x00b"})
		require.NoError(t, err)
		assert.True(t, matched)

		matched, err = e.Evaluate("b = 5 a", &predicate.Config{NumberSuffix: "a", Variables: map[string]int64{"b": 5}})
		require.NoError(t, err)
		assert.True(t, matched)

		_, err = e.Evaluate("b = 5 a", &predicate.Config{NumberSuffix: "a\x00b"})
		assert.ErrorIs(t, err, predicate.ErrMalformedPredicate)
	})

	t.Run("ConcurrentConfigs", func(t *testing.T) {
		t.Parallel()

		e := predicate.NewEvaluator(nil)

		var wg sync.WaitGroup
		errs := make([]error, 64)
		for i := range errs {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()

				c := &predicate.Config{Variables: map[string]int64{fmt.Sprintf("v%d", i%4): int64(i)}}
				if i%2 == 1 {
					c.NumberSuffix = "days"
				}

				query := fmt.Sprintf("v%d = %d", i%4, i)
				if c.NumberSuffix != "" {
					query += " days"
				}

				matched, err := e.Evaluate(query, c)
				if err == nil && !matched {
					err = fmt.Errorf("%q evaluated to false", query)
				}
				errs[i] = err
			}(i)
		}
		wg.Wait()

		for i, err := range errs {
			assert.NoError(t, err, "goroutine %d", i)
		}
	})
}
