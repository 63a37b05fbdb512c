package main

import (
	"bytes"
	"github.com/icinga/icinga-predicates/internal/daemon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
)

func TestRun(t *testing.T) {
	t.Parallel()

	t.Run("EvaluatesAllPredicates", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte("variables:\n  val: 24\n  bar: 25\n"), 0o600))

		var stdout, stderr bytes.Buffer
		code := run([]string{"-c", path, "val + bar + 24 > 24", "50 + bar < val + 27"}, nil, &stdout, &stderr)

		assert.Equal(t, daemon.ExitSuccess, code, "stderr: %s", stderr.String())
		assert.Equal(t, "val + bar + 24 > 24: true\n50 + bar < val + 27: false\n", stdout.String())
	})

	t.Run("EnvironmentConfig", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		environ := []string{"ICINGA_PREDICATE_NUMBER-SUFFIX=days", "ICINGA_PREDICATE_VARIABLES_DURATION=24"}
		code := run([]string{"duration = 24 days"}, environ, &stdout, &stderr)

		assert.Equal(t, daemon.ExitSuccess, code, "stderr: %s", stderr.String())
		assert.Equal(t, "duration = 24 days: true\n", stdout.String())
	})

	t.Run("MalformedPredicate", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		code := run([]string{"24.5 = 24", "24 = 24"}, nil, &stdout, &stderr)

		assert.Equal(t, daemon.ExitFailure, code)
		assert.Equal(t, "24 = 24: true\n", stdout.String())
		assert.Equal(t, "cannot evaluate predicate: malformed predicate \"24.5 = 24\"\n", stderr.String())
	})

	t.Run("OneSided", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		code := run([]string{"--one-sided", "24 = 24"}, nil, &stdout, &stderr)

		assert.Equal(t, daemon.ExitFailure, code)
		assert.Empty(t, stdout.String())
	})

	t.Run("NoPredicates", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		assert.Equal(t, daemon.ExitFailure, run(nil, nil, &stdout, &stderr))
		assert.Equal(t, "no predicates given\n", stderr.String())
	})

	t.Run("InvalidConfig", func(t *testing.T) {
		t.Parallel()

		var stdout, stderr bytes.Buffer
		code := run([]string{"24 = 24"}, []string{"ICINGA_PREDICATE_LOGGING_OUTPUT=syslog"}, &stdout, &stderr)

		assert.Equal(t, daemon.ExitFailure, code)
		assert.Contains(t, stderr.String(), "cannot load config")
	})
}
