package main

import (
	"fmt"
	"github.com/icinga/icinga-predicates/internal"
	"github.com/icinga/icinga-predicates/internal/daemon"
	"github.com/icinga/icinga-predicates/pkg/predicate"
	"github.com/icinga/icingadb/pkg/logging"
	"go.uber.org/zap"
	"io"
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Environ(), os.Stdout, os.Stderr))
}

// run evaluates every positional argument as a predicate and writes one result line per predicate to stdout.
// Returns daemon.ExitFailure if the flags, the config or any predicate is invalid.
func run(args, environ []string, stdout, stderr io.Writer) int {
	flags, predicates, err := daemon.ParseFlags(args)
	if err != nil {
		if daemon.IsHelp(err) {
			_, _ = fmt.Fprintln(stdout, err)
			return daemon.ExitSuccess
		}

		_, _ = fmt.Fprintln(stderr, err)
		return daemon.ExitFailure
	}

	if flags.Version {
		internal.Version.Print("Icinga Predicate")
		return daemon.ExitSuccess
	}

	conf, err := daemon.LoadConfig(flags.Config, environ)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "cannot load config:", err)
		return daemon.ExitFailure
	}

	logs, err := logging.NewLogging(
		"icinga-predicate",
		conf.Logging.Level,
		conf.Logging.Output,
		conf.Logging.Options,
		conf.Logging.Interval,
	)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "cannot initialize logging:", err)
		return daemon.ExitFailure
	}

	logger := logs.GetLogger()
	defer func() { _ = logger.Sync() }()

	if len(predicates) == 0 {
		_, _ = fmt.Fprintln(stderr, "no predicates given")
		return daemon.ExitFailure
	}

	oneSided := flags.OneSided || conf.OneSided
	logger.Debugw("Evaluating predicates", zap.Int("count", len(predicates)), zap.Bool("one-sided", oneSided))

	evaluator := predicate.NewEvaluator(logs.GetChildLogger("predicate").SugaredLogger)
	evaluate := evaluator.Evaluate
	if oneSided {
		evaluate = evaluator.EvaluateOneSided
	}

	c := conf.PredicateConfig()
	exitCode := daemon.ExitSuccess
	for _, query := range predicates {
		result, err := evaluate(query, c)
		if err != nil {
			_, _ = fmt.Fprintf(stderr, "cannot evaluate predicate: %v\n", err)
			exitCode = daemon.ExitFailure
			continue
		}

		_, _ = fmt.Fprintf(stdout, "%s: %t\n", query, result)
	}

	return exitCode
}
