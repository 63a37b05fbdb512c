package daemon

import (
	"bytes"
	"errors"
	"fmt"
	"github.com/creasty/defaults"
	"github.com/goccy/go-yaml"
	"github.com/icinga/icinga-predicates/pkg/predicate"
	icingadbConfig "github.com/icinga/icingadb/pkg/config"
	"github.com/icinga/icingadb/pkg/logging"
	goflags "github.com/jessevdk/go-flags"
	"io"
	"os"
	"strings"
)

const (
	ExitSuccess = 0
	ExitFailure = 1
)

// EnvPrefix is the prefix of all environment variables that override the YAML configuration.
const EnvPrefix = "ICINGA_PREDICATE"

type ConfigFile struct {
	Variables    map[string]int64       `yaml:"variables"`
	NumberSuffix string                 `yaml:"number-suffix"`
	OneSided     bool                   `yaml:"one-sided"`
	Logging      icingadbConfig.Logging `yaml:"logging"`
}

// SetDefaults implements the defaults.Setter interface.
func (c *ConfigFile) SetDefaults() {
	if defaults.CanUpdate(c.Variables) {
		c.Variables = make(map[string]int64)
	}
	if defaults.CanUpdate(c.Logging.Output) {
		c.Logging.Output = logging.CONSOLE
	}
}

// Validate checks the entire configuration before any predicate gets evaluated.
func (c *ConfigFile) Validate() error {
	if err := c.PredicateConfig().Validate(); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return err
	}

	return nil
}

// PredicateConfig returns the predicate.Config described by this configuration.
func (c *ConfigFile) PredicateConfig() *predicate.Config {
	return &predicate.Config{Variables: c.Variables, NumberSuffix: c.NumberSuffix}
}

// Assert interface compliance.
var _ defaults.Setter = (*ConfigFile)(nil)

// Flags defines the CLI flags supported by icinga-predicate.
type Flags struct {
	// Version decides whether to just print the version and exit.
	Version bool `long:"version" description:"print version and exit"`
	// Config is the path to the config file
	Config string `short:"c" long:"config" description:"path to config file"`
	// OneSided restricts the grammar to a single right-hand term and the comparators <, <=, > and >=.
	OneSided bool `long:"one-sided" description:"only accept one-sided predicates"`
}

// ParseFlags parses the given command line arguments into Flags and returns the remaining positional arguments.
//
// If the help flag is given, the returned error wraps a *goflags.Error of type goflags.ErrHelp holding the usage.
func ParseFlags(args []string) (*Flags, []string, error) {
	f := new(Flags)
	parser := goflags.NewParser(f, goflags.Default^goflags.PrintErrors)
	parser.Usage = "[OPTIONS] PREDICATE..."

	rest, err := parser.ParseArgs(args)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot parse CLI flags: %w", err)
	}

	return f, rest, nil
}

// IsHelp reports whether err was caused by the help flag.
func IsHelp(err error) bool {
	var flagErr *goflags.Error
	return errors.As(err, &flagErr) && flagErr.Type == goflags.ErrHelp
}

// LoadConfig loads the configuration from the YAML file at path, overridden by the given environment.
// An empty path skips the file and only applies defaults and the environment.
func LoadConfig(path string, environ []string) (*ConfigFile, error) {
	if path == "" {
		return loadConfig(strings.NewReader(""), environ)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return loadConfig(f, environ)
}

func loadConfig(r io.Reader, environ []string) (*ConfigFile, error) {
	doc := make(map[string]any)
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("cannot parse YAML config: %w", err)
	}
	if doc == nil {
		doc = make(map[string]any)
	}

	mergeEnvironment(doc, EnvPrefix, environ)

	cfg := new(ConfigFile)
	if err := defaults.Set(cfg); err != nil {
		return nil, fmt.Errorf("cannot set config defaults: %w", err)
	}
	if err := decodeStrict(doc, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// PopulateFromYamlEnvironment decodes all environment variables starting with prefix into target.
//
// A variable's name is split at "_" after the prefix, each part names a YAML key one level deeper,
// e.g. PREFIX_LOGGING_LEVEL=debug sets the "level" key within "logging". Keys are lower-cased.
// Values are parsed as YAML scalars. Unknown keys result in an error.
//
// Consequently, map keys containing upper-case letters or "_" can't be set this way. This applies to
// predicate variables as well: PREFIX_VARIABLES_MAX_AGE=1 sets "age" within "max" within "variables",
// not the variable "max_age", and PREFIX_VARIABLES_Uptime=1 sets "uptime". Use the YAML file for such names.
func PopulateFromYamlEnvironment(prefix string, target any, environ []string) error {
	doc := make(map[string]any)
	mergeEnvironment(doc, prefix, environ)

	return decodeStrict(doc, target)
}

// mergeEnvironment sets every key described by the environment variables with the given prefix in doc,
// replacing any value from the file.
func mergeEnvironment(doc map[string]any, prefix string, environ []string) {
	prefix += "_"
	for _, env := range environ {
		key, value, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(key, prefix) || len(key) == len(prefix) {
			continue
		}

		path := strings.Split(strings.ToLower(strings.TrimPrefix(key, prefix)), "_")
		node := doc
		for _, part := range path[:len(path)-1] {
			child, ok := node[part].(map[string]any)
			if !ok {
				child = make(map[string]any)
				node[part] = child
			}

			node = child
		}

		var scalar any
		if err := yaml.Unmarshal([]byte(value), &scalar); err != nil || scalar == nil {
			scalar = value
		}
		node[path[len(path)-1]] = scalar
	}
}

func decodeStrict(doc map[string]any, target any) error {
	raw, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("cannot encode config: %w", err)
	}

	if err := yaml.NewDecoder(bytes.NewReader(raw), yaml.DisallowUnknownField()).Decode(target); err != nil {
		return fmt.Errorf("cannot decode config: %w", err)
	}

	return nil
}
