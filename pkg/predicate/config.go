package predicate

import (
	"fmt"
	"math"
	"strings"
)

// NumberSuffixKey is the reserved key of an options map that holds the unit suffix instead of a variable.
const NumberSuffixKey = "numberSuffix"

// Config is the caller supplied context a predicate is recognized and evaluated with.
//
// It is only read, never retained: every evaluation takes its own Config.
type Config struct {
	// Variables maps the names that may be referenced in a predicate to their values.
	Variables map[string]int64 `yaml:"variables"`
	// NumberSuffix is the unit every integer literal has to carry, e.g. "days". Empty means none.
	NumberSuffix string `yaml:"number-suffix"`
}

// NewConfigFromMap creates a Config from a loosely typed options map.
//
// The NumberSuffixKey entry must be a string and configures the unit suffix, every other entry is
// a variable and must hold an integral number.
func NewConfigFromMap(options map[string]any) (*Config, error) {
	c := &Config{Variables: make(map[string]int64, len(options))}
	for key, value := range options {
		if key == NumberSuffixKey {
			suffix, ok := value.(string)
			if !ok {
				return nil, fmt.Errorf("option %q must be a string, got %T", key, value)
			}

			c.NumberSuffix = suffix
			continue
		}

		n, err := toInt64(value)
		if err != nil {
			return nil, fmt.Errorf("option %q: %w", key, err)
		}

		c.Variables[key] = n
	}

	return c, nil
}

// Lookup returns the value of the given variable and whether it is configured at all.
// A variable configured with the value 0 is found like any other.
func (c *Config) Lookup(name string) (int64, bool) {
	if c == nil {
		return 0, false
	}

	v, ok := c.Variables[name]
	return v, ok
}

// Validate checks that neither the variable names nor the suffix can be confused with the rest of the grammar.
func (c *Config) Validate() error {
	if c.NumberSuffix != "" && strings.TrimSpace(c.NumberSuffix) != c.NumberSuffix {
		return fmt.Errorf("number suffix %q must not start or end with whitespace", c.NumberSuffix)
	}
	if strings.ContainsAny(c.NumberSuffix, "+<>=") {
		return fmt.Errorf("number suffix %q must not contain an operator", c.NumberSuffix)
	}

	for name := range c.Variables {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("variable name %q must not be empty", name)
		}
		if strings.ContainsAny(name, "+<>=") {
			return fmt.Errorf("variable name %q must not contain an operator", name)
		}
	}

	return nil
}

func toInt64(value any) (int64, error) {
	switch v := value.(type) {
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case uint8:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint:
		if uint64(v) > math.MaxInt64 {
			return 0, ErrArithmeticOverflow
		}
		return int64(v), nil
	case uint64:
		if v > math.MaxInt64 {
			return 0, ErrArithmeticOverflow
		}
		return int64(v), nil
	case float64:
		// Numbers decoded from JSON or YAML documents end up here.
		if v != math.Trunc(v) || v < math.MinInt64 || v >= math.MaxInt64 {
			return 0, fmt.Errorf("%v is not an integer", v)
		}
		return int64(v), nil
	default:
		return 0, fmt.Errorf("unsupported value type %T", value)
	}
}
