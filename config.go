package rgrep

import "fmt"

// Config controls compilation and matching behaviour.
//
// The zero value is not valid; start from DefaultConfig.
//
// Example:
//
//	config := rgrep.DefaultConfig()
//	config.NestedGroups = true // allow ((a)b) and (a|b|c)
//	re, err := rgrep.CompileWithConfig(`((\d+)-)+x`, config)
type Config struct {
	// EnablePrefilter enables literal-based line rejection before matching.
	// Patterns with backreferences never get a prefilter.
	// Default: true
	EnablePrefilter bool

	// NestedGroups enables depth-aware group parsing, any number of
	// alternation branches, top-level alternation and per-group capture
	// slots.
	// Default: false (first ')' closes a group)
	NestedGroups bool

	// BacktrackQuantifiers retries quantifier repetition counts when the
	// rest of the enclosing sequence fails.
	// Default: false (greedy count is final)
	BacktrackQuantifiers bool

	// MaxRecursionDepth limits group nesting during compilation.
	// Default: 100
	MaxRecursionDepth int
}

// DefaultConfig returns the configuration that reproduces the classic
// engine behaviour, with prefiltering enabled.
func DefaultConfig() Config {
	return Config{
		EnablePrefilter:      true,
		NestedGroups:         false,
		BacktrackQuantifiers: false,
		MaxRecursionDepth:    100,
	}
}

// Validate checks if the configuration is valid.
//
// Valid ranges:
//   - MaxRecursionDepth: 1 to 1,000
func (c Config) Validate() error {
	if c.MaxRecursionDepth < 1 || c.MaxRecursionDepth > 1000 {
		return &ConfigError{
			Field:   "MaxRecursionDepth",
			Message: "must be between 1 and 1,000",
		}
	}
	return nil
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("rgrep: invalid config: %s %s", e.Field, e.Message)
}
