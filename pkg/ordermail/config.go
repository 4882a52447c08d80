package ordermail

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

// DefaultMaxInputBytes bounds a single email body. Larger inputs are truncated.
const DefaultMaxInputBytes = 2 << 20

// Config defines the options for a Pipeline.
type Config struct {
	// MaxInputBytes truncates longer inputs at a rune boundary. Zero disables the limit.
	MaxInputBytes int `json:"max_input_bytes" yaml:"max_input_bytes" mapstructure:"max_input_bytes" validate:"gte=0"`

	// StripHidden removes elements that never render (hidden attribute,
	// aria-hidden, display:none and similar) before tags are stripped.
	StripHidden bool `json:"strip_hidden" yaml:"strip_hidden" mapstructure:"strip_hidden"`

	// ExtraBoilerplate is a list of regular expressions removed from the
	// cleaned text in addition to the built-in boilerplate patterns.
	ExtraBoilerplate []string `json:"extra_boilerplate,omitempty" yaml:"extra_boilerplate,omitempty" mapstructure:"extra_boilerplate" validate:"dive,required"`

	// PatternFiles are YAML or JSON pattern packs loaded ahead of the
	// built-in extraction patterns. Later files take priority.
	PatternFiles []string `json:"pattern_files,omitempty" yaml:"pattern_files,omitempty" mapstructure:"pattern_files" validate:"dive,required"`
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() *Config {
	return &Config{
		MaxInputBytes: DefaultMaxInputBytes,
		StripHidden:   true,
	}
}

// Merge merges another config into this one.
// Non-zero values from other override this config; lists are appended without duplicates.
func (c *Config) Merge(other *Config) *Config {
	if other == nil {
		return c
	}

	merged := *c
	merged.ExtraBoilerplate = append([]string(nil), c.ExtraBoilerplate...)
	merged.PatternFiles = append([]string(nil), c.PatternFiles...)

	if other.MaxInputBytes > 0 {
		merged.MaxInputBytes = other.MaxInputBytes
	}
	if other.StripHidden {
		merged.StripHidden = true
	}
	merged.ExtraBoilerplate = appendUnique(merged.ExtraBoilerplate, other.ExtraBoilerplate)
	merged.PatternFiles = appendUnique(merged.PatternFiles, other.PatternFiles)

	return &merged
}

func appendUnique(dst, src []string) []string {
	seen := make(map[string]bool, len(dst))
	for _, s := range dst {
		seen[s] = true
	}
	for _, s := range src {
		if !seen[s] {
			dst = append(dst, s)
			seen[s] = true
		}
	}
	return dst
}

var configValidator = validator.New()

// Validate checks field constraints and that every boilerplate pattern compiles.
func (c *Config) Validate() error {
	if err := configValidator.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := c.boilerplate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func (c *Config) boilerplate() ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(c.ExtraBoilerplate))
	for _, expr := range c.ExtraBoilerplate {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("boilerplate pattern %q: %w", expr, err)
		}
		out = append(out, re)
	}
	return out, nil
}
