package extractor

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/ordermail/pkg/platform"
)

var (
	// ErrUnknownField is returned for a field name outside the record schema.
	ErrUnknownField = errors.New("unknown field")
	// ErrInvalidPattern is returned when a pattern does not compile or names a missing group.
	ErrInvalidPattern = errors.New("invalid pattern")
	// ErrUnknownPlatform is returned when a pattern file names a platform that does not exist.
	ErrUnknownPlatform = errors.New("unknown platform")
)

// patternSpec is the on-disk form of a Pattern.
type patternSpec struct {
	Field       string `json:"field" yaml:"field" validate:"required"`
	Pattern     string `json:"pattern" yaml:"pattern" validate:"required"`
	Group       int    `json:"group" yaml:"group" validate:"gte=0"`
	Specificity int    `json:"specificity" yaml:"specificity" validate:"gte=0,lte=100"`
}

// patternFile maps platform tags to pattern specs, e.g.
//
//	flipkart:
//	  - field: order_id
//	    pattern: '\b(OD\d{15,21})\b'
//	    group: 1
//	    specificity: 100
type patternFile map[string][]patternSpec

var specValidator = validator.New()

// LoadPatternSets reads a JSON or YAML pattern file.
// The returned pack is meant to be passed to New, which puts it ahead of the built-in patterns.
func LoadPatternSets(path string) (PatternPack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pattern file: %w", err)
	}
	pack, err := ParsePatternSets(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return pack, nil
}

// ParsePatternSets decodes pattern data in the given format ("json", "yaml" or "yml",
// with or without a leading dot).
func ParsePatternSets(data []byte, format string) (PatternPack, error) {
	var file patternFile
	switch strings.TrimPrefix(strings.ToLower(format), ".") {
	case "json":
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse JSON patterns: %w", err)
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse YAML patterns: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported pattern file format: %q", format)
	}

	pack := make(PatternPack, len(file))
	for tag, specs := range file {
		p := platform.Platform(strings.ToLower(strings.TrimSpace(tag)))
		if !p.Known() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPlatform, tag)
		}
		set := pack[p]
		if set == nil {
			set = PatternSet{}
			pack[p] = set
		}
		for i, spec := range specs {
			pat, err := spec.compile()
			if err != nil {
				return nil, fmt.Errorf("%s[%d]: %w", p, i, err)
			}
			set[pat.Field] = append(set[pat.Field], pat)
		}
	}
	return pack, nil
}

func (s patternSpec) compile() (Pattern, error) {
	if err := specValidator.Struct(s); err != nil {
		return Pattern{}, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}
	field, err := ParseField(s.Field)
	if err != nil {
		return Pattern{}, err
	}
	return NewPattern(field, s.Pattern, s.Group, s.Specificity)
}
