package cleaner

import (
	"strings"
)

// ChainCleaner applies multiple cleaners in sequence.
// The email pipeline is a chain: encoding, tags, whitespace, entities, garbage.
type ChainCleaner struct {
	cleaners []Cleaner
}

// NewChain creates a new cleaner that applies multiple cleaners in sequence.
// Cleaners are applied in the order provided.
//
// Example:
//
//	chain := cleaner.NewChain(
//	    cleaner.NewEncoding(),
//	    cleaner.NewTags(),
//	    cleaner.NewWhitespace(),
//	)
func NewChain(cleaners ...Cleaner) *ChainCleaner {
	return &ChainCleaner{
		cleaners: cleaners,
	}
}

// Clean applies all cleaners in sequence.
func (c *ChainCleaner) Clean(content string) (string, error) {
	var err error
	for _, cleaner := range c.cleaners {
		content, err = cleaner.Clean(content)
		if err != nil {
			return "", err
		}
	}
	return content, nil
}

// StageOutput is the text produced by one stage of a chain.
type StageOutput struct {
	Stage  string
	Output string
}

// Trace applies all cleaners in sequence and records each stage's output.
// On error the stages completed so far are returned along with the error.
func (c *ChainCleaner) Trace(content string) ([]StageOutput, error) {
	trace := make([]StageOutput, 0, len(c.cleaners))
	var err error
	for _, cleaner := range c.cleaners {
		content, err = cleaner.Clean(content)
		if err != nil {
			return trace, err
		}
		trace = append(trace, StageOutput{Stage: cleaner.Name(), Output: content})
	}
	return trace, nil
}

// Stages returns the chained cleaners in application order.
func (c *ChainCleaner) Stages() []Cleaner {
	out := make([]Cleaner, len(c.cleaners))
	copy(out, c.cleaners)
	return out
}

// Name returns the names of all chained cleaners.
func (c *ChainCleaner) Name() string {
	names := make([]string, len(c.cleaners))
	for i, cleaner := range c.cleaners {
		names[i] = cleaner.Name()
	}
	return "chain(" + strings.Join(names, "->") + ")"
}
