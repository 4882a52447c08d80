package extractor

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jmylchreest/ordermail/pkg/platform"
)

// Pattern is one candidate matcher for a field.
// Group selects the capture group holding the value; 0 means the whole match.
// Specificity is informational (0-100): lists are kept in order of decreasing
// specificity, but evaluation order is the list order.
type Pattern struct {
	Field       Field
	Expr        *regexp.Regexp
	Group       int
	Specificity int
}

// NewPattern compiles expr into a Pattern.
func NewPattern(field Field, expr string, group, specificity int) (Pattern, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return Pattern{}, fmt.Errorf("%w: %s: %v", ErrInvalidPattern, field, err)
	}
	if group < 0 || group > re.NumSubexp() {
		return Pattern{}, fmt.Errorf("%w: %s: group %d out of range (pattern has %d)", ErrInvalidPattern, field, group, re.NumSubexp())
	}
	return Pattern{Field: field, Expr: re, Group: group, Specificity: specificity}, nil
}

// mustPattern is NewPattern for compiled-in tables.
func mustPattern(field Field, expr string, group, specificity int) Pattern {
	p, err := NewPattern(field, expr, group, specificity)
	if err != nil {
		panic(err)
	}
	return p
}

// Find returns the trimmed value of the first match in text.
// A match whose capture is empty counts as no match.
func (p Pattern) Find(text string) (string, bool) {
	m := p.Expr.FindStringSubmatchIndex(text)
	if m == nil {
		return "", false
	}
	v := groupValue(text, m, p.Group)
	return v, v != ""
}

// FindAll returns the trimmed values of every non-overlapping match in text, in order.
func (p Pattern) FindAll(text string) []string {
	var out []string
	for _, m := range p.Expr.FindAllStringSubmatchIndex(text, -1) {
		if v := groupValue(text, m, p.Group); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func groupValue(text string, m []int, group int) string {
	start, end := m[2*group], m[2*group+1]
	if start < 0 {
		return ""
	}
	return strings.TrimSpace(text[start:end])
}

// PatternSet holds the ordered pattern lists of one platform, keyed by field.
type PatternSet map[Field][]Pattern

// Prepend returns a new set with other's lists placed before s's lists.
func (s PatternSet) Prepend(other PatternSet) PatternSet {
	out := make(PatternSet, len(s)+len(other))
	for f, list := range s {
		out[f] = append([]Pattern(nil), list...)
	}
	for f, list := range other {
		merged := make([]Pattern, 0, len(list)+len(out[f]))
		merged = append(merged, list...)
		merged = append(merged, out[f]...)
		out[f] = merged
	}
	return out
}

// PatternPack maps platforms to their pattern sets.
type PatternPack map[platform.Platform]PatternSet

// Merge returns a new pack where other's lists come before p's for each platform.
func (p PatternPack) Merge(other PatternPack) PatternPack {
	out := make(PatternPack, len(p)+len(other))
	for plat, set := range p {
		out[plat] = set.Prepend(nil)
	}
	for plat, set := range other {
		base := out[plat]
		if base == nil {
			base = PatternSet{}
		}
		out[plat] = base.Prepend(set)
	}
	return out
}
