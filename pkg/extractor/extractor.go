package extractor

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jmylchreest/ordermail/pkg/platform"
)

// Options tune a single extraction.
type Options struct {
	// Reference resolves delivery dates written without a year, usually the
	// email's received time. Zero leaves such dates unset.
	Reference time.Time
}

// Match is one candidate value found while scanning a pattern list.
type Match struct {
	Field       Field             `json:"field" yaml:"field"`
	Value       string            `json:"value" yaml:"value"`
	Platform    platform.Platform `json:"platform" yaml:"platform"`
	Index       int               `json:"index" yaml:"index"`
	Specificity int               `json:"specificity" yaml:"specificity"`
}

// Extractor applies ordered pattern lists to cleaned text.
// It holds only read-only tables and is safe for concurrent use.
type Extractor struct {
	pack PatternPack
}

// New creates an extractor over the compiled-in patterns. Each extra pack is
// placed in front of what came before it, so later packs take priority.
func New(extra ...PatternPack) *Extractor {
	pack := Builtin()
	for _, p := range extra {
		pack = pack.Merge(p)
	}
	return &Extractor{pack: pack}
}

// Patterns returns the ordered list evaluated for field on platform p:
// the platform's own list followed by the generic list.
func (e *Extractor) Patterns(p platform.Platform, field Field) []Pattern {
	var out []Pattern
	if p != platform.Generic {
		out = append(out, e.pack[p][field]...)
	}
	return append(out, e.pack[platform.Generic][field]...)
}

// Extract builds a record from text. For each field the first matching
// pattern decides the value; if that value fails validation the field stays unset.
func (e *Extractor) Extract(text string, p platform.Platform, opts Options) Record {
	var rec Record
	if text == "" {
		return rec
	}

	for _, field := range allFields {
		value, ok := e.first(text, p, field)
		if !ok {
			continue
		}
		switch field {
		case FieldAmount:
			if d, ok := ParseAmount(value); ok {
				rec.Amount = &d
			}
		case FieldExpectedDelivery:
			if d, ok := ParseDate(value, opts.Reference); ok {
				rec.ExpectedDelivery = &d
			}
		default:
			dst, name := rec.stringField(field)
			v := value
			*dst = &v
			if err := recordValidator.StructPartial(rec, name); err != nil {
				*dst = nil
			}
		}
	}
	return rec
}

func (e *Extractor) first(text string, p platform.Platform, field Field) (string, bool) {
	for _, pat := range e.Patterns(p, field) {
		if v, ok := pat.Find(text); ok {
			return v, true
		}
	}
	return "", false
}

// Matches runs every pattern for field and returns each match in list order,
// duplicates included.
func (e *Extractor) Matches(text string, p platform.Platform, field Field) []Match {
	var out []Match
	platformLen := 0
	if p != platform.Generic {
		platformLen = len(e.pack[p][field])
	}
	for i, pat := range e.Patterns(p, field) {
		source := p
		if i >= platformLen {
			source = platform.Generic
		}
		for _, v := range pat.FindAll(text) {
			out = append(out, Match{Field: field, Value: v, Platform: source, Index: i, Specificity: pat.Specificity})
		}
	}
	return out
}

// ExtractAll returns every distinct value matched for field across the full
// pattern list, in first-seen order.
func (e *Extractor) ExtractAll(text string, p platform.Platform, field Field) []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range e.Matches(text, p, field) {
		if seen[m.Value] {
			continue
		}
		seen[m.Value] = true
		out = append(out, m.Value)
	}
	return out
}

// ExtractAllOrderIDs returns every distinct order id in text, in first-seen order.
func (e *Extractor) ExtractAllOrderIDs(text string, p platform.Platform) []string {
	return e.ExtractAll(text, p, FieldOrderID)
}

// ExtractAllAmounts returns every distinct amount in text, largest first.
// Values are deduplicated by the text that matched, so "1,299" and "1299" are
// both kept. Captures that do not parse are skipped.
func (e *Extractor) ExtractAllAmounts(text string, p platform.Platform) []decimal.Decimal {
	var out []decimal.Decimal
	for _, v := range e.ExtractAll(text, p, FieldAmount) {
		if d, ok := ParseAmount(v); ok {
			out = append(out, d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].GreaterThan(out[j])
	})
	return out
}
