package extractor

import (
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/shopspring/decimal"
)

var amountShapeRegex = regexp.MustCompile(`^\d+(?:\.\d{1,2})?$`)

// ParseAmount parses a captured amount such as "1,299.00" or "2,500".
// Grouping separators are removed; at most two fractional digits are allowed.
func ParseAmount(s string) (decimal.Decimal, bool) {
	s = strings.NewReplacer(",", "", " ", "", "\u00a0", "").Replace(strings.TrimSpace(s))
	if !amountShapeRegex.MatchString(s) {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return decimal.Decimal{}, false
	}
	return d, true
}

var (
	ordinalRegex = regexp.MustCompile(`(?i)\b(\d{1,2})(?:st|nd|rd|th)\b`)
	weekdayRegex = regexp.MustCompile(`(?i)^(?:mon|tue|wed|thu|fri|sat|sun)[a-z]*\.?,?\s+`)
	spaceRegex   = regexp.MustCompile(`\s+`)
	// monthAbbrevRegex shortens month names to the three letters time.Parse expects for "Jan".
	monthAbbrevRegex = regexp.MustCompile(`(?i)\b(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?`)
)

// Day-first layouts are tried before month-first ones; Indian retailers write 02/03/2025 for 2 March.
var datedLayouts = []string{
	"2 Jan 2006",
	"2 Jan, 2006",
	"Jan 2 2006",
	"Jan 2, 2006",
	"2/1/2006",
	"2-1-2006",
	"2.1.2006",
	"2006-1-2",
	"2006/1/2",
}

var yearlessLayouts = []string{
	"2 Jan",
	"Jan 2",
}

// ParseDate parses a captured delivery date into a calendar date.
//
// Expressions without a year are resolved against ref: the first occurrence on or
// after ref's date. With a zero ref they cannot be resolved and ParseDate fails.
// Impossible dates such as 30 February are rejected.
func ParseDate(s string, ref time.Time) (Date, bool) {
	s = normalizeDate(s)
	if s == "" {
		return Date{}, false
	}

	for _, layout := range datedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(t), true
		}
	}

	for _, layout := range yearlessLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if ref.IsZero() {
			return Date{}, false
		}
		return resolveYear(t.Month(), t.Day(), ref)
	}

	// Anything our layouts missed but that still carries a year.
	if !strings.ContainsAny(s, "0123456789") {
		return Date{}, false
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil || t.Year() < 1000 {
		return Date{}, false
	}
	return DateOf(t), true
}

func normalizeDate(s string) string {
	s = strings.TrimSpace(s)
	s = weekdayRegex.ReplaceAllString(s, "")
	s = ordinalRegex.ReplaceAllString(s, "$1")
	s = monthAbbrevRegex.ReplaceAllStringFunc(s, func(m string) string {
		m = strings.ToLower(m[:3])
		return strings.ToUpper(m[:1]) + m[1:]
	})
	s = spaceRegex.ReplaceAllString(s, " ")
	return strings.TrimRight(s, " ,.")
}

// resolveYear places month/day in ref's year, or the next year if that date has passed.
func resolveYear(month time.Month, day int, ref time.Time) (Date, bool) {
	refDate := DateOf(ref)
	for _, year := range []int{ref.Year(), ref.Year() + 1} {
		d, ok := NewDate(year, month, day)
		if !ok {
			continue
		}
		if !d.Before(refDate) {
			return d, true
		}
	}
	return Date{}, false
}
