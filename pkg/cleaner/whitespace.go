package cleaner

import (
	"regexp"
	"strings"
)

var (
	// invisibleCharRegex matches zero-width characters and soft hyphens, which
	// email templates use to pad preheaders.
	invisibleCharRegex = regexp.MustCompile(`[\x{00AD}\x{034F}\x{200B}-\x{200D}\x{2060}\x{FEFF}]+`)

	lineEndingRegex    = regexp.MustCompile(`\r\n?`)
	horizontalRegex    = regexp.MustCompile(`[\t\f\v \p{Zs}]+`)
	lineEdgeSpaceRegex = regexp.MustCompile(`(?m)^ +| +$`)
	blankLinesRegex    = regexp.MustCompile(`\n{3,}`)
)

// WhitespaceCleaner canonicalizes whitespace.
// Line endings become "\n", horizontal runs become one space, lines are trimmed
// and runs of blank lines collapse to a single blank line.
// Its output is a fixed point: cleaning it again changes nothing.
type WhitespaceCleaner struct{}

// NewWhitespace creates a whitespace-normalizing cleaner.
func NewWhitespace() *WhitespaceCleaner {
	return &WhitespaceCleaner{}
}

// Clean normalizes whitespace in content.
func (c *WhitespaceCleaner) Clean(content string) (string, error) {
	return NormalizeWhitespace(content), nil
}

// Name returns the cleaner type.
func (c *WhitespaceCleaner) Name() string {
	return "whitespace"
}

// NormalizeWhitespace collapses whitespace variance in s to canonical form.
func NormalizeWhitespace(s string) string {
	if s == "" {
		return s
	}
	s = invisibleCharRegex.ReplaceAllString(s, "")
	s = lineEndingRegex.ReplaceAllString(s, "\n")
	s = horizontalRegex.ReplaceAllString(s, " ")
	s = lineEdgeSpaceRegex.ReplaceAllString(s, "")
	s = blankLinesRegex.ReplaceAllString(s, "\n\n")
	return strings.Trim(s, " \n")
}
