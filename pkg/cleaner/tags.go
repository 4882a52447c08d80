package cleaner

import (
	"regexp"
)

var (
	// invisibleRegexes match content that never renders. They run before anything else
	// so markup inside dead code cannot leak into later steps.
	invisibleRegexes = []*regexp.Regexp{
		regexp.MustCompile(`(?s)<!--.*?-->`),
		regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script\s*>`),
		regexp.MustCompile(`(?is)<style\b[^>]*>.*?</style\s*>`),
		regexp.MustCompile(`(?is)<noscript\b[^>]*>.*?</noscript\s*>`),
		regexp.MustCompile(`(?is)<head\b[^>]*>.*?</head\s*>`),
		regexp.MustCompile(`(?is)<title\b[^>]*>.*?</title\s*>`),
	}

	// blockTagRegex matches structural tags that become a line break.
	blockTagRegex = regexp.MustCompile(`(?i)</?(?:p|div|h[1-6]|li|ul|ol|dl|dt|dd|tr|table|thead|tbody|tfoot|caption|br|hr|blockquote|section|article|header|footer|center|address|pre)\b[^>]*>`)

	// cellTagRegex matches table cells, which keep columns apart without breaking the line.
	cellTagRegex = regexp.MustCompile(`(?i)</?(?:td|th)\b[^>]*>`)

	// altDoubleRegex and altSingleRegex salvage image alt text.
	altDoubleRegex = regexp.MustCompile(`(?i)<img\b[^>]*?\salt\s*=\s*"([^"]*)"[^>]*>`)
	altSingleRegex = regexp.MustCompile(`(?i)<img\b[^>]*?\salt\s*=\s*'([^']*)'[^>]*>`)

	// anchorRegex and spanRegex salvage inline text. Nested inner tags are left for the final sweep.
	anchorRegex = regexp.MustCompile(`(?is)<a\b[^>]*>(.*?)</a\s*>`)
	spanRegex   = regexp.MustCompile(`(?is)<span\b[^>]*>(.*?)</span\s*>`)

	// anyTagRegex matches every remaining tag. A tag opens with a name, '/', '!' or '?',
	// so a bare comparison like "5 < 10" is text.
	anyTagRegex = regexp.MustCompile(`<[A-Za-z/!?][^>]*>`)
)

// TagCleaner converts HTML markup to layout-preserving plain text.
//
// Order matters:
//  1. script/style/noscript/head bodies and comments are deleted
//  2. block tags become newlines, table cells become spaces
//  3. image alt text, anchor text and span text are reinserted as plain text
//  4. every remaining tag is replaced with a single space
type TagCleaner struct{}

// NewTags creates a tag-stripping cleaner.
func NewTags() *TagCleaner {
	return &TagCleaner{}
}

// Clean strips markup from content.
func (c *TagCleaner) Clean(content string) (string, error) {
	return StripTags(content), nil
}

// Name returns the cleaner type.
func (c *TagCleaner) Name() string {
	return "tags"
}

// StripTags removes all markup from s, keeping the visible text.
func StripTags(s string) string {
	if s == "" {
		return s
	}
	for _, re := range invisibleRegexes {
		s = re.ReplaceAllString(s, " ")
	}

	s = blockTagRegex.ReplaceAllString(s, "\n")
	s = cellTagRegex.ReplaceAllString(s, " ")

	s = altDoubleRegex.ReplaceAllString(s, " $1 ")
	s = altSingleRegex.ReplaceAllString(s, " $1 ")
	s = anchorRegex.ReplaceAllString(s, " $1 ")
	s = spanRegex.ReplaceAllString(s, " $1 ")

	return anyTagRegex.ReplaceAllString(s, " ")
}
