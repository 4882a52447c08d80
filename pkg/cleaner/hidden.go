package cleaner

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// hiddenStyleRegex matches inline styles that keep an element from rendering.
// Email templates use these for preheader text.
var hiddenStyleRegex = regexp.MustCompile(`(?i)(?:display\s*:\s*none|visibility\s*:\s*hidden|max-height\s*:\s*0(?:px)?\s*(?:;|!|$)|font-size\s*:\s*0(?:px)?\s*(?:;|!|$)|mso-hide\s*:\s*all)`)

// HiddenCleaner removes elements that never render in a mail client.
// It parses the document with goquery, so it runs before the tag stripper.
// If the document cannot be parsed, or nothing is hidden, the input is returned unchanged.
type HiddenCleaner struct{}

// NewHidden creates a hidden-element cleaner.
func NewHidden() *HiddenCleaner {
	return &HiddenCleaner{}
}

// Clean removes hidden elements from content.
func (c *HiddenCleaner) Clean(content string) (string, error) {
	out, _ := StripHidden(content)
	return out, nil
}

// Name returns the cleaner type.
func (c *HiddenCleaner) Name() string {
	return "hidden"
}

// StripHidden removes hidden elements from html and reports how many were removed.
//
// Character references in the rest of the document come out as written: every
// '&' is escaped before parsing and restored after rendering, so the parser's
// entity table never decides what the entity stage sees.
func StripHidden(html string) (string, int) {
	if !strings.Contains(html, "<") {
		return html, 0
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(strings.ReplaceAll(html, "&", "&amp;")))
	if err != nil {
		return html, 0
	}

	removed := 0
	remove := func(_ int, s *goquery.Selection) {
		s.Remove()
		removed++
	}

	doc.Find("[hidden]").Each(remove)
	doc.Find("[aria-hidden='true']").Each(remove)
	doc.Find("[style]").Each(func(i int, s *goquery.Selection) {
		style, _ := s.Attr("style")
		if hiddenStyleRegex.MatchString(style) {
			remove(i, s)
		}
	})

	if removed == 0 {
		return html, 0
	}
	out, err := doc.Html()
	if err != nil {
		return html, 0
	}
	return strings.ReplaceAll(out, "&amp;", "&"), removed
}
