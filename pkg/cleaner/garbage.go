package cleaner

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	// markupResidueRegex matches tag-shaped text that only appears once entities are decoded.
	markupResidueRegex = regexp.MustCompile(`<[A-Za-z/!?][^<>\n]{0,200}>`)
	angleBracketRegex  = regexp.MustCompile(`[<>]`)
)

// boilerplateRegexes remove known boilerplate from the whole document.
// Every pattern is bounded to a single line so cost stays linear on large bodies.
// Sender and care notices delete the phrase and its usual tail, never the rest of
// the line: mail HTML often puts a whole paragraph on one line, order facts included.
var boilerplateRegexes = []*regexp.Regexp{
	// Notification-only sender notices.
	regexp.MustCompile(`(?i)\b(?:this (?:e-?mail|message) (?:is|was|has been) |this is an? )?(?:sent from an? (?:notification[- ]only|unmonitored|send[- ]only) (?:e-?mail )?(?:address|mailbox)(?: that (?:cannot|can't|does not|doesn't) (?:accept|receive) (?:incoming )?(?:e-?mails?|replies|messages))?|(?:system|auto(?:matically)?)[- ]generated (?:e-?mail|message))[.!]*`),
	// Do not reply.
	regexp.MustCompile(`(?i)\b(?:please )?(?:do not|don't|dont) reply\b(?: to this (?:e-?mail|message|mail))?[.!]*`),
	// Customer-care blurbs, with a trailing phone number when one follows.
	regexp.MustCompile(`(?i)\b(?:(?:please )?contact (?:our )?customer (?:care|support|service)|customer care (?:number|team|executive)|for any (?:further )?(?:queries|questions|assistance)|visit (?:our )?help cent(?:er|re))\b(?: (?:at|on) \+?[0-9][0-9 -]{5,18}[0-9])?[.,:!]*`),
	// Unsubscribe and preference notices.
	regexp.MustCompile(`(?im)^[^\n]*\b(?:unsubscribe|manage (?:your )?(?:e-?mail |communication |notification )?preferences)\b[^\n]*$`),
	// Calls to action. Only the phrase goes; the rest of the line may carry a tracking id.
	regexp.MustCompile(`(?i)\b(?:track (?:your )?(?:shipment|package|order)|manage (?:your )?orders?|view (?:your )?(?:invoice|order details)|download (?:your )?invoice|read more)\b[.:!]*`),
	// Raw URLs.
	regexp.MustCompile(`(?i)\b(?:https?://|www\.)[^\s<>"']+`),
	// Leaked attribute fragments.
	regexp.MustCompile(`(?i)\b(?:src|href|style|class|width|height|align|valign|border|bgcolor|cellpadding|cellspacing)\s*=\s*(?:"[^"\n]*"|'[^'\n]*'|[^\s>]+)`),
	// Sender addresses.
	regexp.MustCompile(`(?i)\b(?:no-?reply|do-?not-?reply|donotreply|notifications?|alerts?|auto-?confirm|order-?updates?|shipment-?tracking)[a-z0-9._+-]*@[a-z0-9.-]+\.[a-z]{2,}\b`),
	// Retailer domain mentions.
	regexp.MustCompile(`(?i)\b(?:[a-z0-9-]+\.)*(?:amazon|flipkart|myntra|ajio|meesho|nykaa)\.(?:co\.in|com|in)\b(?:/\S*)?`),
}

var (
	cssPropertyLineRegex = regexp.MustCompile(`^(?:` + cssPropertyExpr + `\s*:\s*[^;:]+;\s*)+$`)
	cssRuleLineRegex     = regexp.MustCompile(`^(?:@[a-z-]+\b.*|[^\p{L}\p{N}]*\}.*|[\w\s.#,:>*\[\]="'-]*\{[^}]*\}?)$`)
	tagNameLineRegex     = regexp.MustCompile(`(?i)^/?(?:html|head|body|div|span|table|tbody|thead|tr|td|th|p|br|hr|img|a|b|i|u|strong|em|font|center|ul|ol|li|style|script)$`)
	urlLineRegex         = regexp.MustCompile(`(?i)^(?:https?://|www\.)\S+$`)
	hexLineRegex         = regexp.MustCompile(`(?i)^[0-9a-f]{20,}$`)
	boilerplateLineRegex = regexp.MustCompile(`(?i)^(?:track (?:your )?(?:shipment|package|order)|manage (?:your )?orders?|view (?:your )?(?:invoice|order details|order)|download (?:your )?invoice|read more|unsubscribe\b.*|contact us|help cent(?:er|re)|privacy policy|terms (?:of use|and conditions|& conditions)|follow us(?: on)?|download (?:the|our) app|get the app|shop now)\W*$`)
)

// cssPropertyExpr names the properties mail templates inline. Only lowercase
// names count, so "Color: Black;" on a product line survives.
const cssPropertyExpr = `(?:-(?:webkit|moz|ms)-[a-z-]+|mso-[a-z-]+|` +
	`(?:background|border|margin|padding|font|text|outline|list-style)(?:-[a-z]+)*|` +
	`color|width|height|(?:max|min)-(?:width|height)|line-height|letter-spacing|` +
	`word-(?:break|wrap|spacing)|vertical-align|white-space|display|visibility|overflow(?:-[xy])?|` +
	`opacity|float|clear|position|top|left|right|bottom|z-index|box-(?:sizing|shadow)|` +
	`cursor|direction|table-layout)`

// LineRule decides whether a single line is noise.
type LineRule struct {
	Name  string
	Match func(line string) bool
}

// lineRules is the fixed battery applied per line, in order.
// Rules lean toward keeping a line when in doubt.
var lineRules = []LineRule{
	{Name: "punctuation", Match: isPunctuationOnly},
	{Name: "css", Match: func(l string) bool { return cssPropertyLineRegex.MatchString(l) || cssRuleLineRegex.MatchString(l) }},
	{Name: "tag-name", Match: tagNameLineRegex.MatchString},
	{Name: "url", Match: urlLineRegex.MatchString},
	{Name: "hex-id", Match: isHexIdentifier},
	{Name: "numeric", Match: isShortNumericNoise},
	{Name: "boilerplate", Match: boilerplateLineRegex.MatchString},
}

// GarbageCleaner removes boilerplate blocks and noise lines from plain text.
// It expects markup to be gone already.
type GarbageCleaner struct {
	blocks []*regexp.Regexp
}

// NewGarbage creates a garbage filter. Extra patterns run after the built-in
// boilerplate patterns; each match is deleted.
func NewGarbage(extra ...*regexp.Regexp) *GarbageCleaner {
	blocks := make([]*regexp.Regexp, 0, len(boilerplateRegexes)+len(extra))
	blocks = append(blocks, boilerplateRegexes...)
	blocks = append(blocks, extra...)
	return &GarbageCleaner{blocks: blocks}
}

// Clean removes garbage from content.
func (c *GarbageCleaner) Clean(content string) (string, error) {
	out, _ := c.Filter(content)
	return out, nil
}

// Name returns the cleaner type.
func (c *GarbageCleaner) Name() string {
	return "garbage"
}

// Filter removes garbage from content and reports how many lines each rule dropped.
func (c *GarbageCleaner) Filter(content string) (string, map[string]int) {
	dropped := make(map[string]int)
	if content == "" {
		return content, dropped
	}

	content = markupResidueRegex.ReplaceAllString(content, " ")
	content = angleBracketRegex.ReplaceAllString(content, " ")
	for _, re := range c.blocks {
		content = re.ReplaceAllString(content, "")
	}

	// Entities decoded after whitespace normalization may have introduced
	// non-breaking spaces; normalize before judging lines.
	lines := strings.Split(NormalizeWhitespace(content), "\n")
	kept := lines[:0]
	for _, line := range lines {
		if line == "" {
			kept = append(kept, line)
			continue
		}
		if rule, ok := matchLineRule(line); ok {
			dropped[rule]++
			continue
		}
		kept = append(kept, line)
	}

	return NormalizeWhitespace(strings.Join(kept, "\n")), dropped
}

// IsGarbageLine reports whether a single line would be dropped by the per-line battery.
func IsGarbageLine(line string) bool {
	_, ok := matchLineRule(strings.TrimSpace(line))
	return ok
}

func matchLineRule(line string) (string, bool) {
	for _, rule := range lineRules {
		if rule.Match(line) {
			return rule.Name, true
		}
	}
	return "", false
}

func isPunctuationOnly(line string) bool {
	for _, r := range line {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Sc, r) {
			return false
		}
	}
	return true
}

// isHexIdentifier matches long tracking-pixel style hex tokens. Pure digit runs
// are left to the numeric rule.
func isHexIdentifier(line string) bool {
	if !hexLineRegex.MatchString(line) {
		return false
	}
	return strings.ContainsAny(strings.ToLower(line), "abcdef") && strings.ContainsAny(line, "0123456789")
}

// isShortNumericNoise matches lines of digits and punctuation with fewer than five
// digits, such as stray page counters or table separators. Longer digit runs may be
// order or tracking ids and are kept.
func isShortNumericNoise(line string) bool {
	digits := 0
	for _, r := range line {
		switch {
		case unicode.IsDigit(r):
			digits++
		case unicode.IsLetter(r), unicode.Is(unicode.Sc, r):
			return false
		}
	}
	return digits > 0 && digits < 5
}
