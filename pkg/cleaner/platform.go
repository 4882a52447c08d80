package cleaner

import (
	"regexp"

	"github.com/jmylchreest/ordermail/pkg/platform"
)

// RuleAction says what a platform rule does with its match.
type RuleAction int

const (
	// DropLine deletes every line containing a match.
	DropLine RuleAction = iota
	// Truncate deletes everything from the first match to the end of the text.
	Truncate
)

// PlatformRule is one retailer-specific removal.
type PlatformRule struct {
	Action RuleAction
	Expr   *regexp.Regexp
}

func dropLine(expr string) PlatformRule {
	return PlatformRule{Action: DropLine, Expr: regexp.MustCompile(`(?im)^[^\n]*(?:` + expr + `)[^\n]*\n?`)}
}

func truncate(expr string) PlatformRule {
	return PlatformRule{Action: Truncate, Expr: regexp.MustCompile(`(?im)^[^\n]*(?:` + expr + `)`)}
}

// platformRules are applied in order after general cleanup.
var platformRules = map[platform.Platform][]PlatformRule{
	platform.Amazon: {
		truncate(`\b(?:customers who bought|recommended for you|deals related to your (?:purchase|order)|you might also like)\b`),
		dropLine(`\b(?:prime (?:members?|video|music|day|exclusive)|try prime|join prime|start your free trial)\b`),
		dropLine(`\bamazon pay (?:later|balance|upi|icici)\b`),
	},
	platform.Flipkart: {
		truncate(`\b(?:did you know|you may also like|top offers for you)\b`),
		dropLine(`\b(?:supercoins?|flipkart plus|plus members?|plus zone)\b`),
		dropLine(`\b(?:flipkart pay later|flipkart axis bank)\b`),
	},
	platform.Myntra: {
		truncate(`\b(?:explore more|shop more|trending now)\b`),
		dropLine(`\b(?:myntra insider|insider points|myntra credit|myntra rewards)\b`),
	},
	platform.Ajio: {
		truncate(`\b(?:explore more|new arrivals for you)\b`),
		dropLine(`\b(?:ajio points|ajio wallet|ajio gold|refer and earn)\b`),
	},
	platform.Meesho: {
		truncate(`\b(?:you may also like|shop more)\b`),
		dropLine(`\b(?:meesho balance|share (?:&|and) earn|refer (?:&|and) earn)\b`),
	},
	platform.Nykaa: {
		truncate(`\b(?:you may also like|bestsellers for you)\b`),
		dropLine(`\b(?:nykaa prive|nykaa rewards|beauty points|nykaa wallet)\b`),
	},
}

// PlatformCleaner removes retailer-specific upsells and trailing promotions.
// A platform without rules, including generic, leaves text unchanged.
type PlatformCleaner struct {
	platform platform.Platform
	rules    []PlatformRule
}

// NewPlatform creates a post-processor for p. Extra rules run after the built-in ones.
func NewPlatform(p platform.Platform, extra ...PlatformRule) *PlatformCleaner {
	builtin := platformRules[p]
	rules := make([]PlatformRule, 0, len(builtin)+len(extra))
	rules = append(rules, builtin...)
	rules = append(rules, extra...)
	return &PlatformCleaner{platform: p, rules: rules}
}

// Clean applies the platform's removals to content.
func (c *PlatformCleaner) Clean(content string) (string, error) {
	if len(c.rules) == 0 || content == "" {
		return content, nil
	}
	for _, rule := range c.rules {
		switch rule.Action {
		case Truncate:
			if loc := rule.Expr.FindStringIndex(content); loc != nil {
				content = content[:loc[0]]
			}
		default:
			content = rule.Expr.ReplaceAllString(content, "")
		}
	}
	return NormalizeWhitespace(content), nil
}

// Name returns the cleaner type.
func (c *PlatformCleaner) Name() string {
	return "platform(" + c.platform.String() + ")"
}
