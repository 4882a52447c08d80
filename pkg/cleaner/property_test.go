package cleaner

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// fragmentGen builds email-like documents from pieces that exercise every stage.
func fragmentGen() gopter.Gen {
	return gen.SliceOf(gen.OneConstOf(
		"<p>", "</p>", "<td>", "</td>", "<br>", "<script>", "</script>", "<!--", "-->",
		`<img alt="Mouse">`, `<a href="https://x.test">`, "</a>", "<", ">",
		"&amp;", "&lt;", "&gt;", "&nbsp;", "&#8377;", "&#x3C;", "&", "#", "x", "3", "C", ";", "amp", "lt",
		"â‚¹", "Ã¢â‚¬â„¢", "Â", "Rs. ", "1,299",
		" ", "\t", "\r\n", "\n", "\u00a0", "\u200b",
		"Order ID: OD123", "Unsubscribe", "Wireless Mouse", "----",
	)).Map(func(parts []string) string {
		return strings.Join(parts, "")
	})
}

// repairFragmentGen mixes repair-table keys with the proper prefixes of other
// keys, so that one repair can complete a neighbouring key.
func repairFragmentGen() gopter.Gen {
	seen := make(map[string]bool)
	var pieces []interface{}
	add := func(p string) {
		if p != "" && !seen[p] {
			seen[p] = true
			pieces = append(pieces, p)
		}
	}
	for _, rule := range RepairTable() {
		add(rule[0])
		runes := []rune(rule[0])
		for i := 1; i < len(runes); i++ {
			add(string(runes[:i]))
		}
	}
	add(" ")
	add("Rs. ")
	add("5")
	return gen.SliceOf(gen.OneConstOf(pieces...)).Map(func(parts []string) string {
		return strings.Join(parts, "")
	})
}

func TestProperty_RepairEncodingFixedPoint(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	properties.Property("RepairEncoding is idempotent", prop.ForAll(
		func(s string) bool {
			once := RepairEncoding(s)
			return RepairEncoding(once) == once
		},
		repairFragmentGen(),
	))

	properties.Property("RepairEncoding is idempotent on any text", prop.ForAll(
		func(s string) bool {
			once := RepairEncoding(s)
			return RepairEncoding(once) == once
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}

func TestProperty_WhitespaceFixedPoint(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("NormalizeWhitespace is idempotent", prop.ForAll(
		func(s string) bool {
			once := NormalizeWhitespace(s)
			return NormalizeWhitespace(once) == once
		},
		gen.AnyString(),
	))

	properties.Property("NormalizeWhitespace is idempotent on documents", prop.ForAll(
		func(s string) bool {
			once := NormalizeWhitespace(s)
			return NormalizeWhitespace(once) == once
		},
		fragmentGen(),
	))

	properties.TestingRun(t)
}

func TestProperty_EntitiesFixedPoint(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)

	properties.Property("DecodeEntities is idempotent", prop.ForAll(
		func(s string) bool {
			once := DecodeEntities(s)
			return DecodeEntities(once) == once
		},
		fragmentGen(),
	))

	properties.Property("DecodeEntities never grows the text", prop.ForAll(
		func(s string) bool {
			return len(DecodeEntities(s)) <= len(s)
		},
		fragmentGen(),
	))

	properties.TestingRun(t)
}

func TestProperty_ChainHasNoMarkup(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	chain := emailChain()
	properties.Property("cleaned text has no angle brackets", prop.ForAll(
		func(s string) bool {
			out, err := chain.Clean(s)
			return err == nil && !strings.ContainsAny(out, "<>")
		},
		fragmentGen(),
	))

	properties.Property("cleaning is deterministic", prop.ForAll(
		func(s string) bool {
			a, _ := chain.Clean(s)
			b, _ := chain.Clean(s)
			return a == b
		},
		fragmentGen(),
	))

	properties.TestingRun(t)
}
