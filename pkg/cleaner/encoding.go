package cleaner

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"
)

// repairTargets are the characters whose mis-decoded forms we know how to repair,
// mapped to the text each repaired sequence becomes.
// Smart quotes and the ellipsis are flattened to ASCII for plain-text output.
var repairTargets = []struct {
	r    rune
	with string
}{
	{'₹', "₹"},
	{'€', "€"},
	{'£', "£"},
	{'¥', "¥"},
	{'’', "'"},
	{'‘', "'"},
	{'“', `"`},
	{'”', `"`},
	{'–', "–"},
	{'—', "—"},
	{'…', "..."},
	{'•', "•"},
	{'©', "©"},
	{'®', "®"},
	{'™', "™"},
	{'·', "·"},
	{'°', "°"},
	{'×', "×"},
	{'\u00a0', " "},
	{'é', "é"},
	{'è', "è"},
	{'á', "á"},
	{'ó', "ó"},
	{'ú', "ú"},
	{'ñ', "ñ"},
	{'ü', "ü"},
	{'ö', "ö"},
	{'ä', "ä"},
}

// extraRepairs are corrupted sequences that cannot be derived mechanically,
// usually because a byte was dropped along the way.
var extraRepairs = [][2]string{
	// Closing double quote whose 0x9D byte was discarded as undefined in Windows-1252.
	{"â€", `"`},
}

// currencyPrefixRegex rewrites "Rs." / "Rs" / "INR" directly before a number to the rupee sign.
// This is an approximate heuristic: it does not try to be precise about word boundaries
// beyond requiring a digit to follow.
var currencyPrefixRegex = regexp.MustCompile(`\b(?:Rs\.?|INR)[ \t]?(\d)`)

// repairReplacer holds the compiled repair table. It is built once at init and never mutated.
var repairReplacer *strings.Replacer

// repairTable is the ordered (corrupted, repaired) table behind repairReplacer.
var repairTable [][2]string

func init() {
	repairTable = buildRepairTable()
	pairs := make([]string, 0, len(repairTable)*2)
	for _, rule := range repairTable {
		pairs = append(pairs, rule[0], rule[1])
	}
	repairReplacer = strings.NewReplacer(pairs...)
}

// buildRepairTable derives the double- and triple-encoded form of every target
// by reading its UTF-8 bytes as Windows-1252, then orders the table longest key first
// so that a triple-encoded sequence is repaired before the double-encoded sequence it contains.
func buildRepairTable() [][2]string {
	seen := make(map[string]bool)
	var table [][2]string
	add := func(from, to string) {
		if from == "" || seen[from] || strings.ContainsRune(from, utf8.RuneError) {
			return
		}
		seen[from] = true
		table = append(table, [2]string{from, to})
	}

	for _, t := range repairTargets {
		double, ok := misdecode(string(t.r))
		if !ok {
			continue
		}
		if triple, ok := misdecode(double); ok {
			add(triple, t.with)
		}
		add(double, t.with)
	}
	for _, extra := range extraRepairs {
		add(extra[0], extra[1])
	}

	sort.SliceStable(table, func(i, j int) bool {
		return utf8.RuneCountInString(table[i][0]) > utf8.RuneCountInString(table[j][0])
	})
	return table
}

// misdecode reproduces the classic corruption: UTF-8 bytes interpreted as Windows-1252.
func misdecode(s string) (string, bool) {
	out, err := charmap.Windows1252.NewDecoder().String(s)
	if err != nil || out == s {
		return "", false
	}
	// Control characters mean a byte fell into a hole in the code page; such a
	// sequence rarely survives transport intact, so it is not worth a rule.
	for _, r := range out {
		if r < 0x20 || (r >= 0x7F && r < 0xA0) {
			return "", false
		}
	}
	return out, true
}

// EncodingCleaner repairs common mis-encodings: double- and triple-encoded UTF-8,
// corrupted smart quotes and currency symbols.
//
// It is a literal substitution table, not a general decoder. Unknown sequences
// pass through unchanged. Applying it twice gives the same result as applying it once.
type EncodingCleaner struct{}

// NewEncoding creates an encoding-repair cleaner.
func NewEncoding() *EncodingCleaner {
	return &EncodingCleaner{}
}

// Clean repairs known mis-encoded sequences.
func (c *EncodingCleaner) Clean(content string) (string, error) {
	return RepairEncoding(content), nil
}

// Name returns the cleaner type.
func (c *EncodingCleaner) Name() string {
	return "encoding"
}

// RepairEncoding applies the repair table to s until nothing more matches.
// A repaired sequence can join the text before it into another key ("ÂÂ©"
// becomes "Â©"), so a single pass is not enough.
// The text is NFC-normalized on every pass so composed and decomposed input repair identically.
func RepairEncoding(s string) string {
	if s == "" {
		return s
	}
	if !utf8.ValidString(s) {
		s = strings.ToValidUTF8(s, "")
	}
	s = norm.NFC.String(s)
	for {
		next := norm.NFC.String(repairReplacer.Replace(s))
		// Every rule shortens the text, so this ends.
		if next == s || len(next) >= len(s) {
			s = next
			break
		}
		s = next
	}
	return currencyPrefixRegex.ReplaceAllString(s, "₹$1")
}

// RepairTable returns a copy of the ordered repair table.
func RepairTable() [][2]string {
	out := make([][2]string, len(repairTable))
	copy(out, repairTable)
	return out
}
