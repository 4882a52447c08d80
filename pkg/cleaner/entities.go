package cleaner

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// namedEntities is the fixed table of named character references we resolve.
var namedEntities = map[string]string{
	"amp":    "&",
	"lt":     "<",
	"gt":     ">",
	"quot":   `"`,
	"apos":   "'",
	"nbsp":   "\u00a0",
	"copy":   "©",
	"reg":    "®",
	"trade":  "™",
	"ndash":  "–",
	"mdash":  "—",
	"hellip": "…",
	"lsquo":  "‘",
	"rsquo":  "’",
	"ldquo":  "“",
	"rdquo":  "”",
	"bull":   "•",
	"middot": "·",
	"euro":   "€",
	"pound":  "£",
	"yen":    "¥",
	"cent":   "¢",
}

// maxEntityLen bounds the length of a reference, "&" and ";" included.
// "&#x10FFFF;" and "&#1114111;" are the longest valid numeric forms.
const maxEntityLen = 12

// EntityCleaner resolves HTML character references: named entities from a fixed
// table, then decimal, then hexadecimal numeric references.
//
// Decoding runs to a fixed point, so "&amp;lt;" becomes "<" and decoding the
// output again changes nothing. A reference whose body is invalid for its base is
// left as literal text.
type EntityCleaner struct{}

// NewEntities creates an entity-decoding cleaner.
func NewEntities() *EntityCleaner {
	return &EntityCleaner{}
}

// Clean decodes character references in content.
func (c *EntityCleaner) Clean(content string) (string, error) {
	return DecodeEntities(content), nil
}

// Name returns the cleaner type.
func (c *EntityCleaner) Name() string {
	return "entities"
}

// DecodeEntities resolves character references in s until none remain.
//
// Text is streamed into an output buffer. When a ';' closes a candidate
// reference, the reference is removed from the output and its decoded value is
// pushed back onto the input, where it may complete another reference. Every
// reduction shortens the text, so the work stays linear in the input length.
func DecodeEntities(s string) string {
	if strings.IndexByte(s, '&') < 0 {
		return s
	}

	out := make([]byte, 0, len(s))
	// pending holds decoded bytes still to be re-read, in reverse order.
	var pending []byte
	amp := -1 // index in out of the '&' that may still open a reference

	i := 0
	for i < len(s) || len(pending) > 0 {
		var b byte
		if n := len(pending); n > 0 {
			b = pending[n-1]
			pending = pending[:n-1]
		} else {
			b = s[i]
			i++
		}

		switch {
		case b == '&':
			out = append(out, b)
			amp = len(out) - 1
		case b == ';' && amp >= 0:
			out = append(out, b)
			decoded, ok := resolveReference(string(out[amp+1 : len(out)-1]))
			if !ok {
				amp = -1
				continue
			}
			out = out[:amp]
			for j := len(decoded) - 1; j >= 0; j-- {
				pending = append(pending, decoded[j])
			}
			amp = reopenAmp(out)
		case amp >= 0 && isReferenceByte(b) && len(out)-amp < maxEntityLen-1:
			out = append(out, b)
		default:
			out = append(out, b)
			amp = -1
		}
	}
	return string(out)
}

// reopenAmp finds a trailing '&' in out that could still open a reference once
// more bytes arrive, or returns -1. Its window matches the forward scan, so a
// reference completed by a decoded byte resolves in the same pass.
func reopenAmp(out []byte) int {
	for k := len(out) - 1; k >= 0 && len(out)-k < maxEntityLen; k-- {
		if out[k] == '&' {
			return k
		}
		if !isReferenceByte(out[k]) {
			return -1
		}
	}
	return -1
}

func isReferenceByte(b byte) bool {
	return b == '#' || (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// resolveReference decodes the body of a reference (the text between '&' and ';').
// Named entities are tried first, then decimal, then hexadecimal.
func resolveReference(body string) (string, bool) {
	if body == "" {
		return "", false
	}
	if body[0] != '#' {
		if v, ok := namedEntities[body]; ok {
			return v, true
		}
		if v, ok := namedEntities[strings.ToLower(body)]; ok {
			return v, true
		}
		return "", false
	}

	digits := body[1:]
	base := 10
	if len(digits) > 0 && (digits[0] == 'x' || digits[0] == 'X') {
		digits = digits[1:]
		base = 16
	}
	if digits == "" {
		return "", false
	}
	n, err := strconv.ParseUint(digits, base, 32)
	if err != nil || n == 0 || n > utf8.MaxRune {
		return "", false
	}
	r := rune(n)
	if !utf8.ValidRune(r) {
		return "", false
	}
	return string(r), true
}

// EncodeEntity returns the named reference for r, if the table has one.
func EncodeEntity(r rune) (string, bool) {
	for name, v := range namedEntities {
		if v == string(r) {
			return "&" + name + ";", true
		}
	}
	return "", false
}

// NamedEntities returns a copy of the named entity table.
func NamedEntities() map[string]string {
	out := make(map[string]string, len(namedEntities))
	for k, v := range namedEntities {
		out[k] = v
	}
	return out
}
