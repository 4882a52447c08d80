package cleaner

import (
	"strings"
	"testing"
)

func TestDecodeEntities(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"no_references", "plain text", "plain text"},
		{"amp", "Tom &amp; Jerry", "Tom & Jerry"},
		{"angle_brackets", "&lt;b&gt;", "<b>"},
		{"quotes", "&quot;x&quot; &apos;y&apos;", `"x" 'y'`},
		{"nbsp", "a&nbsp;b", "a\u00a0b"},
		{"marks", "&copy; &reg; &trade;", "© ® ™"},
		{"dashes", "&ndash;&mdash;", "–—"},
		{"ellipsis", "more&hellip;", "more…"},
		{"currency", "&euro;&pound;&yen;&cent;", "€£¥¢"},
		{"uppercase_name", "&AMP;", "&"},
		{"decimal", "&#8377;499", "₹499"},
		{"decimal_apostrophe", "it&#39;s", "it's"},
		{"hex_lower", "&#x20b9;", "₹"},
		{"hex_upper", "&#X20B9;", "₹"},
		{"double_escaped", "&amp;lt;p&amp;gt;", "<p>"},
		{"triple_escaped", "&amp;amp;amp;", "&"},
		{"escaped_numeric", "&amp;#8377;", "₹"},
		{"unknown_name", "&bogus;", "&bogus;"},
		{"invalid_hex", "&#xZZ;", "&#xZZ;"},
		{"invalid_decimal", "&#12a;", "&#12a;"},
		{"empty_numeric", "&#;", "&#;"},
		{"empty_hex", "&#x;", "&#x;"},
		{"nul", "&#0;", "&#0;"},
		{"surrogate", "&#xD800;", "&#xD800;"},
		{"out_of_range", "&#1114112;", "&#1114112;"},
		{"huge", "&#99999999999999999999;", "&#99999999999999999999;"},
		{"unterminated", "AT&T and &amp", "AT&T and &amp"},
		{"bare_ampersand", "a & b", "a & b"},
		{"empty_name", "&;", "&;"},
		{"adjacent", "&lt;&lt;&gt;&gt;", "<<>>"},
		{"stray_amp_before_reference", "&&amp;", "&&"},
		{"decoded_semicolon", "&#x3C&#59;", "<"},
		{"decoded_semicolon_long_body", "&#x0000003C&#59;", "<"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecodeEntities(tt.input); got != tt.want {
				t.Errorf("DecodeEntities(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDecodeEntities_Idempotent(t *testing.T) {
	inputs := []string{
		"&amp;lt;b&amp;gt;",
		"&amp;amp;amp;amp;",
		"&&#35;38;",
		"&&#97;mp;",
		"&am&amp;p;",
		"&#x000000&#51;C;",
		"&#x0000003C&#59;",
		"&#x00000003C&#59;",
		"R&amp;D &copy; 2024 &#xZZ; &bogus;",
	}
	for _, in := range inputs {
		once := DecodeEntities(in)
		if twice := DecodeEntities(once); twice != once {
			t.Errorf("DecodeEntities not idempotent on %q: %q then %q", in, once, twice)
		}
	}
}

func TestDecodeEntities_NamedRoundTrip(t *testing.T) {
	for name, value := range NamedEntities() {
		runes := []rune(value)
		if len(runes) != 1 {
			t.Fatalf("entity %q decodes to %d runes", name, len(runes))
		}
		encoded, ok := EncodeEntity(runes[0])
		if !ok {
			t.Errorf("EncodeEntity(%q) found no name", value)
			continue
		}
		if got := DecodeEntities(encoded); got != value {
			t.Errorf("DecodeEntities(%q) = %q, want %q", encoded, got, value)
		}
	}
}

func TestEncodeEntity_Unknown(t *testing.T) {
	if _, ok := EncodeEntity('x'); ok {
		t.Error("EncodeEntity('x') should have no named form")
	}
}

func TestNamedEntities_ReturnsCopy(t *testing.T) {
	m := NamedEntities()
	m["amp"] = "mutated"
	if DecodeEntities("&amp;") != "&" {
		t.Error("NamedEntities() exposed the package table")
	}
}

func TestEntityCleaner_Name(t *testing.T) {
	if got := NewEntities().Name(); got != "entities" {
		t.Errorf("Name() = %q, want %q", got, "entities")
	}
}

func BenchmarkDecodeEntities_Nested(b *testing.B) {
	input := "&" + strings.Repeat("amp;", 5000) + "lt;"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		DecodeEntities(input)
	}
}
