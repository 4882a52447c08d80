package cleaner

import (
	"strings"
	"testing"
)

func TestStripTags(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain", "no markup", "no markup"},
		{"paragraphs", "<p>Hello</p><p>World</p>", "Hello\n\nWorld"},
		{"line_break", "Line one<br/>Line two", "Line one\nLine two"},
		{"table_cells", "<table><tr><td>Qty</td><td>1</td></tr></table>", "Qty 1"},
		{"table_rows", "<tr><td>A</td></tr><tr><td>B</td></tr>", "A\n\nB"},
		{"adjacent_inline", "<b>Order</b><i>ID</i>", "Order ID"},
		{"script_body", `<script>var x = "<b>hi</b>";</script>Text`, "Text"},
		{"style_body", "<style>\n.a { color: red; }\n</style>Text", "Text"},
		{"comment", "<!-- <p>hidden</p> -->Shown", "Shown"},
		{"case_insensitive", "<SCRIPT>alert(1)</SCRIPT><P>Body</P>", "Body"},
		{"head_and_title", "<head><title>Subject</title></head><body>Body</body>", "Body"},
		{"alt_double", `<img src="m.png" alt="Wireless Mouse">`, "Wireless Mouse"},
		{"alt_single", `<img alt='Keyboard' src='k.png'>`, "Keyboard"},
		{"anchor", `Go <a href="https://x.test/o?id=1">to order</a> now`, "Go to order now"},
		{"span", `<span style="font-weight:bold">Shipped</span>`, "Shipped"},
		{"heading", "<h2>Delivered</h2>text", "Delivered\ntext"},
		{"bare_comparison", "<p>Price 5 < 10 and 20 > 3</p>", "Price 5 < 10 and 20 > 3"},
		{"heart", "We <3 you", "We <3 you"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeWhitespace(StripTags(tt.input))
			if got != tt.want {
				t.Errorf("StripTags(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestStripTags_NoTagsRemain(t *testing.T) {
	inputs := []string{
		`<html><body><div class="x"><p>Hi <b>there</b></p></div></body></html>`,
		`<table cellpadding="0"><tr><td align="left"><img src="a.gif" alt="A"></td></tr></table>`,
		"<script>\n<p>in script</p>\n</script><noscript><img src=x></noscript>",
		`<a href="#"><span><img alt="Logo" src="l.png"></span></a>`,
	}

	for _, in := range inputs {
		got := StripTags(in)
		if strings.ContainsAny(got, "<>") {
			t.Errorf("StripTags(%q) = %q, markup remains", in, got)
		}
	}
}

func TestStripTags_AltBeforeDeletion(t *testing.T) {
	got := NormalizeWhitespace(StripTags(`<td><img src="p.jpg" alt="Running Shoes"></td><td>&#8377;2,999</td>`))
	if got != "Running Shoes &#8377;2,999" {
		t.Errorf("StripTags() = %q", got)
	}
}

func TestTagCleaner_Name(t *testing.T) {
	if got := NewTags().Name(); got != "tags" {
		t.Errorf("Name() = %q, want %q", got, "tags")
	}
}
