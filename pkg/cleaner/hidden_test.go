package cleaner

import (
	"strings"
	"testing"
)

func TestStripHidden(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantRemoved int
		gone        string
		kept        string
	}{
		{"display_none", `<div style="display:none">Preheader text</div><p>Order placed</p>`, 1, "Preheader", "Order placed"},
		{"display_none_spaced", `<div style="color: red; display: none !important">Preheader</div><p>Order placed</p>`, 1, "Preheader", "Order placed"},
		{"visibility_hidden", `<span style="visibility:hidden">spacer</span><p>Shipped</p>`, 1, "spacer", "Shipped"},
		{"hidden_attribute", `<div hidden>secret</div><p>Shipped</p>`, 1, "secret", "Shipped"},
		{"aria_hidden", `<span aria-hidden="true">icon</span><p>Shipped</p>`, 1, "icon", "Shipped"},
		{"max_height_zero", `<div style="max-height:0;overflow:hidden">teaser</div><p>Shipped</p>`, 1, "teaser", "Shipped"},
		{"font_size_zero", `<div style="font-size:0px;">filler</div><p>Shipped</p>`, 1, "filler", "Shipped"},
		{"mso_hide", `<div style="mso-hide:all">outlook only</div><p>Shipped</p>`, 1, "outlook only", "Shipped"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, removed := StripHidden(tt.input)
			if removed != tt.wantRemoved {
				t.Errorf("removed = %d, want %d", removed, tt.wantRemoved)
			}
			if strings.Contains(got, tt.gone) {
				t.Errorf("output still contains %q: %s", tt.gone, got)
			}
			if !strings.Contains(got, tt.kept) {
				t.Errorf("output lost %q: %s", tt.kept, got)
			}
		})
	}
}

func TestStripHidden_VisibleStylesKept(t *testing.T) {
	inputs := []string{
		`<p style="font-size:10px">Order placed</p>`,
		`<p style="font-size:0.9em">Order placed</p>`,
		`<p style="max-height:100px">Order placed</p>`,
		`<p style="display:block">Order placed</p>`,
	}
	for _, in := range inputs {
		got, removed := StripHidden(in)
		if removed != 0 || got != in {
			t.Errorf("StripHidden(%q) = %q, %d; want unchanged", in, got, removed)
		}
	}
}

func TestStripHidden_PlainTextUnchanged(t *testing.T) {
	in := "no markup at all"
	got, removed := StripHidden(in)
	if got != in || removed != 0 {
		t.Errorf("StripHidden(%q) = %q, %d", in, got, removed)
	}
}

func TestHiddenCleaner_BeforeTags(t *testing.T) {
	c := NewChain(NewHidden(), NewTags(), NewWhitespace(), NewEntities())
	got, err := c.Clean(`<div style="display:none">Your order is confirmed &amp; more</div><p>Tom &amp; Jerry DVD</p>`)
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}
	if got != "Tom & Jerry DVD" {
		t.Errorf("Clean() = %q, want %q", got, "Tom & Jerry DVD")
	}
}

func TestStripHidden_ReferencesKeptAsWritten(t *testing.T) {
	got, removed := StripHidden(`<div hidden>x</div><p title="A &amp; B">Tom &amp; Jerry &hearts; &#0; &bogus; &lt;b&gt;</p><script>if (a &amp;&amp; b) {}</script>`)
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	for _, want := range []string{
		`title="A &amp; B"`,
		"Tom &amp; Jerry &hearts; &#0; &bogus; &lt;b&gt;",
		"if (a &amp;&amp; b) {}",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q: %s", want, got)
		}
	}
}

func TestHiddenCleaner_OutputIndependentOfHiddenElements(t *testing.T) {
	chain := NewChain(NewHidden(), NewTags(), NewWhitespace(), NewEntities(), NewGarbage())
	body := `<p>&hearts; &#0; &bogus;</p>`

	plain, err := chain.Clean(body)
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}
	withHidden, err := chain.Clean(`<div style="display:none">pre</div>` + body)
	if err != nil {
		t.Fatalf("Clean() error = %v", err)
	}
	if withHidden != plain {
		t.Errorf("hidden element changed the visible text: %q, want %q", withHidden, plain)
	}
	if plain != "&hearts; &#0; &bogus;" {
		t.Errorf("Clean() = %q, want references left literal", plain)
	}
}

func TestHiddenCleaner_Name(t *testing.T) {
	if got := NewHidden().Name(); got != "hidden" {
		t.Errorf("Name() = %q, want %q", got, "hidden")
	}
}
