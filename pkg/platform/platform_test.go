package platform

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		input    string
		expected Platform
	}{
		{"amazon", Amazon},
		{"Flipkart", Flipkart},
		{"  MYNTRA ", Myntra},
		{"generic", Generic},
		{"", Generic},
		{"ebay", Generic},
		{"amazon.in", Generic},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Parse(tt.input); got != tt.expected {
				t.Errorf("Parse(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestKnown(t *testing.T) {
	for _, p := range All() {
		if !p.Known() {
			t.Errorf("expected %q to be known", p)
		}
	}
	if Platform("shopify").Known() {
		t.Error("expected shopify to be unknown")
	}
}

func TestAllReturnsCopy(t *testing.T) {
	a := All()
	a[0] = "mutated"
	if All()[0] != Amazon {
		t.Error("All() must not expose the internal slice")
	}
}
