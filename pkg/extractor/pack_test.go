package extractor

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jmylchreest/ordermail/pkg/platform"
)

const yamlPatterns = `
flipkart:
  - field: order_id
    pattern: '\b(FK\d{6})\b'
    group: 1
    specificity: 100
generic:
  - field: trackingId
    pattern: '(?i)shipment\s+(\d{8})'
    group: 1
    specificity: 90
`

func TestParsePatternSets_YAML(t *testing.T) {
	pack, err := ParsePatternSets([]byte(yamlPatterns), "yaml")
	if err != nil {
		t.Fatalf("ParsePatternSets() error = %v", err)
	}
	if n := len(pack[platform.Flipkart][FieldOrderID]); n != 1 {
		t.Fatalf("flipkart order_id patterns = %d, want 1", n)
	}

	rec := New(pack).Extract("Order ID: FK123456\nShipment 12345678 is on its way", platform.Flipkart, Options{})
	if got := strOf(rec.OrderID); got != "FK123456" {
		t.Errorf("OrderID = %q, want FK123456", got)
	}
	if got := strOf(rec.TrackingID); got != "12345678" {
		t.Errorf("TrackingID = %q, want 12345678", got)
	}
}

func TestLoadPatternSets_JSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patterns.json")
	data := `{"amazon": [{"field": "amount", "pattern": "(?i)you paid\\s+(\\d+)", "group": 1, "specificity": 99}]}`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	pack, err := LoadPatternSets(path)
	if err != nil {
		t.Fatalf("LoadPatternSets() error = %v", err)
	}
	got := New(pack).Patterns(platform.Amazon, FieldAmount)
	if len(got) == 0 || got[0].Specificity != 99 {
		t.Errorf("loaded pattern should lead the amazon amount list, got %+v", got)
	}
}

func TestLoadPatternSets_MissingFile(t *testing.T) {
	if _, err := LoadPatternSets(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadPatternSets() want error for missing file")
	}
}

func TestParsePatternSets_Errors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format string
		want   error
	}{
		{"unknown_platform", "shopify:\n  - {field: order_id, pattern: 'x(\\d+)', group: 1}\n", "yaml", ErrUnknownPlatform},
		{"unknown_field", "generic:\n  - {field: price, pattern: 'x(\\d+)', group: 1}\n", "yaml", ErrUnknownField},
		{"bad_regex", "generic:\n  - {field: order_id, pattern: '(', group: 0}\n", "yaml", ErrInvalidPattern},
		{"group_out_of_range", "generic:\n  - {field: order_id, pattern: 'x', group: 1}\n", "yaml", ErrInvalidPattern},
		{"missing_pattern", "generic:\n  - {field: order_id, group: 0}\n", "yaml", ErrInvalidPattern},
		{"specificity_too_high", "generic:\n  - {field: order_id, pattern: 'x', specificity: 101}\n", "yaml", ErrInvalidPattern},
		{"negative_group", `{"generic": [{"field": "order_id", "pattern": "x", "group": -1}]}`, "json", ErrInvalidPattern},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePatternSets([]byte(tt.data), tt.format)
			if !errors.Is(err, tt.want) {
				t.Errorf("ParsePatternSets() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParsePatternSets_BadInput(t *testing.T) {
	if _, err := ParsePatternSets([]byte("{}"), "toml"); err == nil {
		t.Error("want error for unsupported format")
	}
	if _, err := ParsePatternSets([]byte("{not json"), ".json"); err == nil {
		t.Error("want error for malformed JSON")
	}
}
