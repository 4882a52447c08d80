package cleaner

import (
	"strings"
	"testing"
)

func TestRepairEncoding(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"clean_text", "Order shipped", "Order shipped"},
		{"double_rupee", "Total: â‚¹1,299", "Total: ₹1,299"},
		{"double_euro", "â‚¬20", "€20"},
		{"double_apostrophe", "Itâ€™s on its way", "It's on its way"},
		{"triple_apostrophe", "ItÃ¢â‚¬â„¢s on its way", "It's on its way"},
		{"dropped_closing_quote", "â€œFragileâ€", `"Fragile"`},
		{"en_dash", "Mouse â€“ Black", "Mouse – Black"},
		{"ellipsis", "and moreâ€¦", "and more..."},
		{"copyright", "Â© 2024", "© 2024"},
		{"latin_letter", "CafÃ©", "Café"},
		{"nbsp", "Qty:Â\u00a01", "Qty: 1"},
		{"rs_prefix", "Rs. 2,500", "₹2,500"},
		{"rs_no_dot", "Rs 499", "₹499"},
		{"inr_prefix", "INR 1,000", "₹1,000"},
		{"rs_not_before_number", "Rs. only", "Rs. only"},
		{"rs_inside_word", "MRs 10", "MRs 10"},
		{"invalid_utf8_dropped", "ok\xff\xfe", "ok"},
		{"repair_joins_times_sign", "2 Ãâ€” 500ml", "2 × 500ml"},
		{"repair_joins_latin_letter", "CafÃÂ©", "Café"},
		{"repair_joins_copyright", "ÂÂ© 2024", "© 2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RepairEncoding(tt.input); got != tt.want {
				t.Errorf("RepairEncoding(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRepairEncoding_NFC(t *testing.T) {
	decomposed := "Cafe\u0301"
	if got := RepairEncoding(decomposed); got != "Caf\u00e9" {
		t.Errorf("RepairEncoding(%q) = %q, want composed form", decomposed, got)
	}
}

func TestRepairTable_LongestFirst(t *testing.T) {
	table := RepairTable()
	if len(table) == 0 {
		t.Fatal("repair table is empty")
	}
	for i := 1; i < len(table); i++ {
		prev := len([]rune(table[i-1][0]))
		cur := len([]rune(table[i][0]))
		if cur > prev {
			t.Fatalf("entry %d (%q) is longer than entry %d (%q)", i, table[i][0], i-1, table[i-1][0])
		}
	}
}

func TestRepairTable_TripleBeforeDouble(t *testing.T) {
	table := RepairTable()
	pos := make(map[string]int, len(table))
	for i, rule := range table {
		pos[rule[0]] = i
	}

	double, triple := "â€™", "Ã¢â‚¬â„¢"
	di, ok := pos[double]
	if !ok {
		t.Fatalf("table has no rule for %q", double)
	}
	ti, ok := pos[triple]
	if !ok {
		t.Fatalf("table has no rule for %q", triple)
	}
	if ti > di {
		t.Errorf("triple-encoded rule at %d comes after double-encoded rule at %d", ti, di)
	}
}

func TestRepairTable_Stable(t *testing.T) {
	table := RepairTable()
	for _, out := range table {
		for _, in := range table {
			if strings.Contains(out[1], in[0]) {
				t.Errorf("output %q of %q contains key %q", out[1], out[0], in[0])
			}
		}
		if again := RepairEncoding(out[1]); again != out[1] {
			t.Errorf("repairing output %q again gave %q", out[1], again)
		}
	}
}

func TestRepairTable_ReturnsCopy(t *testing.T) {
	table := RepairTable()
	table[0][1] = "mutated"
	if RepairTable()[0][1] == "mutated" {
		t.Error("RepairTable() exposed the package table")
	}
}

func TestRepairEncoding_Idempotent(t *testing.T) {
	inputs := []string{
		"Total: â‚¹1,299 â€“ ItÃ¢â‚¬â„¢s here",
		"Rs. 2,500 and INR 10",
		"â€œquotedâ€ CafÃ© Â© â„¢",
		"plain ascii",
		"Ãâ€” ÃÂ© ÂÂ©",
	}
	for _, in := range inputs {
		once := RepairEncoding(in)
		if twice := RepairEncoding(once); twice != once {
			t.Errorf("RepairEncoding not idempotent on %q: %q then %q", in, once, twice)
		}
	}
}

func TestEncodingCleaner_Name(t *testing.T) {
	if got := NewEncoding().Name(); got != "encoding" {
		t.Errorf("Name() = %q, want %q", got, "encoding")
	}
}
