package ordermail

import (
	"strings"
	"testing"

	"github.com/dustin/go-humanize"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.MaxInputBytes != 2*humanize.MiByte {
		t.Errorf("MaxInputBytes = %d, want 2 MiB", cfg.MaxInputBytes)
	}
	if !cfg.StripHidden {
		t.Error("StripHidden should be on by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestConfigMerge(t *testing.T) {
	base := DefaultConfig()
	base.ExtraBoilerplate = []string{"a"}

	t.Run("nil returns receiver", func(t *testing.T) {
		if got := base.Merge(nil); got != base {
			t.Error("Merge(nil) should return the receiver")
		}
	})

	t.Run("overrides and appends", func(t *testing.T) {
		merged := base.Merge(&Config{
			MaxInputBytes:    512,
			ExtraBoilerplate: []string{"a", "b"},
			PatternFiles:     []string{"p.yaml"},
		})
		if merged.MaxInputBytes != 512 {
			t.Errorf("MaxInputBytes = %d, want 512", merged.MaxInputBytes)
		}
		if strings.Join(merged.ExtraBoilerplate, ",") != "a,b" {
			t.Errorf("ExtraBoilerplate = %v, want [a b]", merged.ExtraBoilerplate)
		}
		if len(merged.PatternFiles) != 1 {
			t.Errorf("PatternFiles = %v", merged.PatternFiles)
		}
		if !merged.StripHidden {
			t.Error("StripHidden should be kept from base")
		}
	})

	t.Run("does not mutate receiver", func(t *testing.T) {
		base.Merge(&Config{ExtraBoilerplate: []string{"c"}})
		if len(base.ExtraBoilerplate) != 1 {
			t.Errorf("base.ExtraBoilerplate = %v, want [a]", base.ExtraBoilerplate)
		}
	})
}

func TestStats(t *testing.T) {
	s := NewStats()
	s.InputBytes = 1000
	s.OutputBytes = 250
	s.LinesDropped["url"] = 2
	s.LinesDropped["css"] = 1
	s.addStage("tags", "abc", 0)

	if got := s.ReductionPercent(); got != 75 {
		t.Errorf("ReductionPercent() = %v, want 75", got)
	}
	if got := s.TotalLinesDropped(); got != 3 {
		t.Errorf("TotalLinesDropped() = %d, want 3", got)
	}

	out := s.String()
	for _, want := range []string{"1.0 kB -> 250 B", "75.0% reduction", "css=1, url=2", "tags"} {
		if !strings.Contains(out, want) {
			t.Errorf("String() missing %q:\n%s", want, out)
		}
	}

	if (&Stats{}).ReductionPercent() != 0 {
		t.Error("ReductionPercent() on empty stats should be 0")
	}
}

func TestWarningString(t *testing.T) {
	tests := []struct {
		w    Warning
		want string
	}{
		{Warning{Phase: "input", Message: "input truncated", Context: "2 MB"}, "[input] input truncated (context: 2 MB)"},
		{Warning{Phase: "extract", Message: "no order fields found"}, "[extract] no order fields found"},
	}
	for _, tt := range tests {
		if got := tt.w.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
