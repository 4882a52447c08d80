package ordermail

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/ordermail/pkg/extractor"
	"github.com/jmylchreest/ordermail/pkg/platform"
)

// StageStat records what one cleaning stage produced.
type StageStat struct {
	Name        string        `json:"name" yaml:"name"`
	OutputBytes int           `json:"output_bytes" yaml:"output_bytes"`
	Duration    time.Duration `json:"duration_ns" yaml:"duration_ns"`
}

// Stats captures metrics about one processed email.
type Stats struct {
	InputBytes  int  `json:"input_bytes" yaml:"input_bytes"`
	OutputBytes int  `json:"output_bytes" yaml:"output_bytes"`
	Truncated   bool `json:"truncated,omitempty" yaml:"truncated,omitempty"`

	HiddenRemoved int            `json:"hidden_removed,omitempty" yaml:"hidden_removed,omitempty"`
	LinesDropped  map[string]int `json:"lines_dropped,omitempty" yaml:"lines_dropped,omitempty"` // rule -> count

	FieldsExtracted int `json:"fields_extracted" yaml:"fields_extracted"`

	Stages          []StageStat   `json:"stages" yaml:"stages"`
	ExtractDuration time.Duration `json:"extract_duration_ns" yaml:"extract_duration_ns"`
	TotalDuration   time.Duration `json:"total_duration_ns" yaml:"total_duration_ns"`
}

// NewStats creates a Stats instance with initialized maps.
func NewStats() *Stats {
	return &Stats{
		LinesDropped: make(map[string]int),
	}
}

// ReductionPercent returns the percentage reduction in size.
func (s *Stats) ReductionPercent() float64 {
	if s.InputBytes == 0 {
		return 0
	}
	return float64(s.InputBytes-s.OutputBytes) / float64(s.InputBytes) * 100
}

// TotalLinesDropped returns the sum of lines dropped by every rule.
func (s *Stats) TotalLinesDropped() int {
	total := 0
	for _, n := range s.LinesDropped {
		total += n
	}
	return total
}

func (s *Stats) addStage(name string, output string, d time.Duration) {
	s.Stages = append(s.Stages, StageStat{Name: name, OutputBytes: len(output), Duration: d})
}

// String returns a human-readable summary of the stats.
func (s *Stats) String() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Size: %s -> %s (%.1f%% reduction)\n",
		humanize.Bytes(uint64(s.InputBytes)), humanize.Bytes(uint64(s.OutputBytes)), s.ReductionPercent()))

	if s.Truncated {
		sb.WriteString("Input was truncated\n")
	}
	if s.HiddenRemoved > 0 {
		sb.WriteString(fmt.Sprintf("Hidden elements removed: %d\n", s.HiddenRemoved))
	}

	if len(s.LinesDropped) > 0 {
		rules := make([]string, 0, len(s.LinesDropped))
		for rule := range s.LinesDropped {
			rules = append(rules, rule)
		}
		sort.Strings(rules)
		parts := make([]string, len(rules))
		for i, rule := range rules {
			parts[i] = fmt.Sprintf("%s=%d", rule, s.LinesDropped[rule])
		}
		sb.WriteString(fmt.Sprintf("Lines dropped: %d (%s)\n", s.TotalLinesDropped(), strings.Join(parts, ", ")))
	}

	sb.WriteString(fmt.Sprintf("Fields extracted: %d\n", s.FieldsExtracted))

	for _, st := range s.Stages {
		sb.WriteString(fmt.Sprintf("  %-22s %10s %v\n", st.Name, humanize.Bytes(uint64(st.OutputBytes)), st.Duration.Round(time.Microsecond)))
	}
	sb.WriteString(fmt.Sprintf("Timing: extract=%v, total=%v\n",
		s.ExtractDuration.Round(time.Microsecond),
		s.TotalDuration.Round(time.Microsecond)))

	return sb.String()
}

// Warning represents a non-fatal issue encountered while processing.
type Warning struct {
	Phase   string `json:"phase" yaml:"phase"`                         // "input", "hidden", "extract"
	Message string `json:"message" yaml:"message"`                     // Human-readable description
	Context string `json:"context,omitempty" yaml:"context,omitempty"` // Value that caused the issue
}

// String returns a formatted warning message.
func (w Warning) String() string {
	if w.Context != "" {
		return fmt.Sprintf("[%s] %s (context: %s)", w.Phase, w.Message, w.Context)
	}
	return fmt.Sprintf("[%s] %s", w.Phase, w.Message)
}

// Result is the output of processing one email.
type Result struct {
	ID       string            `json:"id,omitempty" yaml:"id,omitempty"`
	Platform platform.Platform `json:"platform" yaml:"platform"`

	// Text is the cleaned, platform post-processed text.
	Text string `json:"text" yaml:"text"`

	// Record holds the extracted order fields. An empty record means
	// extraction was inconclusive.
	Record extractor.Record `json:"record" yaml:"record"`

	Stats    *Stats    `json:"stats,omitempty" yaml:"stats,omitempty"`
	Warnings []Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// AddWarning adds a warning to the result.
func (r *Result) AddWarning(phase, message, context string) {
	r.Warnings = append(r.Warnings, Warning{
		Phase:   phase,
		Message: message,
		Context: context,
	})
}

// HasWarnings returns true if any warnings were recorded.
func (r *Result) HasWarnings() bool {
	return len(r.Warnings) > 0
}
