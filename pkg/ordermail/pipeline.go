// Package ordermail turns the raw HTML body of an order-notification email
// into clean text and a structured order record.
//
// A Pipeline runs the cleaning stages in a fixed order (encoding repair,
// optional hidden-element removal, tag stripping, whitespace normalization,
// entity decoding, garbage filtering), extracts order fields from the cleaned
// text, and finally applies the platform's post-processing rules to the text.
// Processing never fails: degraded input yields degraded output, with
// warnings on the Result.
package ordermail

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/ordermail/pkg/cleaner"
	"github.com/jmylchreest/ordermail/pkg/extractor"
	"github.com/jmylchreest/ordermail/pkg/platform"
)

// Input is one email to process.
type Input struct {
	ID       string            `json:"id,omitempty" yaml:"id,omitempty"`
	HTML     string            `json:"html" yaml:"html"`
	Platform platform.Platform `json:"platform,omitempty" yaml:"platform,omitempty"`

	// Received resolves delivery dates written without a year. Optional.
	Received time.Time `json:"received,omitempty" yaml:"received,omitempty"`
}

// Pipeline processes emails. It holds only read-only state after New and is
// safe for concurrent use.
type Pipeline struct {
	config    *Config
	stages    []cleaner.Cleaner
	platforms map[platform.Platform]*cleaner.PlatformCleaner
	extractor *extractor.Extractor
}

// New creates a Pipeline. A nil config uses DefaultConfig().
// Errors come only from configuration: invalid patterns or unreadable pattern files.
func New(cfg *Config) (*Pipeline, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	extra, err := cfg.boilerplate()
	if err != nil {
		return nil, err
	}

	packs := make([]extractor.PatternPack, 0, len(cfg.PatternFiles))
	for _, path := range cfg.PatternFiles {
		pack, err := extractor.LoadPatternSets(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load patterns: %w", err)
		}
		packs = append(packs, pack)
	}

	stages := []cleaner.Cleaner{cleaner.NewEncoding()}
	if cfg.StripHidden {
		stages = append(stages, cleaner.NewHidden())
	}
	stages = append(stages,
		cleaner.NewTags(),
		cleaner.NewWhitespace(),
		cleaner.NewEntities(),
		cleaner.NewGarbage(extra...),
	)

	platforms := make(map[platform.Platform]*cleaner.PlatformCleaner)
	for _, p := range platform.All() {
		platforms[p] = cleaner.NewPlatform(p)
	}

	return &Pipeline{
		config:    cfg,
		stages:    stages,
		platforms: platforms,
		extractor: extractor.New(packs...),
	}, nil
}

// Config returns the pipeline's configuration.
func (p *Pipeline) Config() *Config {
	return p.config
}

// Extractor returns the extractor used for structured fields.
func (p *Pipeline) Extractor() *extractor.Extractor {
	return p.extractor
}

// Chain returns every text stage for platform pl as one chain, in order.
func (p *Pipeline) Chain(pl platform.Platform) *cleaner.ChainCleaner {
	stages := make([]cleaner.Cleaner, 0, len(p.stages)+1)
	stages = append(stages, p.stages...)
	stages = append(stages, p.platformCleaner(pl))
	return cleaner.NewChain(stages...)
}

func (p *Pipeline) platformCleaner(pl platform.Platform) *cleaner.PlatformCleaner {
	if c, ok := p.platforms[pl]; ok {
		return c
	}
	return p.platforms[platform.Generic]
}

// Clean returns the cleaned text of html.
func (p *Pipeline) Clean(html string, pl platform.Platform) string {
	return p.Process(html, pl).Text
}

// Extract returns the order record found in html.
func (p *Pipeline) Extract(html string, pl platform.Platform) extractor.Record {
	return p.Process(html, pl).Record
}

// Process runs the full pipeline on html.
func (p *Pipeline) Process(html string, pl platform.Platform) *Result {
	return p.ProcessInput(Input{HTML: html, Platform: pl})
}

// ProcessInput runs the full pipeline on one email.
func (p *Pipeline) ProcessInput(in Input) *Result {
	start := time.Now()
	pl := platform.Parse(string(in.Platform))

	result := &Result{ID: in.ID, Platform: pl, Stats: NewStats()}
	result.Stats.InputBytes = len(in.HTML)

	text := in.HTML
	if limit := p.config.MaxInputBytes; limit > 0 && len(text) > limit {
		text = truncateUTF8(text, limit)
		result.Stats.Truncated = true
		result.AddWarning("input", "input truncated", fmt.Sprintf("%s of %s kept",
			humanize.Bytes(uint64(len(text))), humanize.Bytes(uint64(len(in.HTML)))))
	}
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "")
		result.AddWarning("input", "invalid UTF-8 sequences removed", "")
	}

	for _, stage := range p.stages {
		stageStart := time.Now()
		text = p.runStage(stage, text, result)
		result.Stats.addStage(stage.Name(), text, time.Since(stageStart))
	}

	extractStart := time.Now()
	result.Record = p.extractor.Extract(text, pl, extractor.Options{Reference: in.Received})
	result.Stats.ExtractDuration = time.Since(extractStart)
	result.Stats.FieldsExtracted = result.Record.Count()
	if result.Record.Empty() {
		result.AddWarning("extract", "no order fields found", pl.String())
	}

	post := p.platformCleaner(pl)
	postStart := time.Now()
	text, _ = post.Clean(text)
	result.Stats.addStage(post.Name(), text, time.Since(postStart))

	result.Text = text
	result.Stats.OutputBytes = len(text)
	result.Stats.TotalDuration = time.Since(start)
	return result
}

// runStage applies one stage, collecting the stats the stage can report.
func (p *Pipeline) runStage(stage cleaner.Cleaner, text string, result *Result) string {
	switch s := stage.(type) {
	case *cleaner.HiddenCleaner:
		out, removed := cleaner.StripHidden(text)
		result.Stats.HiddenRemoved = removed
		return out
	case *cleaner.GarbageCleaner:
		out, dropped := s.Filter(text)
		for rule, n := range dropped {
			result.Stats.LinesDropped[rule] += n
		}
		return out
	}

	out, err := stage.Clean(text)
	if err != nil {
		result.AddWarning(stage.Name(), "stage failed, passing text through", err.Error())
		return text
	}
	return out
}

// truncateUTF8 cuts s to at most n bytes without splitting a rune.
func truncateUTF8(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
