// ordermail-trace is a standalone tool for developing cleaning rules and
// extraction patterns against real emails.
//
// Usage:
//
//	ordermail-trace [options] [file]
//
// Examples:
//
//	# Clean an email and show stats and the extracted record
//	ordermail-trace -platform flipkart order.html
//
//	# Show the text after every stage
//	ordermail-trace -platform amazon -stages shipped.html
//
//	# Keep hidden preheaders
//	ordermail-trace -no-hidden order.html
//
//	# Compare every platform's rules on the same email
//	ordermail-trace -compare order.html
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/ordermail/pkg/extractor"
	"github.com/jmylchreest/ordermail/pkg/ordermail"
	"github.com/jmylchreest/ordermail/pkg/platform"
)

var (
	// Pipeline options
	platformName = flag.String("platform", "generic", "Retailer: amazon, flipkart, myntra, ajio, meesho, nykaa, generic")
	noHidden     = flag.Bool("no-hidden", false, "Keep hidden elements")
	patterns     = flag.String("patterns", "", "Comma-separated pattern pack files")
	boilerplate  = flag.String("boilerplate", "", "Comma-separated extra boilerplate regexes")
	received     = flag.String("received", "", "Received date (YYYY-MM-DD) for dates without a year")

	// Output options
	outputFile = flag.String("o", "", "Write cleaned text to file")
	stages     = flag.Bool("stages", false, "Print the text after every stage")
	jsonStats  = flag.Bool("json", false, "Output stats and record as JSON")
	verbose    = flag.Bool("v", false, "Verbose output (show warnings)")
	quiet      = flag.Bool("q", false, "Quiet mode (no stats, only content)")

	// Compare mode
	compare = flag.Bool("compare", false, "Compare every platform on the same input")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "ordermail-trace - Trace the ordermail pipeline on one email\n\n")
		fmt.Fprintf(os.Stderr, "Usage: ordermail-trace [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nReads stdin when no file is given.\n")
	}

	flag.Parse()

	html, source, err := readInput()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(html) == 0 {
		fmt.Fprintf(os.Stderr, "Error: empty input\n")
		os.Exit(1)
	}

	p, err := ordermail.New(buildConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *compare {
		runComparison(p, html, source)
		return
	}

	in := ordermail.Input{ID: source, HTML: html, Platform: platform.Parse(*platformName)}
	if *received != "" {
		var d extractor.Date
		if err := d.UnmarshalText([]byte(*received)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		in.Received = d.Time()
	}

	if *stages {
		if err := printStages(p, in); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	result := p.ProcessInput(in)

	if !*quiet {
		if *jsonStats {
			outputJSON(result, source)
		} else {
			outputText(result, source)
		}
	}

	if *verbose && result.HasWarnings() {
		fmt.Fprintf(os.Stderr, "\nWarnings:\n")
		for _, w := range result.Warnings {
			fmt.Fprintf(os.Stderr, "  %s\n", w.String())
		}
	}

	switch {
	case *outputFile != "":
		if err := os.WriteFile(*outputFile, []byte(result.Text), 0o600); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(1)
		}
		if !*quiet {
			fmt.Fprintf(os.Stderr, "\nWritten to %s\n", *outputFile)
		}
	case *quiet:
		fmt.Println(result.Text)
	case !*jsonStats:
		fmt.Println("\n--- Cleaned Text ---")
		fmt.Println(result.Text)
	}
}

func readInput() (html, source string, err error) {
	if flag.NArg() > 0 {
		path := flag.Arg(0)
		data, err := os.ReadFile(path) //#nosec G304 -- developer tool reads a user-specified file
		if err != nil {
			return "", "", fmt.Errorf("reading file %s: %w", path, err)
		}
		return string(data), path, nil
	}

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), "stdin", nil
}

func buildConfig() *ordermail.Config {
	cfg := ordermail.DefaultConfig()
	cfg.StripHidden = !*noHidden
	cfg.MaxInputBytes = 0
	cfg.PatternFiles = splitList(*patterns)
	cfg.ExtraBoilerplate = splitList(*boilerplate)
	return cfg
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func printStages(p *ordermail.Pipeline, in ordermail.Input) error {
	trace, err := p.Chain(in.Platform).Trace(in.HTML)
	for i, st := range trace {
		fmt.Printf("=== %d. %s (%s) ===\n%s\n\n", i+1, st.Stage, humanize.Bytes(uint64(len(st.Output))), st.Output)
	}
	return err
}

func outputText(result *ordermail.Result, source string) {
	fmt.Fprintf(os.Stderr, "\n=== Ordermail Trace ===\n")
	fmt.Fprintf(os.Stderr, "Source: %s (%s)\n", source, result.Platform)
	fmt.Fprintf(os.Stderr, "%s", result.Stats.String())

	fmt.Fprintf(os.Stderr, "\nRecord:\n")
	for _, f := range extractor.Fields() {
		v, ok := result.Record.Value(f)
		if !ok {
			v = "-"
		}
		fmt.Fprintf(os.Stderr, "  %-18s %s\n", f, v)
	}
}

func outputJSON(result *ordermail.Result, source string) {
	out := struct {
		Source   string              `json:"source"`
		Platform platform.Platform   `json:"platform"`
		Record   extractor.Record    `json:"record"`
		Stats    *ordermail.Stats    `json:"stats"`
		Reduced  float64             `json:"reduction_percent"`
		Warnings []ordermail.Warning `json:"warnings,omitempty"`
	}{
		Source:   source,
		Platform: result.Platform,
		Record:   result.Record,
		Stats:    result.Stats,
		Reduced:  result.Stats.ReductionPercent(),
		Warnings: result.Warnings,
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(out)
}

func runComparison(p *ordermail.Pipeline, html, source string) {
	fmt.Printf("\n=== Platform Comparison for %s ===\n", source)
	fmt.Printf("Input size: %s\n\n", humanize.Bytes(uint64(len(html))))
	fmt.Printf("%-10s %10s %8s %7s %6s %10s\n", "Platform", "Output", "Reduce%", "Dropped", "Fields", "Time")
	fmt.Printf("%-10s %10s %8s %7s %6s %10s\n", "--------", "------", "-------", "-------", "------", "----")

	for _, pl := range platform.All() {
		result := p.Process(html, pl)
		fmt.Printf("%-10s %10d %7.1f%% %7d %6d %10v\n",
			pl,
			result.Stats.OutputBytes,
			result.Stats.ReductionPercent(),
			result.Stats.TotalLinesDropped(),
			result.Record.Count(),
			result.Stats.TotalDuration.Round(time.Microsecond))
	}

	fmt.Println()
}
