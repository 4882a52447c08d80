// cleaner-compare compares cleaning chains built from the ordermail stages
// on the same input.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/ordermail/pkg/cleaner"
	"github.com/jmylchreest/ordermail/pkg/platform"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: cleaner-compare <file> [platform]\n")
		os.Exit(1)
	}

	data, err := os.ReadFile(os.Args[1]) //#nosec G304 -- developer tool reads a user-specified file
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}
	html := string(data)
	if len(html) == 0 {
		fmt.Fprintf(os.Stderr, "Error: empty input\n")
		os.Exit(1)
	}

	pl := platform.Generic
	if len(os.Args) > 2 {
		pl = platform.Parse(os.Args[2])
	}

	fmt.Printf("Input: %s, platform %s\n\n", humanize.Bytes(uint64(len(html))), pl)
	fmt.Printf("%-32s %10s %8s %10s\n", "Cleaner", "Output", "Reduce%", "Time")
	fmt.Printf("%-32s %10s %8s %10s\n", "-------", "------", "-------", "----")

	cleaners := []struct {
		name    string
		cleaner cleaner.Cleaner
	}{
		{"noop", cleaner.NewNoop()},
		{"tags", cleaner.NewTags()},
		{"tags -> whitespace", cleaner.NewChain(
			cleaner.NewTags(),
			cleaner.NewWhitespace(),
		)},
		{"tags -> whitespace -> entities", cleaner.NewChain(
			cleaner.NewTags(),
			cleaner.NewWhitespace(),
			cleaner.NewEntities(),
		)},
		{"full", cleaner.NewChain(
			cleaner.NewEncoding(),
			cleaner.NewTags(),
			cleaner.NewWhitespace(),
			cleaner.NewEntities(),
			cleaner.NewGarbage(),
		)},
		{"full + hidden", cleaner.NewChain(
			cleaner.NewEncoding(),
			cleaner.NewHidden(),
			cleaner.NewTags(),
			cleaner.NewWhitespace(),
			cleaner.NewEntities(),
			cleaner.NewGarbage(),
		)},
		{"full + hidden + platform", cleaner.NewChain(
			cleaner.NewEncoding(),
			cleaner.NewHidden(),
			cleaner.NewTags(),
			cleaner.NewWhitespace(),
			cleaner.NewEntities(),
			cleaner.NewGarbage(),
			cleaner.NewPlatform(pl),
		)},
	}

	for _, c := range cleaners {
		start := time.Now()
		output, err := c.cleaner.Clean(html)
		duration := time.Since(start)

		if err != nil {
			fmt.Printf("%-32s %10s %8s %10v (error: %v)\n",
				c.name, "ERROR", "-", duration.Round(time.Microsecond), err)
			continue
		}

		reduction := float64(len(html)-len(output)) / float64(len(html)) * 100
		fmt.Printf("%-32s %10d %7.1f%% %10v\n",
			c.name, len(output), reduction, duration.Round(time.Microsecond))
	}
}
