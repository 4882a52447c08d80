// pattern_table.go - Print the evaluation order of extraction patterns
//
// Usage: go run scripts/pattern_table.go [platform] [pattern-file...]
//
// Example:
//   go run scripts/pattern_table.go flipkart
//   go run scripts/pattern_table.go myntra extra_patterns.yaml

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/jmylchreest/ordermail/pkg/extractor"
	"github.com/jmylchreest/ordermail/pkg/platform"
)

func main() {
	platforms := platform.All()
	var packs []extractor.PatternPack

	if len(os.Args) > 1 {
		platforms = []platform.Platform{platform.Parse(os.Args[1])}
		for _, path := range os.Args[2:] {
			pack, err := extractor.LoadPatternSets(path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			packs = append(packs, pack)
		}
	}

	ext := extractor.New(packs...)

	for _, pl := range platforms {
		fmt.Printf("## %s\n\n", pl)
		fmt.Println("| Field | # | Specificity | Group | Pattern |")
		fmt.Println("|-------|---|-------------|-------|---------|")
		for _, f := range extractor.Fields() {
			for i, p := range ext.Patterns(pl, f) {
				expr := strings.ReplaceAll(p.Expr.String(), "|", `\|`)
				fmt.Printf("| %s | %d | %d | %d | `%s` |\n", f, i+1, p.Specificity, p.Group, expr)
			}
		}
		fmt.Println()
	}
}
