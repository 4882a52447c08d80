// Package main is the entry point for the ordermail CLI.
package main

import (
	"os"

	"github.com/jmylchreest/ordermail/cmd/ordermail/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
