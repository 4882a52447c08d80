// Package commands implements the CLI commands for ordermail.
package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/ordermail/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "ordermail",
	Short: "Clean e-commerce order emails and extract order details",
	Long: `Ordermail turns raw order, shipping and delivery emails into clean
text and a structured order record: order ID, amount, product, expected
delivery date, carrier and tracking number.

Inputs are HTML email bodies read from files or stdin. The retailer is
supplied with --platform; unknown retailers use the generic patterns.

Examples:
  # Clean a Flipkart email and print the text
  ordermail clean -p flipkart order.html

  # Extract order details as JSON
  ordermail extract -p amazon --format json shipped.html

  # Process a directory of emails concurrently, resolving year-less dates
  ordermail extract -p myntra -c 8 --received 2025-03-10 mails/*.html`,
	SilenceUsage:      true,
	PersistentPreRunE: initLogging,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "config file (default $HOME/.ordermail.yaml)")
	flags.Bool("debug", false, "enable debug logging")
	flags.BoolP("quiet", "q", false, "suppress progress output")
	flags.String("log-level", "", "log level: debug, info, warn, error (overrides --debug/--quiet)")
	flags.Bool("log-json", false, "write logs as JSON")

	// Pipeline flags shared by clean and extract
	flags.StringP("platform", "p", "generic", "retailer: amazon, flipkart, myntra, ajio, meesho, nykaa, generic")
	flags.StringSlice("patterns", nil, "extra pattern pack files, YAML or JSON (can be repeated)")
	flags.StringSlice("boilerplate", nil, "extra boilerplate regex removed from cleaned text (can be repeated)")
	flags.Bool("no-hidden", false, "keep hidden elements such as preheaders")
	flags.String("max-input-size", "", "truncate inputs larger than this (e.g., 512KB, 2MiB, 0=unlimited)")
	flags.IntP("concurrency", "c", 4, "emails processed concurrently")
	flags.StringP("output", "o", "", "output file (default: stdout)")
	flags.String("format", "text", "output format: text, json, jsonl, yaml")

	for key, flag := range map[string]string{
		"config":         "config",
		"debug":          "debug",
		"quiet":          "quiet",
		"log_level":      "log-level",
		"log_json":       "log-json",
		"platform":       "platform",
		"patterns":       "patterns",
		"boilerplate":    "boilerplate",
		"no_hidden":      "no-hidden",
		"max_input_size": "max-input-size",
		"concurrency":    "concurrency",
		"format":         "format",
	} {
		_ = viper.BindPFlag(key, flags.Lookup(flag))
	}
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".ordermail")
		viper.SetConfigType("yaml")
	}

	// Environment variables, e.g. ORDERMAIL_MAX_INPUT_SIZE
	viper.SetEnvPrefix("ORDERMAIL")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// Read config file (ignore error if not found)
	_ = viper.ReadInConfig()
}

func initLogging(_ *cobra.Command, _ []string) error {
	err := logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
		Level: viper.GetString("log_level"),
		JSON:  viper.GetBool("log_json"),
	})
	if err != nil {
		return err
	}
	if used := viper.ConfigFileUsed(); used != "" {
		logger.Debug("config loaded", "path", used)
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// logError prints an error message to stderr.
func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}

// logInfo prints an info message to stderr (unless quiet mode).
func logInfo(format string, args ...any) {
	if !viper.GetBool("quiet") {
		fmt.Fprintf(os.Stderr, format+"\n", args...)
	}
}
