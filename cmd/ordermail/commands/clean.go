package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/ordermail/internal/logger"
	"github.com/jmylchreest/ordermail/internal/output"
	"github.com/jmylchreest/ordermail/pkg/ordermail"
	"github.com/jmylchreest/ordermail/pkg/platform"
)

// cleanedEmail is the structured form of clean output.
type cleanedEmail struct {
	ID       string            `json:"id" yaml:"id"`
	Platform platform.Platform `json:"platform" yaml:"platform"`
	Text     string            `json:"text" yaml:"text"`
	Stats    *ordermail.Stats  `json:"stats,omitempty" yaml:"stats,omitempty"`
}

var cleanCmd = &cobra.Command{
	Use:   "clean [file...]",
	Short: "Clean order emails to plain text",
	Long: `Clean runs each email through encoding repair, hidden element removal,
tag stripping, whitespace normalization, entity decoding, boilerplate
removal and the retailer's post-processing rules.

Reads stdin when no files are given.

Examples:
  ordermail clean -p flipkart order.html
  cat order.html | ordermail clean -p amazon --stats
  ordermail clean -p myntra --format jsonl -o cleaned.jsonl mails/*.html`,
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)
	cleanCmd.Flags().Bool("stats", false, "print cleaning statistics to stderr (included in structured output)")
}

func runClean(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	format, err := output.ParseFormat(viper.GetString("format"))
	if err != nil {
		return err
	}
	showStats, _ := cmd.Flags().GetBool("stats")
	pl := platform.Parse(viper.GetString("platform"))

	p, err := newPipeline()
	if err != nil {
		logger.Error("failed to initialize", "error", err)
		return err
	}

	inputs, err := readInputs(args, cmd.InOrStdin(), pl, time.Time{})
	if err != nil {
		return err
	}
	logger.Debug("clean starting", "inputs", len(inputs), "platform", pl)

	outPath, _ := cmd.Flags().GetString("output")
	writer, closeWriter, err := openOutput(outPath, format, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer func() { _ = closeWriter() }()

	results := processAll(ctx, p, inputs, viper.GetInt("concurrency"))
	for _, res := range results {
		if res == nil {
			continue
		}
		logWarnings(res)
		if showStats {
			logInfo("%s:\n%s", res.ID, res.Stats)
		}

		var item any = res.Text
		if format != output.FormatText {
			out := cleanedEmail{ID: res.ID, Platform: res.Platform, Text: res.Text}
			if showStats {
				out.Stats = res.Stats
			}
			item = out
		}
		if err := writer.Write(item); err != nil {
			logger.Error("failed to write output", "error", err)
			return err
		}
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("clean interrupted: %w", err)
	}
	return closeWriter()
}
