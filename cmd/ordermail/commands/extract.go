package commands

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/ordermail/internal/logger"
	"github.com/jmylchreest/ordermail/internal/output"
	"github.com/jmylchreest/ordermail/pkg/extractor"
	"github.com/jmylchreest/ordermail/pkg/ordermail"
	"github.com/jmylchreest/ordermail/pkg/platform"
)

// errIncomplete is returned by --strict when an email yields no valid record.
var errIncomplete = errors.New("one or more emails produced no order record")

// extractedOrder is the output of extract for one email.
type extractedOrder struct {
	ID       string              `json:"id" yaml:"id"`
	Platform platform.Platform   `json:"platform" yaml:"platform"`
	Record   extractor.Record    `json:"record" yaml:"record"`
	OrderIDs []string            `json:"order_ids,omitempty" yaml:"order_ids,omitempty"`
	Amounts  []string            `json:"amounts,omitempty" yaml:"amounts,omitempty"`
	Warnings []ordermail.Warning `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// String renders the order as "field: value" lines for text output.
func (o extractedOrder) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s (%s)\n", o.ID, o.Platform)
	for _, f := range extractor.Fields() {
		if v, ok := o.Record.Value(f); ok {
			fmt.Fprintf(&sb, "%s: %s\n", f, v)
		}
	}
	if o.Record.Empty() {
		sb.WriteString("no order fields found\n")
	}
	if len(o.OrderIDs) > 0 {
		fmt.Fprintf(&sb, "all order ids: %s\n", strings.Join(o.OrderIDs, ", "))
	}
	if len(o.Amounts) > 0 {
		fmt.Fprintf(&sb, "all amounts: %s\n", strings.Join(o.Amounts, ", "))
	}
	return sb.String()
}

var extractCmd = &cobra.Command{
	Use:   "extract [file...]",
	Short: "Extract order details from order emails",
	Long: `Extract cleans each email and pulls out the order ID, amount, product
name, expected delivery date, carrier and tracking number.

Each field is taken from the first pattern that matches for the platform,
then from the generic patterns. Fields that fail validation are left out.
Delivery dates written without a year need --received.

Reads stdin when no files are given.

Examples:
  ordermail extract -p flipkart order.html
  ordermail extract -p amazon --all --format json shipped.html
  ordermail extract -p myntra --received 2025-03-10 --strict mails/*.html`,
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	flags := extractCmd.Flags()
	flags.Bool("all", false, "also list every order id and amount found in the cleaned text")
	flags.Bool("strict", false, "exit with an error when an email yields no valid record")
	flags.String("received", "", "time the emails were received (e.g., 2025-03-10, now); resolves dates without a year")

	_ = viper.BindPFlag("received", flags.Lookup("received"))
}

func runExtract(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	format, err := output.ParseFormat(viper.GetString("format"))
	if err != nil {
		return err
	}
	all, _ := cmd.Flags().GetBool("all")
	strict, _ := cmd.Flags().GetBool("strict")
	pl := platform.Parse(viper.GetString("platform"))

	received, err := parseReceived(viper.GetString("received"))
	if err != nil {
		return err
	}

	p, err := newPipeline()
	if err != nil {
		logger.Error("failed to initialize", "error", err)
		return err
	}

	inputs, err := readInputs(args, cmd.InOrStdin(), pl, received)
	if err != nil {
		return err
	}
	logger.Debug("extract starting", "inputs", len(inputs), "platform", pl, "received", received)

	outPath, _ := cmd.Flags().GetString("output")
	writer, closeWriter, err := openOutput(outPath, format, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer func() { _ = closeWriter() }()

	incomplete := 0
	for _, res := range processAll(ctx, p, inputs, viper.GetInt("concurrency")) {
		if res == nil {
			continue
		}
		logWarnings(res)

		order := newExtractedOrder(p, res, all)
		if strict {
			if err := checkRecord(res.Record); err != nil {
				logError("%s: %v", res.ID, err)
				incomplete++
			}
		}
		if err := writer.Write(order); err != nil {
			logger.Error("failed to write output", "error", err)
			return err
		}
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("extract interrupted: %w", err)
	}
	if err := closeWriter(); err != nil {
		return err
	}
	if incomplete > 0 {
		return fmt.Errorf("%w (%d of %d)", errIncomplete, incomplete, len(inputs))
	}
	return nil
}

func newExtractedOrder(p *ordermail.Pipeline, res *ordermail.Result, all bool) extractedOrder {
	order := extractedOrder{
		ID:       res.ID,
		Platform: res.Platform,
		Record:   res.Record,
		Warnings: res.Warnings,
	}
	if all {
		order.OrderIDs = p.Extractor().ExtractAllOrderIDs(res.Text, res.Platform)
		for _, a := range p.Extractor().ExtractAllAmounts(res.Text, res.Platform) {
			order.Amounts = append(order.Amounts, extractor.FormatAmount(a))
		}
	}
	return order
}

// checkRecord is the --strict acceptance test for one record.
func checkRecord(rec extractor.Record) error {
	if rec.Empty() {
		return errors.New("no order fields found")
	}
	return rec.Validate()
}
