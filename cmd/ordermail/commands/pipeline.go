package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/dustin/go-humanize"
	"github.com/spf13/viper"

	"github.com/jmylchreest/ordermail/internal/logger"
	"github.com/jmylchreest/ordermail/internal/output"
	"github.com/jmylchreest/ordermail/pkg/ordermail"
	"github.com/jmylchreest/ordermail/pkg/platform"
)

// stdinName is the input name used for content read from stdin.
const stdinName = "-"

// pipelineConfig builds the pipeline configuration from the config file's
// pipeline section, then applies flags and environment overrides.
func pipelineConfig() (*ordermail.Config, error) {
	cfg := ordermail.DefaultConfig()

	var fileCfg ordermail.Config
	if err := viper.UnmarshalKey("pipeline", &fileCfg); err != nil {
		return nil, fmt.Errorf("invalid pipeline config: %w", err)
	}
	cfg = cfg.Merge(&fileCfg)
	if viper.IsSet("pipeline.strip_hidden") {
		cfg.StripHidden = fileCfg.StripHidden
	}
	if viper.IsSet("pipeline.max_input_bytes") {
		cfg.MaxInputBytes = fileCfg.MaxInputBytes
	}

	cfg = cfg.Merge(&ordermail.Config{
		PatternFiles:     viper.GetStringSlice("patterns"),
		ExtraBoilerplate: viper.GetStringSlice("boilerplate"),
	})
	if viper.GetBool("no_hidden") {
		cfg.StripHidden = false
	}

	if s := strings.TrimSpace(viper.GetString("max_input_size")); s != "" {
		n, err := parseSize(s)
		if err != nil {
			return nil, err
		}
		cfg.MaxInputBytes = n
	}

	return cfg, nil
}

// parseSize parses a human-readable byte size; "0" means unlimited.
func parseSize(s string) (int, error) {
	if s == "0" {
		return 0, nil
	}
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("invalid max-input-size %q: %w", s, err)
	}
	return int(n), nil
}

// newPipeline creates the pipeline for a command run.
func newPipeline() (*ordermail.Pipeline, error) {
	cfg, err := pipelineConfig()
	if err != nil {
		return nil, err
	}
	logger.Debug("pipeline config",
		"max_input_bytes", cfg.MaxInputBytes,
		"strip_hidden", cfg.StripHidden,
		"pattern_files", cfg.PatternFiles,
		"boilerplate", len(cfg.ExtraBoilerplate))

	p, err := ordermail.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create pipeline: %w", err)
	}
	return p, nil
}

// parseReceived parses the --received flag. "now" uses the current time;
// anything else goes through dateparse.
func parseReceived(s string) (time.Time, error) {
	switch strings.TrimSpace(strings.ToLower(s)) {
	case "":
		return time.Time{}, nil
	case "now":
		return time.Now(), nil
	}
	t, err := dateparse.ParseAny(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid received time %q: %w", s, err)
	}
	return t, nil
}

// readInputs loads each named file, or stdin when no names are given or a
// name is "-".
func readInputs(names []string, stdin io.Reader, pl platform.Platform, received time.Time) ([]ordermail.Input, error) {
	if len(names) == 0 {
		names = []string{stdinName}
	}

	inputs := make([]ordermail.Input, 0, len(names))
	for _, name := range names {
		var (
			data []byte
			err  error
		)
		if name == stdinName {
			data, err = io.ReadAll(stdin)
		} else {
			data, err = os.ReadFile(name) //#nosec G304 -- CLI tool reads user-specified input files
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}

		id := name
		if name != stdinName {
			id = filepath.Base(name)
		}
		inputs = append(inputs, ordermail.Input{
			ID:       id,
			HTML:     string(data),
			Platform: pl,
			Received: received,
		})
		logger.Debug("input loaded", "id", id, "size", humanize.Bytes(uint64(len(data))))
	}
	return inputs, nil
}

// processAll runs inputs through the pipeline and returns results in input
// order. Results missing after cancellation are nil.
func processAll(ctx context.Context, p *ordermail.Pipeline, inputs []ordermail.Input, concurrency int) []*ordermail.Result {
	results := make([]*ordermail.Result, len(inputs))
	for br := range p.ProcessBatch(ctx, inputs, concurrency) {
		results[br.Index] = br.Result
	}
	return results
}

// openOutput returns the output writer and a function releasing it. The
// release function may be called more than once.
func openOutput(path string, format output.Format, stdout io.Writer) (output.Writer, func() error, error) {
	dst := stdout
	var file *os.File
	if path != "" {
		f, err := os.Create(path) //#nosec G304 -- CLI tool writes to user-specified output file
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create output file: %w", err)
		}
		file = f
		dst = f
	}

	sep := ""
	if format == output.FormatText {
		sep = "----"
	}
	w, err := output.NewWriter(dst, format, output.WithSeparator(sep))
	if err != nil {
		if file != nil {
			_ = file.Close()
		}
		return nil, nil, err
	}

	closed := false
	closeFn := func() error {
		if closed {
			return nil
		}
		closed = true
		err := w.Close()
		if file != nil {
			if cerr := file.Close(); err == nil {
				err = cerr
			}
		}
		return err
	}
	return w, closeFn, nil
}

// logWarnings reports per-email warnings on stderr.
func logWarnings(res *ordermail.Result) {
	for _, w := range res.Warnings {
		logger.Warn("email warning", "id", res.ID, "phase", w.Phase, "message", w.Message, "context", w.Context)
	}
}
