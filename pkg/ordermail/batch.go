package ordermail

import (
	"context"
	"sync"
	"time"

	"github.com/jmylchreest/ordermail/internal/logger"
)

// BatchResult is the outcome of one input in a batch.
type BatchResult struct {
	// Index is the position of the input in the slice given to ProcessBatch.
	Index  int     `json:"index" yaml:"index"`
	Result *Result `json:"result" yaml:"result"`
}

// ProcessBatch processes inputs concurrently and streams results as they
// complete, in no particular order. At most concurrency inputs are in flight.
// Once ctx is cancelled no new inputs are started; results of inputs already
// running may be dropped. The channel is closed when all work has stopped.
func (p *Pipeline) ProcessBatch(ctx context.Context, inputs []Input, concurrency int) <-chan BatchResult {
	if concurrency < 1 {
		concurrency = 1
	}
	results := make(chan BatchResult, concurrency)

	go func() {
		defer close(results)
		p.processBatch(ctx, inputs, concurrency, results)
	}()

	return results
}

func (p *Pipeline) processBatch(ctx context.Context, inputs []Input, concurrency int, results chan<- BatchResult) {
	start := time.Now()
	logger.DebugContext(ctx, "batch starting", "inputs", len(inputs), "concurrency", concurrency)

	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup
	started := 0

	defer func() {
		wg.Wait()
		logger.DebugContext(ctx, "batch complete", "started", started, "inputs", len(inputs), "duration", time.Since(start))
	}()

	for i, in := range inputs {
		if ctx.Err() != nil {
			logger.DebugContext(ctx, "batch cancelled", "started", started, "error", ctx.Err())
			return
		}

		// Acquire semaphore
		select {
		case <-ctx.Done():
			logger.DebugContext(ctx, "batch cancelled", "started", started, "error", ctx.Err())
			return
		case sem <- struct{}{}:
		}
		wg.Add(1)
		started++

		go func(i int, in Input) {
			defer wg.Done()
			defer func() { <-sem }()

			res := p.ProcessInput(in)
			for _, w := range res.Warnings {
				logger.DebugContext(ctx, "email warning", "index", i, "id", in.ID, "warning", w.String())
			}

			select {
			case results <- BatchResult{Index: i, Result: res}:
			case <-ctx.Done():
			}
		}(i, in)
	}
}
