package batch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/numstat/internal/analyzer"
	"github.com/nao1215/numstat/internal/config"
	"github.com/nao1215/numstat/internal/model"
)

// Saver persists an analysis. database.HistoryDB satisfies it.
type Saver interface {
	SaveAnalysis(ctx context.Context, analysis *model.Analysis) (int64, error)
}

// Processor analyses multiple inputs with bounded concurrency.
type Processor struct {
	// concurrency is the maximum number of analyses running at once.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger

	// saver stores successful analyses, nil disables saving.
	saver Saver
}

// Option configures a Processor.
type Option func(*Processor)

// WithConcurrency sets the maximum number of concurrent analyses.
// Non-positive values keep the default.
func WithConcurrency(n int) Option {
	return func(p *Processor) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Processor) {
		p.logger = logger
	}
}

// WithSaver stores every analysis that parsed at least one number.
func WithSaver(s Saver) Option {
	return func(p *Processor) {
		p.saver = s
	}
}

// NewProcessor creates a Processor.
func NewProcessor(opts ...Option) *Processor {
	p := &Processor{
		concurrency: config.DefaultConcurrency,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// Process analyses all inputs and returns the results in input order.
//
// A failed parse is not an error: the analysis carries its error log and a
// nil Summary. The returned error is non-nil only when ctx is cancelled or a
// save fails; slots that never ran are nil.
func (p *Processor) Process(ctx context.Context, inputs []string) ([]*model.Analysis, error) {
	results := make([]*model.Analysis, len(inputs))

	// Each goroutine writes its own index.
	err := p.ProcessWithCallback(ctx, inputs, func(a *model.Analysis, index int) {
		results[index] = a
	})

	return results, err
}

// ProcessWithCallback analyses all inputs and calls callback for each
// completed analysis with its index in inputs. callback runs on the worker
// goroutine and must be safe for concurrent use.
func (p *Processor) ProcessWithCallback(
	ctx context.Context,
	inputs []string,
	callback func(analysis *model.Analysis, index int),
) error {
	p.logger.Info("starting batch analysis",
		"total_inputs", len(inputs),
		"concurrency", p.concurrency,
	)

	startTime := time.Now()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for i, input := range inputs {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			analysis := analyzer.Analyze(input)
			if !analysis.HasNumbers() {
				p.logger.Warn("no valid numbers parsed",
					"index", i+1,
					"input", input,
					"errors", len(analysis.Errors),
				)
			} else if p.saver != nil {
				id, err := p.saver.SaveAnalysis(ctx, analysis)
				if err != nil {
					return fmt.Errorf("failed to save input %d: %w", i+1, err)
				}
				p.logger.Debug("analysis saved", "index", i+1, "id", id)
			}

			callback(analysis, i)
			return nil
		})
	}

	err := g.Wait()

	p.logger.Info("batch analysis complete",
		"total_inputs", len(inputs),
		"elapsed", time.Since(startTime),
	)

	return err
}
