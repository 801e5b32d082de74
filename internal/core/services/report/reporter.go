package report

import (
	"context"
	"fmt"
	"io"

	"github.com/mgutz/ansi"

	"gitlab.com/markorv.net/isaharness/internal/core/ports/primary"
	"gitlab.com/markorv.net/isaharness/internal/core/ports/secondary"
	"gitlab.com/markorv.net/isaharness/internal/domain"
)

var (
	colorPassed  = ansi.ColorCode("green+b")
	colorFailed  = ansi.ColorCode("red+b")
	colorErrored = ansi.ColorCode("yellow+b")
	colorTitle   = ansi.ColorCode("cyan+b")
)

// Reporter is the single writer of the run statistics. It prints one line
// per outcome and a summary once the outcome stream is drained.
type Reporter struct {
	out      io.Writer
	color    bool
	sinks    []secondary.OutcomeSink
	logger   primary.Logger
	stats    domain.RunStatistics
	outcomes []domain.Outcome
}

// ReporterOption configures a Reporter
type ReporterOption func(*Reporter)

// WithColor highlights the labels; only meant for terminals
func WithColor(enabled bool) ReporterOption {
	return func(r *Reporter) {
		r.color = enabled
	}
}

// WithSinks forwards every outcome to the given sinks after it is counted
func WithSinks(sinks ...secondary.OutcomeSink) ReporterOption {
	return func(r *Reporter) {
		r.sinks = append(r.sinks, sinks...)
	}
}

func NewReporter(out io.Writer, logger primary.Logger, options ...ReporterOption) *Reporter {
	r := &Reporter{
		out:    out,
		logger: logger,
	}
	for _, option := range options {
		option(r)
	}
	return r
}

// Consume drains outcomes until the channel is closed and returns the final
// statistics
func (r *Reporter) Consume(ctx context.Context, outcomes <-chan domain.Outcome) domain.RunStatistics {
	for o := range outcomes {
		r.Record(ctx, o)
	}
	return r.stats
}

// Record accounts for a single outcome
func (r *Reporter) Record(ctx context.Context, o domain.Outcome) {
	r.stats.Add(o)
	r.outcomes = append(r.outcomes, o)
	fmt.Fprintln(r.out, r.Line(o))

	// outcomes that already finished are still published after an interrupt
	sinkCtx := context.WithoutCancel(ctx)
	for _, sink := range r.sinks {
		sink.Consume(sinkCtx, o, r.stats)
	}
}

// Line renders an outcome. The label is always the first word so the output
// can be parsed by prefix.
func (r *Reporter) Line(o domain.Outcome) string {
	switch o.Kind {
	case domain.OutcomePassed:
		return fmt.Sprintf("%s %s", r.paint("Passed", colorPassed), o.Case.ID)
	case domain.OutcomeFailed:
		return fmt.Sprintf("%s %s at %d", r.paint("Failed", colorFailed), o.Case.ID, o.Code)
	default:
		return fmt.Sprintf("%s %s", r.paint("Errored", colorErrored), o.Case.ID)
	}
}

// PrintSummary writes the statistics block
func (r *Reporter) PrintSummary() {
	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, r.paint("Statistics", colorTitle))
	fmt.Fprintf(r.out, "Total cases: %d\n", r.stats.Total)
	fmt.Fprintf(r.out, "Passed: %d\n", r.stats.Passed)
	fmt.Fprintf(r.out, "Failed: %d\n", r.stats.Failed)
	fmt.Fprintf(r.out, "Pass rate: %.2f%%\n", r.stats.PassRate())
}

// Outcomes returns the outcomes in arrival order
func (r *Reporter) Outcomes() []domain.Outcome {
	return r.outcomes
}

func (r *Reporter) paint(s, color string) string {
	if !r.color {
		return s
	}
	return color + s + ansi.Reset
}
