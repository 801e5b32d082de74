package schedulerengine

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"gitlab.com/markorv.net/isaharness/internal/core/ports/primary"
	"gitlab.com/markorv.net/isaharness/internal/domain"
	"gitlab.com/markorv.net/isaharness/internal/static/errs"
)

// CaseRunner runs the whole pipeline of one case
type CaseRunner interface {
	RunCase(ctx context.Context, tc domain.TestCase) domain.Outcome
}

// SchedulerEngine spreads test cases over a fixed number of workers
type SchedulerEngine struct {
	runner CaseRunner
	logger primary.Logger
}

func NewSchedulerEngine(runner CaseRunner, logger primary.Logger) *SchedulerEngine {
	return &SchedulerEngine{
		runner: runner,
		logger: logger,
	}
}

// Run starts at most jobs workers. Each worker takes the next case from the
// queue and runs it to completion before taking another. Outcomes are sent
// in completion order; the channel is closed once every case has one.
func (s *SchedulerEngine) Run(ctx context.Context, cases []domain.TestCase, jobs int) (<-chan domain.Outcome, error) {
	if jobs < 1 {
		return nil, fmt.Errorf("%w: worker count must be at least 1, got %d", errs.ErrConfiguration, jobs)
	}
	workerSize := jobs
	if workerSize > len(cases) {
		workerSize = len(cases)
	}

	caseCh := make(chan domain.TestCase)
	outcomeCh := make(chan domain.Outcome, jobs)

	go func() {
		defer close(caseCh)
		for _, tc := range cases {
			caseCh <- tc
		}
	}()

	s.logger.Info("Starting workers", "workers", workerSize, "cases", len(cases))

	var g errgroup.Group
	for i := 0; i < workerSize; i++ {
		worker := i
		g.Go(func() error {
			for tc := range caseCh {
				s.logger.Debug("Case picked up", "worker", worker, "case", tc.ID)
				outcomeCh <- s.runIsolated(ctx, tc)
			}
			return nil
		})
	}

	go func() {
		_ = g.Wait()
		close(outcomeCh)
		s.logger.Info("All cases finished", "cases", len(cases))
	}()

	return outcomeCh, nil
}

// runIsolated turns a panicking pipeline into an Errored outcome for that
// case only
func (s *SchedulerEngine) runIsolated(ctx context.Context, tc domain.TestCase) (outcome domain.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Case pipeline panicked", "case", tc.ID, "panic", r)
			outcome = domain.Errored(tc, domain.CauseInternal, fmt.Errorf("pipeline panic: %v", r))
		}
	}()
	return s.runner.RunCase(ctx, tc)
}
