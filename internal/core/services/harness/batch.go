package harness

import (
	"context"
	"io"

	"gitlab.com/markorv.net/isaharness/internal/core/ports/primary"
	"gitlab.com/markorv.net/isaharness/internal/core/ports/secondary"
	"gitlab.com/markorv.net/isaharness/internal/core/services/report"
	"gitlab.com/markorv.net/isaharness/internal/domain"
	"gitlab.com/markorv.net/isaharness/internal/schedulerengine"
)

var _ IBatchService = (*BatchService)(nil)

// BatchService runs a selection of cases on the scheduler engine, reports
// every outcome and records the run when persistence is configured.
// runs and progress may be nil.
type BatchService struct {
	engine   *schedulerengine.SchedulerEngine
	runs     secondary.RunRepository
	progress secondary.ProgressRepository
	out      io.Writer
	color    bool
	logger   primary.Logger
}

func NewBatchService(
	engine *schedulerengine.SchedulerEngine,
	runs secondary.RunRepository,
	progress secondary.ProgressRepository,
	out io.Writer,
	color bool,
	logger primary.Logger,
) *BatchService {
	return &BatchService{
		engine:   engine,
		runs:     runs,
		progress: progress,
		out:      out,
		color:    color,
		logger:   logger,
	}
}

// Execute blocks until every case has an outcome and the summary is printed.
// Only a configuration error is returned; everything after the first case
// starts ends up in the run statistics.
func (s *BatchService) Execute(ctx context.Context, cases []domain.TestCase, jobs int) (*domain.Run, error) {
	outcomeCh, err := s.engine.Run(ctx, cases, jobs)
	if err != nil {
		return nil, err
	}

	run := domain.NewRun(jobs)
	s.logger.Info("Run started", "runId", run.ID, "cases", len(cases), "jobs", jobs)
	s.saveRun(ctx, run)

	options := []report.ReporterOption{report.WithColor(s.color)}
	if s.progress != nil {
		options = append(options, report.WithSinks(report.NewProgressSink(run.ID, s.progress, s.logger)))
	}
	reporter := report.NewReporter(s.out, s.logger, options...)
	stats := reporter.Consume(ctx, outcomeCh)
	reporter.PrintSummary()

	status := domain.RunStatusCompleted
	if ctx.Err() != nil {
		status = domain.RunStatusAborted
	}
	run.Finish(stats, status)
	s.logger.Info("Run finished", "runId", run.ID, "status", run.Status,
		"total", stats.Total, "passed", stats.Passed, "failed", stats.Failed, "errored", stats.Errored)

	// the run is recorded even when it was interrupted
	persistCtx := context.WithoutCancel(ctx)
	s.saveRun(persistCtx, run)
	s.saveOutcomes(persistCtx, run, reporter.Outcomes())

	return run, nil
}

func (s *BatchService) saveRun(ctx context.Context, run *domain.Run) {
	if s.runs == nil {
		return
	}
	if err := s.runs.SaveRun(ctx, run); err != nil {
		s.logger.Error("Failed to save run", "runId", run.ID, "error", err)
	}
}

func (s *BatchService) saveOutcomes(ctx context.Context, run *domain.Run, outcomes []domain.Outcome) {
	if s.runs == nil || len(outcomes) == 0 {
		return
	}
	stamped := make([]domain.Outcome, len(outcomes))
	for i, o := range outcomes {
		o.RunID = run.ID
		stamped[i] = o
	}
	if err := s.runs.SaveOutcomes(ctx, run.ID, stamped); err != nil {
		s.logger.Error("Failed to save outcomes", "runId", run.ID, "error", err)
	}
}
