package report

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/markorv.net/isaharness/internal/core/ports/primary"
	"gitlab.com/markorv.net/isaharness/internal/core/ports/secondary"
	"gitlab.com/markorv.net/isaharness/internal/domain"
)

var _ secondary.OutcomeSink = (*ProgressSink)(nil)

// ProgressSink publishes every outcome of a run to the progress repository.
// Publishing failures are logged and otherwise ignored.
type ProgressSink struct {
	runID  uuid.UUID
	repo   secondary.ProgressRepository
	logger primary.Logger
}

func NewProgressSink(runID uuid.UUID, repo secondary.ProgressRepository, logger primary.Logger) *ProgressSink {
	return &ProgressSink{
		runID:  runID,
		repo:   repo,
		logger: logger,
	}
}

func (p *ProgressSink) Consume(ctx context.Context, outcome domain.Outcome, stats domain.RunStatistics) {
	if err := p.repo.Publish(ctx, p.runID, outcome, stats); err != nil {
		p.logger.Warn("Failed to publish progress", "runId", p.runID, "case", outcome.Case.ID, "error", err)
	}
}
