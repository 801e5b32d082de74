package secondary

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/markorv.net/isaharness/internal/domain"
)

// RunRepository defines the interface for storing and retrieving runs and
// their per-case outcomes
type RunRepository interface {
	// SaveRun inserts or updates a run
	SaveRun(ctx context.Context, run *domain.Run) error

	// SaveOutcomes stores the outcomes of a run in one batch
	SaveOutcomes(ctx context.Context, runID uuid.UUID, outcomes []domain.Outcome) error

	// GetRun retrieves a run by ID, nil when unknown
	GetRun(ctx context.Context, runID uuid.UUID) (*domain.Run, error)

	// ListRuns retrieves the most recent runs
	ListRuns(ctx context.Context, limit int) ([]*domain.Run, error)

	// GetOutcomes retrieves the outcomes of a run ordered by case id
	GetOutcomes(ctx context.Context, runID uuid.UUID) ([]domain.Outcome, error)
}

// ProgressRepository publishes live progress of a run
type ProgressRepository interface {
	Publish(ctx context.Context, runID uuid.UUID, outcome domain.Outcome, stats domain.RunStatistics) error
	GetProgress(ctx context.Context, runID uuid.UUID) (*domain.Progress, error)
}

// OutcomeSink receives every outcome once, in arrival order
type OutcomeSink interface {
	Consume(ctx context.Context, outcome domain.Outcome, stats domain.RunStatistics)
}
