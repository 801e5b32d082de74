package harness

import (
	"context"

	"gitlab.com/markorv.net/isaharness/internal/domain"
)

// IHarnessService runs the pipeline of a single test case
type IHarnessService interface {
	// RunCase locates the signal, runs the simulator and decodes the dump.
	// It always returns an outcome; failures become Errored outcomes.
	RunCase(ctx context.Context, tc domain.TestCase) domain.Outcome
}

// IBatchService runs a selection of the catalog and records the run
type IBatchService interface {
	Execute(ctx context.Context, cases []domain.TestCase, jobs int) (*domain.Run, error)
}
