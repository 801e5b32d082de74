package results

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"gitlab.com/markorv.net/isaharness/internal/core/ports/primary"
	"gitlab.com/markorv.net/isaharness/internal/core/ports/secondary"
	"gitlab.com/markorv.net/isaharness/internal/domain"
	"gitlab.com/markorv.net/isaharness/internal/static/errs"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 200
)

// ErrProgressUnavailable is returned when no progress store is configured
var ErrProgressUnavailable = errors.New("progress store not configured")

// IResultService serves stored runs to the results API
type IResultService interface {
	ListRuns(ctx context.Context, limit int) ([]*domain.Run, error)
	GetRun(ctx context.Context, runID uuid.UUID) (*domain.Run, error)
	GetOutcomes(ctx context.Context, runID uuid.UUID) ([]domain.Outcome, error)
	GetProgress(ctx context.Context, runID uuid.UUID) (*domain.Progress, error)
}

var _ IResultService = (*ResultService)(nil)

type ResultService struct {
	runs     secondary.RunRepository
	progress secondary.ProgressRepository
	logger   primary.Logger
}

// NewResultService creates the service; progress may be nil
func NewResultService(runs secondary.RunRepository, progress secondary.ProgressRepository, logger primary.Logger) *ResultService {
	return &ResultService{
		runs:     runs,
		progress: progress,
		logger:   logger,
	}
}

// ListRuns clamps limit to [1, MaxListLimit]; zero or less means the default
func (s *ResultService) ListRuns(ctx context.Context, limit int) ([]*domain.Run, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	return s.runs.ListRuns(ctx, limit)
}

func (s *ResultService) GetRun(ctx context.Context, runID uuid.UUID) (*domain.Run, error) {
	run, err := s.runs.GetRun(ctx, runID)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrRunNotFound, runID)
	}
	return run, nil
}

func (s *ResultService) GetOutcomes(ctx context.Context, runID uuid.UUID) ([]domain.Outcome, error) {
	if _, err := s.GetRun(ctx, runID); err != nil {
		return nil, err
	}
	return s.runs.GetOutcomes(ctx, runID)
}

func (s *ResultService) GetProgress(ctx context.Context, runID uuid.UUID) (*domain.Progress, error) {
	if s.progress == nil {
		return nil, ErrProgressUnavailable
	}
	progress, err := s.progress.GetProgress(ctx, runID)
	if err != nil {
		return nil, err
	}
	if progress == nil {
		return nil, fmt.Errorf("%w: no progress for %s", errs.ErrRunNotFound, runID)
	}
	return progress, nil
}
