package progressport

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"gitlab.com/markorv.net/isaharness/internal/core/ports/primary"
	"gitlab.com/markorv.net/isaharness/internal/core/ports/secondary"
	"gitlab.com/markorv.net/isaharness/internal/domain"
)

const (
	runKeyPrefix       = "run:"
	progressExpiration = 24 * time.Hour
)

var _ secondary.ProgressRepository = (*ProgressRepository)(nil)

// ProgressRepository keeps the live state of running batches in Redis
type ProgressRepository struct {
	redisClient *redis.Client
	logger      primary.Logger
}

// NewProgressRepository creates a new Redis progress repository
func NewProgressRepository(redisClient *redis.Client, logger primary.Logger) *ProgressRepository {
	return &ProgressRepository{
		redisClient: redisClient,
		logger:      logger,
	}
}

func casesKey(runID uuid.UUID) string {
	return fmt.Sprintf("%s%s:cases", runKeyPrefix, runID)
}

func statsKey(runID uuid.UUID) string {
	return fmt.Sprintf("%s%s:stats", runKeyPrefix, runID)
}

// Label is the value stored per case: the kind, followed by the failure code
// or the error cause
func Label(o domain.Outcome) string {
	switch o.Kind {
	case domain.OutcomePassed:
		return string(o.Kind)
	case domain.OutcomeFailed:
		return fmt.Sprintf("%s:%d", o.Kind, o.Code)
	default:
		return fmt.Sprintf("%s:%s", o.Kind, o.Cause)
	}
}

// Publish records one finished case and the running totals
func (r *ProgressRepository) Publish(ctx context.Context, runID uuid.UUID, outcome domain.Outcome, stats domain.RunStatistics) error {
	statsJSON, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to marshal run statistics: %w", err)
	}

	_, err = r.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, casesKey(runID), outcome.Case.ID, Label(outcome))
		pipe.Expire(ctx, casesKey(runID), progressExpiration)
		pipe.Set(ctx, statsKey(runID), statsJSON, progressExpiration)
		return nil
	})
	if err != nil {
		r.logger.Error("Failed to publish progress", "runId", runID, "case", outcome.Case.ID, "error", err)
		return fmt.Errorf("failed to publish progress: %w", err)
	}
	return nil
}

// GetProgress returns nil when nothing was published for the run or it
// already expired
func (r *ProgressRepository) GetProgress(ctx context.Context, runID uuid.UUID) (*domain.Progress, error) {
	statsJSON, err := r.redisClient.Get(ctx, statsKey(runID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		r.logger.Error("Failed to get run statistics", "runId", runID, "error", err)
		return nil, fmt.Errorf("failed to get run statistics: %w", err)
	}

	progress := &domain.Progress{RunID: runID.String()}
	if err := json.Unmarshal(statsJSON, &progress.Stats); err != nil {
		return nil, fmt.Errorf("failed to unmarshal run statistics: %w", err)
	}

	cases, err := r.redisClient.HGetAll(ctx, casesKey(runID)).Result()
	if err != nil {
		r.logger.Error("Failed to get case progress", "runId", runID, "error", err)
		return nil, fmt.Errorf("failed to get case progress: %w", err)
	}
	progress.Cases = cases

	return progress, nil
}
