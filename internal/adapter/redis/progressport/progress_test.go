package progressport

import (
	"context"
	"os"
	"testing"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/markorv.net/isaharness/internal/adapter/logging"
	"gitlab.com/markorv.net/isaharness/internal/domain"
	"gitlab.com/markorv.net/isaharness/internal/static/errs"
)

func TestLabel(t *testing.T) {
	tc := domain.TestCase{ID: "c"}

	assert.Equal(t, "PASSED", Label(domain.Passed(tc)))
	assert.Equal(t, "FAILED:3", Label(domain.Failed(tc, 3)))
	assert.Equal(t, "ERRORED:SIGNAL_NOT_FOUND", Label(domain.Errored(tc, domain.CauseSignalNotFound, errs.ErrSignalNotFound)))
}

func TestKeys(t *testing.T) {
	id := uuid.MustParse("6f1c2b8e-0d7a-4f3b-9a55-1c2d3e4f5a6b")

	assert.Equal(t, "run:6f1c2b8e-0d7a-4f3b-9a55-1c2d3e4f5a6b:cases", casesKey(id))
	assert.Equal(t, "run:6f1c2b8e-0d7a-4f3b-9a55-1c2d3e4f5a6b:stats", statsKey(id))
}

// TestPublish needs a scratch redis, e.g. TEST_REDIS_ADDR=localhost:6379
func TestPublish(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	defer client.Close()

	ctx := context.Background()
	repo := NewProgressRepository(client, logging.NewNopLogger())
	runID := uuid.New()

	missing, err := repo.GetProgress(ctx, runID)
	require.NoError(t, err)
	assert.Nil(t, missing)

	var stats domain.RunStatistics
	pass := domain.Passed(domain.TestCase{ID: "a"})
	stats.Add(pass)
	require.NoError(t, repo.Publish(ctx, runID, pass, stats))
	fail := domain.Failed(domain.TestCase{ID: "b"}, 2)
	stats.Add(fail)
	require.NoError(t, repo.Publish(ctx, runID, fail, stats))

	progress, err := repo.GetProgress(ctx, runID)
	require.NoError(t, err)
	require.NotNil(t, progress)
	assert.Equal(t, runID.String(), progress.RunID)
	assert.Equal(t, map[string]string{"a": "PASSED", "b": "FAILED:2"}, progress.Cases)
	assert.Equal(t, stats, progress.Stats)

	ttl, err := client.TTL(ctx, casesKey(runID)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl.Seconds(), 0.0)

	client.Del(ctx, casesKey(runID), statsKey(runID))
}
