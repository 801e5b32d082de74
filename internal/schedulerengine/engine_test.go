package schedulerengine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/markorv.net/isaharness/internal/adapter/logging"
	"gitlab.com/markorv.net/isaharness/internal/domain"
	"gitlab.com/markorv.net/isaharness/internal/static/errs"
)

type fakeRunner struct {
	running  int32
	peak     int32
	delay    time.Duration
	mu       sync.Mutex
	started  map[string]int
	override func(tc domain.TestCase) (domain.Outcome, bool)
}

func (f *fakeRunner) RunCase(ctx context.Context, tc domain.TestCase) domain.Outcome {
	n := atomic.AddInt32(&f.running, 1)
	defer atomic.AddInt32(&f.running, -1)
	for {
		peak := atomic.LoadInt32(&f.peak)
		if n <= peak || atomic.CompareAndSwapInt32(&f.peak, peak, n) {
			break
		}
	}

	f.mu.Lock()
	if f.started == nil {
		f.started = make(map[string]int)
	}
	f.started[tc.ID]++
	f.mu.Unlock()

	time.Sleep(f.delay)
	if f.override != nil {
		if o, ok := f.override(tc); ok {
			return o
		}
	}
	return domain.Passed(tc)
}

func makeCases(n int) []domain.TestCase {
	cases := make([]domain.TestCase, n)
	for i := range cases {
		cases[i] = domain.TestCase{ID: fmt.Sprintf("case-%02d", i), Group: domain.ExtensionI}
	}
	return cases
}

func TestRunRespectsWorkerBound(t *testing.T) {
	for _, jobs := range []int{1, 3, 8} {
		t.Run(fmt.Sprintf("jobs=%d", jobs), func(t *testing.T) {
			runner := &fakeRunner{delay: 5 * time.Millisecond}
			engine := NewSchedulerEngine(runner, logging.NewNopLogger())

			outcomes, err := runAll(context.Background(), engine, makeCases(24), jobs)
			require.NoError(t, err)
			assert.Len(t, outcomes, 24)
			assert.LessOrEqual(t, int(atomic.LoadInt32(&runner.peak)), jobs)
			if jobs > 1 {
				assert.Greater(t, int(atomic.LoadInt32(&runner.peak)), 1)
			}
		})
	}
}

func TestEveryCaseRunsExactlyOnce(t *testing.T) {
	runner := &fakeRunner{}
	engine := NewSchedulerEngine(runner, logging.NewNopLogger())
	cases := makeCases(50)

	outcomes, err := runAll(context.Background(), engine, cases, 4)
	require.NoError(t, err)

	seen := make(map[string]int)
	for _, o := range outcomes {
		seen[o.Case.ID]++
	}
	for _, tc := range cases {
		assert.Equal(t, 1, seen[tc.ID], tc.ID)
		assert.Equal(t, 1, runner.started[tc.ID], tc.ID)
	}
}

func TestFailingCaseDoesNotAffectSiblings(t *testing.T) {
	runner := &fakeRunner{
		override: func(tc domain.TestCase) (domain.Outcome, bool) {
			if tc.ID == "case-03" {
				return domain.Errored(tc, domain.CauseProcessFailure, errs.ErrProcessFailure), true
			}
			return domain.Outcome{}, false
		},
	}
	engine := NewSchedulerEngine(runner, logging.NewNopLogger())

	outcomes, err := runAll(context.Background(), engine, makeCases(10), 3)
	require.NoError(t, err)
	require.Len(t, outcomes, 10)
	for _, o := range outcomes {
		if o.Case.ID == "case-03" {
			assert.Equal(t, domain.OutcomeErrored, o.Kind)
			continue
		}
		assert.Equal(t, domain.OutcomePassed, o.Kind, o.Case.ID)
	}
}

func TestPanickingCaseIsIsolated(t *testing.T) {
	runner := &fakeRunner{
		override: func(tc domain.TestCase) (domain.Outcome, bool) {
			if tc.ID == "case-01" {
				panic(errors.New("boom"))
			}
			return domain.Outcome{}, false
		},
	}
	engine := NewSchedulerEngine(runner, logging.NewNopLogger())

	outcomes, err := runAll(context.Background(), engine, makeCases(5), 2)
	require.NoError(t, err)
	require.Len(t, outcomes, 5)

	var stats domain.RunStatistics
	for _, o := range outcomes {
		stats.Add(o)
	}
	assert.Equal(t, domain.RunStatistics{Total: 5, Passed: 4, Failed: 1, Errored: 1}, stats)
}

func TestRunEmptyCatalog(t *testing.T) {
	engine := NewSchedulerEngine(&fakeRunner{}, logging.NewNopLogger())

	outcomes, err := runAll(context.Background(), engine, nil, 4)
	require.NoError(t, err)
	assert.Empty(t, outcomes)
}

func TestRunRejectsBadWorkerCount(t *testing.T) {
	engine := NewSchedulerEngine(&fakeRunner{}, logging.NewNopLogger())

	_, err := engine.Run(context.Background(), makeCases(3), 0)
	assert.ErrorIs(t, err, errs.ErrConfiguration)
}

// runAll drains the outcome channel in completion order
func runAll(ctx context.Context, engine *SchedulerEngine, cases []domain.TestCase, jobs int) ([]domain.Outcome, error) {
	outcomeCh, err := engine.Run(ctx, cases, jobs)
	if err != nil {
		return nil, err
	}
	outcomes := make([]domain.Outcome, 0, len(cases))
	for o := range outcomeCh {
		outcomes = append(outcomes, o)
	}
	return outcomes, nil
}
