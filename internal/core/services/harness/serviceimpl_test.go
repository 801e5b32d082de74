package harness

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gitlab.com/markorv.net/isaharness/internal/adapter/elfsignal"
	"gitlab.com/markorv.net/isaharness/internal/adapter/logging"
	"gitlab.com/markorv.net/isaharness/internal/adapter/ramdump"
	"gitlab.com/markorv.net/isaharness/internal/config"
	"gitlab.com/markorv.net/isaharness/internal/domain"
	"gitlab.com/markorv.net/isaharness/internal/static/errs"
	"gitlab.com/markorv.net/isaharness/internal/testutil"
)

const dumpSize = 0x4000

// fakeSimulator writes a dump holding word at the tohost offset, or fails
// the way a crashing simulator would
type fakeSimulator struct {
	mu        sync.Mutex
	words     map[string]uint16
	exitCodes map[string]int
	noDump    map[string]bool
	shortDump map[string]bool
	calls     []domain.Invocation
	staleSeen []string
}

func newFakeSimulator() *fakeSimulator {
	return &fakeSimulator{
		words:     make(map[string]uint16),
		exitCodes: make(map[string]int),
		noDump:    make(map[string]bool),
		shortDump: make(map[string]bool),
	}
}

func (f *fakeSimulator) Run(_ context.Context, inv domain.Invocation) (domain.Execution, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, inv)

	if _, err := os.Stat(inv.DumpPath); err == nil {
		f.staleSeen = append(f.staleSeen, inv.Case.ID)
	}
	if code := f.exitCodes[inv.Case.ID]; code != 0 {
		return domain.Execution{ExitCode: code}, fmt.Errorf("%w: exit status %d", errs.ErrProcessFailure, code)
	}
	if f.noDump[inv.Case.ID] {
		return domain.Execution{}, nil
	}

	size := dumpSize
	if f.shortDump[inv.Case.ID] {
		size = 16
	}
	offset := int(inv.SignalAddr - domain.LoadBase)
	if err := os.WriteFile(inv.DumpPath, testutil.Dump(size, offset, f.words[inv.Case.ID]), 0o644); err != nil {
		return domain.Execution{ExitCode: -1}, err
	}
	return domain.Execution{}, nil
}

func (f *fakeSimulator) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fixture struct {
	cfg *config.HarnessConfig
	sim *fakeSimulator
	svc *HarnessService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	root := t.TempDir()
	cfg := &config.HarnessConfig{
		TestsPath: filepath.Join(root, "isa"),
		DumpDir:   filepath.Join(root, "dumps"),
		RomPath:   filepath.Join(root, "boot.elf"),
		MaxClock:  0x10000,
		LoadBase:  domain.LoadBase,
		Jobs:      2,
	}
	require.NoError(t, os.MkdirAll(cfg.TestsPath, 0o755))
	require.NoError(t, os.MkdirAll(cfg.DumpDir, 0o755))

	sim := newFakeSimulator()
	svc := NewHarnessService(cfg, elfsignal.NewLocator(), sim, ramdump.NewReader(), logging.NewNopLogger())
	return &fixture{cfg: cfg, sim: sim, svc: svc}
}

// addCase writes a binary with .tohost at 0x80001000 unless noSignal is set
func (f *fixture) addCase(t *testing.T, id string, noSignal bool) domain.TestCase {
	t.Helper()
	sections := []testutil.Section{testutil.TextAt(domain.LoadBase)}
	if !noSignal {
		sections = append(sections, testutil.ToHostAt(domain.LoadBase+0x1000))
	}
	testutil.WriteELF(t, f.cfg.TestsPath, id, sections...)
	return domain.TestCase{ID: id, Group: domain.ExtensionI}
}

func TestRunCasePassed(t *testing.T) {
	f := newFixture(t)
	tc := f.addCase(t, "caseA", false)
	f.sim.words[tc.ID] = 0x0001

	outcome := f.svc.RunCase(context.Background(), tc)

	assert.Equal(t, domain.OutcomePassed, outcome.Kind)
	assert.Equal(t, tc, outcome.Case)
	require.Len(t, f.sim.calls, 1)
	inv := f.sim.calls[0]
	assert.Equal(t, uint64(0x80001000), inv.SignalAddr)
	assert.Equal(t, f.cfg.BinaryPath(tc), inv.RamPath)
	assert.Equal(t, f.cfg.RomPath, inv.RomPath)
	assert.Equal(t, f.cfg.DumpPath(tc), inv.DumpPath)
	assert.Equal(t, uint64(0x10000), inv.MaxClock)
	assert.NoFileExists(t, f.cfg.DumpPath(tc))
}

func TestRunCaseFailedWithCode(t *testing.T) {
	f := newFixture(t)
	tc := f.addCase(t, "caseA", false)
	f.sim.words[tc.ID] = 0x0007

	outcome := f.svc.RunCase(context.Background(), tc)

	assert.Equal(t, domain.OutcomeFailed, outcome.Kind)
	assert.Equal(t, uint16(3), outcome.Code)
	assert.NoFileExists(t, f.cfg.DumpPath(tc))
}

func TestRunCaseProcessFailure(t *testing.T) {
	f := newFixture(t)
	tc := f.addCase(t, "caseA", false)
	f.sim.exitCodes[tc.ID] = 2
	// a dump from an earlier run must not be decoded
	testutil.WriteDump(t, f.cfg.DumpPath(tc), dumpSize, 0x1000, 1)

	outcome := f.svc.RunCase(context.Background(), tc)

	assert.Equal(t, domain.OutcomeErrored, outcome.Kind)
	assert.Equal(t, domain.CauseProcessFailure, outcome.Cause)
	assert.Equal(t, 2, outcome.ExitCode)
	assert.Empty(t, f.sim.staleSeen)
	assert.NoFileExists(t, f.cfg.DumpPath(tc))
}

func TestRunCaseSignalNotFoundSkipsSimulator(t *testing.T) {
	f := newFixture(t)
	tc := f.addCase(t, "caseA", true)

	outcome := f.svc.RunCase(context.Background(), tc)

	assert.Equal(t, domain.OutcomeErrored, outcome.Kind)
	assert.Equal(t, domain.CauseSignalNotFound, outcome.Cause)
	assert.Zero(t, f.sim.callCount())
}

func TestRunCaseMissingBinary(t *testing.T) {
	f := newFixture(t)

	outcome := f.svc.RunCase(context.Background(), domain.TestCase{ID: "missing"})

	assert.Equal(t, domain.OutcomeErrored, outcome.Kind)
	assert.Equal(t, domain.CauseInternal, outcome.Cause)
	assert.Zero(t, f.sim.callCount())
}

func TestRunCaseArtifactFailures(t *testing.T) {
	tests := []struct {
		name  string
		setup func(*fakeSimulator, string)
	}{
		{name: "no dump written", setup: func(s *fakeSimulator, id string) { s.noDump[id] = true }},
		{name: "dump too short", setup: func(s *fakeSimulator, id string) { s.shortDump[id] = true }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tc := f.addCase(t, "caseA", false)
			tt.setup(f.sim, tc.ID)

			outcome := f.svc.RunCase(context.Background(), tc)

			assert.Equal(t, domain.OutcomeErrored, outcome.Kind)
			assert.Equal(t, domain.CauseArtifactRead, outcome.Cause)
			assert.NoFileExists(t, f.cfg.DumpPath(tc))
		})
	}
}

func TestRunCaseSignalBelowLoadBase(t *testing.T) {
	f := newFixture(t)
	testutil.WriteELF(t, f.cfg.TestsPath, "low", testutil.ToHostAt(0x1000))

	outcome := f.svc.RunCase(context.Background(), domain.TestCase{ID: "low"})

	assert.Equal(t, domain.OutcomeErrored, outcome.Kind)
	assert.Equal(t, domain.CauseArtifactRead, outcome.Cause)
	assert.Zero(t, f.sim.callCount())
}

func TestRunCaseKeepDumps(t *testing.T) {
	f := newFixture(t)
	f.cfg.KeepDumps = true
	tc := f.addCase(t, "caseA", false)
	f.sim.words[tc.ID] = 1

	outcome := f.svc.RunCase(context.Background(), tc)

	assert.Equal(t, domain.OutcomePassed, outcome.Kind)
	assert.FileExists(t, f.cfg.DumpPath(tc))
}

func TestRunCaseRemovesStaleDump(t *testing.T) {
	f := newFixture(t)
	tc := f.addCase(t, "caseA", false)
	f.sim.words[tc.ID] = 0x0007
	testutil.WriteDump(t, f.cfg.DumpPath(tc), dumpSize, 0x1000, 1)

	outcome := f.svc.RunCase(context.Background(), tc)

	assert.Empty(t, f.sim.staleSeen)
	assert.Equal(t, domain.OutcomeFailed, outcome.Kind)
}
