package harness

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"gitlab.com/markorv.net/isaharness/internal/config"
	"gitlab.com/markorv.net/isaharness/internal/core/ports/primary"
	"gitlab.com/markorv.net/isaharness/internal/core/ports/secondary"
	"gitlab.com/markorv.net/isaharness/internal/domain"
	"gitlab.com/markorv.net/isaharness/internal/static/errs"
)

var _ IHarnessService = (*HarnessService)(nil)

// HarnessService implements the per-case pipeline
type HarnessService struct {
	cfg       *config.HarnessConfig
	locator   secondary.SignalLocator
	simulator secondary.Simulator
	dumps     secondary.DumpReader
	logger    primary.Logger
}

// NewHarnessService creates a new harness service
func NewHarnessService(
	cfg *config.HarnessConfig,
	locator secondary.SignalLocator,
	simulator secondary.Simulator,
	dumps secondary.DumpReader,
	logger primary.Logger,
) *HarnessService {
	return &HarnessService{
		cfg:       cfg,
		locator:   locator,
		simulator: simulator,
		dumps:     dumps,
		logger:    logger,
	}
}

// RunCase runs Locate, Invoke and Decode for one case
func (s *HarnessService) RunCase(ctx context.Context, tc domain.TestCase) domain.Outcome {
	start := time.Now()
	outcome := s.runCase(ctx, tc)
	outcome.Duration = time.Since(start)

	if outcome.Kind == domain.OutcomeErrored {
		s.logger.Warn("Case errored", "case", tc.ID, "cause", outcome.Cause, "error", outcome.Detail)
	} else {
		s.logger.Debug("Case finished", "case", tc.ID, "kind", outcome.Kind, "code", outcome.Code, "duration", outcome.Duration)
	}
	return outcome
}

func (s *HarnessService) runCase(ctx context.Context, tc domain.TestCase) domain.Outcome {
	binary := s.cfg.BinaryPath(tc)
	dump := s.cfg.DumpPath(tc)

	section, err := s.locator.Locate(binary)
	if err != nil {
		return domain.Errored(tc, causeOf(err), err)
	}

	offset, err := domain.SignalOffset(section, s.cfg.LoadBase)
	if err != nil {
		err = fmt.Errorf("%w: %v", errs.ErrArtifactRead, err)
		return domain.Errored(tc, causeOf(err), err)
	}

	// a dump left over from an earlier run must never be decoded
	s.removeDump(tc, dump)
	defer s.cleanup(tc, dump)

	execution, err := s.simulator.Run(ctx, domain.Invocation{
		Case:       tc,
		RomPath:    s.cfg.RomPath,
		RamPath:    binary,
		DumpPath:   dump,
		MaxClock:   s.cfg.MaxClock,
		SignalAddr: section.VirtualAddress,
		Timeout:    s.cfg.CaseTimeout,
	})
	if err != nil {
		outcome := domain.Errored(tc, causeOf(err), err)
		outcome.ExitCode = execution.ExitCode
		return outcome
	}

	word, err := s.dumps.ReadSignal(dump, offset)
	if err != nil {
		outcome := domain.Errored(tc, causeOf(err), err)
		outcome.ExitCode = execution.ExitCode
		return outcome
	}

	outcome := domain.Classify(tc, word)
	outcome.ExitCode = execution.ExitCode
	return outcome
}

func (s *HarnessService) cleanup(tc domain.TestCase, dump string) {
	if s.cfg.KeepDumps {
		s.logger.Debug("Keeping ram dump", "case", tc.ID, "path", dump)
		return
	}
	s.removeDump(tc, dump)
}

func (s *HarnessService) removeDump(tc domain.TestCase, dump string) {
	if err := os.Remove(dump); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.logger.Error("Failed to remove ram dump", "case", tc.ID, "path", dump, "error", err)
	}
}

// causeOf maps a pipeline error onto the outcome cause
func causeOf(err error) domain.Cause {
	switch {
	case errors.Is(err, errs.ErrProcessTimeout):
		return domain.CauseProcessTimeout
	case errors.Is(err, errs.ErrProcessFailure):
		return domain.CauseProcessFailure
	case errors.Is(err, errs.ErrSignalNotFound):
		return domain.CauseSignalNotFound
	case errors.Is(err, errs.ErrArtifactRead):
		return domain.CauseArtifactRead
	default:
		return domain.CauseInternal
	}
}
