package simulator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"time"

	"gitlab.com/markorv.net/isaharness/internal/config"
	"gitlab.com/markorv.net/isaharness/internal/core/ports/primary"
	"gitlab.com/markorv.net/isaharness/internal/core/ports/secondary"
	"gitlab.com/markorv.net/isaharness/internal/domain"
	"gitlab.com/markorv.net/isaharness/internal/static/errs"
)

// killWaitDelay bounds how long Run waits for the output pipes once the
// process group was killed
const killWaitDelay = time.Second

var _ secondary.Simulator = (*Invoker)(nil)

// Invoker runs the simulator binary as a child process
type Invoker struct {
	path     string
	baseArgs []string
	env      []string
	logger   primary.Logger
}

// InvokerOption configures an Invoker
type InvokerOption func(*Invoker)

// WithLauncherArgs puts args in front of the simulator arguments, e.g. to run
// the simulator through a wrapper
func WithLauncherArgs(args ...string) InvokerOption {
	return func(i *Invoker) {
		i.baseArgs = append(i.baseArgs, args...)
	}
}

// WithEnv adds KEY=VALUE pairs to the child environment
func WithEnv(env ...string) InvokerOption {
	return func(i *Invoker) {
		i.env = append(i.env, env...)
	}
}

// NewInvoker creates an invoker for the simulator at path
func NewInvoker(path string, logger primary.Logger, options ...InvokerOption) *Invoker {
	inv := &Invoker{
		path:   path,
		logger: logger,
	}
	for _, option := range options {
		option(inv)
	}
	return inv
}

// Args builds the simulator command line for one case
func Args(inv domain.Invocation) []string {
	return []string{
		"--rom-path", inv.RomPath,
		"--ram-path", inv.RamPath,
		"--max-clock", strconv.FormatUint(inv.MaxClock, 16),
		"--ram-dump", inv.DumpPath,
		"--cleanup-dcache", strconv.FormatUint(inv.SignalAddr, 10),
	}
}

// Run starts the simulator and waits for it. Stdin is the null device so the
// simulator can never wait for input. A zero Timeout waits forever.
func (i *Invoker) Run(ctx context.Context, inv domain.Invocation) (domain.Execution, error) {
	if inv.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, inv.Timeout)
		defer cancel()
	}

	args := append(append([]string{}, i.baseArgs...), Args(inv)...)
	cmd := exec.CommandContext(ctx, i.path, args...)
	cmd.Stdin = nil
	cmd.WaitDelay = killWaitDelay
	isolate(cmd)
	if len(i.env) > 0 {
		cmd.Env = append(os.Environ(), i.env...)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	i.logger.Debug("Starting simulator", "case", inv.Case.ID, "args", args)

	start := time.Now()
	err := cmd.Run()
	result := domain.Execution{
		ExitCode: -1,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}
	if cmd.ProcessState != nil {
		result.ExitCode = cmd.ProcessState.ExitCode()
	}

	if err != nil {
		err = i.classify(ctx, inv, result, err)
		i.logger.Warn("Simulator failed", "case", inv.Case.ID, "exitCode", result.ExitCode, "error", err,
			"stdout", result.Stdout, "stderr", result.Stderr)
		return result, err
	}

	i.logger.Debug("Simulator finished", "case", inv.Case.ID, "duration", result.Duration, "stdout", result.Stdout, "stderr", result.Stderr)
	return result, nil
}

func (i *Invoker) classify(ctx context.Context, inv domain.Invocation, result domain.Execution, err error) error {
	if inv.Timeout > 0 && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s after %s", errs.ErrProcessTimeout, inv.Case.ID, inv.Timeout)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return fmt.Errorf("%w: %s exit code %d", errs.ErrProcessFailure, inv.Case.ID, result.ExitCode)
	}
	return fmt.Errorf("%w: failed to run simulator: %v", errs.ErrProcessFailure, err)
}

// NewInvokerFromConfig runs the simulator directly or, when a wrapper is
// configured, as the last argument of the wrapper command line
func NewInvokerFromConfig(cfg *config.HarnessConfig, logger primary.Logger) *Invoker {
	var options []InvokerOption
	if len(cfg.SimulatorEnv) > 0 {
		options = append(options, WithEnv(cfg.SimulatorEnv...))
	}
	if len(cfg.SimulatorWrapper) == 0 {
		return NewInvoker(cfg.SimulatorPath, logger, options...)
	}
	launcher := append(append([]string{}, cfg.SimulatorWrapper[1:]...), cfg.SimulatorPath)
	options = append(options, WithLauncherArgs(launcher...))
	return NewInvoker(cfg.SimulatorWrapper[0], logger, options...)
}
