package secondary

import (
	"context"

	"gitlab.com/markorv.net/isaharness/internal/domain"
)

// SignalLocator finds the signaling section of a test binary
type SignalLocator interface {
	// Locate returns errs.ErrSignalNotFound when the binary has no such section
	Locate(path string) (domain.SectionInfo, error)
}

// Simulator runs the external simulator for one case
type Simulator interface {
	// Run blocks until the process exits. A non-zero exit is reported as an
	// error wrapping errs.ErrProcessFailure together with the execution.
	Run(ctx context.Context, inv domain.Invocation) (domain.Execution, error)
}

// DumpReader reads the result word out of a ram dump
type DumpReader interface {
	ReadSignal(path string, offset int64) (uint16, error)
}
