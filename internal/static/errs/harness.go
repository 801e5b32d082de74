package errs

import "errors"

// Per-case failures. These never leave the pipeline of the case that hit them.
var (
	ErrProcessFailure = errors.New("simulator exited with non-zero status")
	ErrProcessTimeout = errors.New("simulator did not finish before the case timeout")
	ErrSignalNotFound = errors.New("signaling section not found")
	ErrArtifactRead   = errors.New("ram dump could not be read at signal offset")
)

// ErrConfiguration is fatal to the whole run and is raised before any case starts.
var ErrConfiguration = errors.New("invalid harness configuration")

var ErrRunNotFound = errors.New("run not found")
