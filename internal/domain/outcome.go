package domain

import (
	"time"

	"github.com/google/uuid"
)

// OutcomeKind is the classification of one case
type OutcomeKind string

const (
	OutcomePassed  OutcomeKind = "PASSED"
	OutcomeFailed  OutcomeKind = "FAILED"
	OutcomeErrored OutcomeKind = "ERRORED"
)

// Cause tells why a case ended up Errored
type Cause string

const (
	CauseNone           Cause = ""
	CauseProcessFailure Cause = "PROCESS_FAILURE"
	CauseProcessTimeout Cause = "PROCESS_TIMEOUT"
	CauseSignalNotFound Cause = "SIGNAL_NOT_FOUND"
	CauseArtifactRead   Cause = "ARTIFACT_READ_FAILURE"
	CauseInternal       Cause = "INTERNAL"
)

// Outcome is the classified result of one case pipeline.
// Code is only meaningful for OutcomeFailed.
type Outcome struct {
	RunID    uuid.UUID     `json:"runId"`
	Case     TestCase      `json:"case"`
	Kind     OutcomeKind   `json:"kind"`
	Code     uint16        `json:"code"`
	Cause    Cause         `json:"cause,omitempty"`
	Detail   string        `json:"detail,omitempty"`
	ExitCode int           `json:"exitCode"`
	Duration time.Duration `json:"duration"`
}

func Passed(tc TestCase) Outcome {
	return Outcome{Case: tc, Kind: OutcomePassed}
}

func Failed(tc TestCase, code uint16) Outcome {
	return Outcome{Case: tc, Kind: OutcomeFailed, Code: code}
}

func Errored(tc TestCase, cause Cause, err error) Outcome {
	o := Outcome{Case: tc, Kind: OutcomeErrored, Cause: cause}
	if err != nil {
		o.Detail = err.Error()
	}
	return o
}

// Classify decodes the tohost word. 1 means pass; otherwise the low bit is the
// finished flag and the rest is the number of the failing test.
func Classify(tc TestCase, word uint16) Outcome {
	if word == 1 {
		return Passed(tc)
	}
	return Failed(tc, word>>1)
}
