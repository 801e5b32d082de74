package domain

import (
	"time"

	"github.com/google/uuid"
)

// RunStatus represents the status of a batch run
type RunStatus string

const (
	RunStatusRunning   RunStatus = "RUNNING"
	RunStatusCompleted RunStatus = "COMPLETED"
	RunStatusAborted   RunStatus = "ABORTED"
)

// Run is one execution of the harness over a selection of the catalog
type Run struct {
	ID         uuid.UUID     `json:"id" db:"id"`
	Status     RunStatus     `json:"status" db:"status"`
	Jobs       int           `json:"jobs" db:"jobs"`
	StartedAt  time.Time     `json:"startedAt" db:"started_at"`
	FinishedAt *time.Time    `json:"finishedAt,omitempty" db:"finished_at"`
	Stats      RunStatistics `json:"stats"`
}

// NewRun creates a new run
func NewRun(jobs int) *Run {
	return &Run{
		ID:        uuid.New(),
		Status:    RunStatusRunning,
		Jobs:      jobs,
		StartedAt: time.Now(),
	}
}

// Finish closes the run with its final statistics
func (r *Run) Finish(stats RunStatistics, status RunStatus) {
	now := time.Now()
	r.FinishedAt = &now
	r.Stats = stats
	r.Status = status
}

type RunTable struct {
	ID         string
	Status     string
	Jobs       string
	StartedAt  string
	FinishedAt string
	Total      string
	Passed     string
	Failed     string
	Errored    string
}

func GetRunTable() RunTable {
	return RunTable{
		ID:         "id",
		Status:     "status",
		Jobs:       "jobs",
		StartedAt:  "started_at",
		FinishedAt: "finished_at",
		Total:      "total",
		Passed:     "passed",
		Failed:     "failed",
		Errored:    "errored",
	}
}

func (RunTable) TableName() string {
	return "harness_runs"
}

type CaseResultTable struct {
	RunID      string
	CaseID     string
	Group      string
	Kind       string
	Code       string
	Cause      string
	Detail     string
	ExitCode   string
	DurationMs string
}

func GetCaseResultTable() CaseResultTable {
	return CaseResultTable{
		RunID:      "run_id",
		CaseID:     "case_id",
		Group:      "case_group",
		Kind:       "kind",
		Code:       "code",
		Cause:      "cause",
		Detail:     "detail",
		ExitCode:   "exit_code",
		DurationMs: "duration_ms",
	}
}

func (CaseResultTable) TableName() string {
	return "harness_case_results"
}
