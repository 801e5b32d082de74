// Package runrepository stores harness runs and their case outcomes in
// PostgreSQL
package runrepository

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gitlab.com/markorv.net/isaharness/internal/core/ports/primary"
	"gitlab.com/markorv.net/isaharness/internal/core/ports/secondary"
	"gitlab.com/markorv.net/isaharness/internal/domain"
	querybuilder "gitlab.com/markorv.net/isaharness/internal/utils"
)

//go:embed schema.sql
var schema string

var _ secondary.RunRepository = (*RunRepository)(nil)

type runRow struct {
	ID         uuid.UUID    `db:"id"`
	Status     string       `db:"status"`
	Jobs       int          `db:"jobs"`
	StartedAt  time.Time    `db:"started_at"`
	FinishedAt sql.NullTime `db:"finished_at"`
	Total      int          `db:"total"`
	Passed     int          `db:"passed"`
	Failed     int          `db:"failed"`
	Errored    int          `db:"errored"`
}

func (r runRow) toDomain() *domain.Run {
	run := &domain.Run{
		ID:        r.ID,
		Status:    domain.RunStatus(r.Status),
		Jobs:      r.Jobs,
		StartedAt: r.StartedAt,
		Stats: domain.RunStatistics{
			Total:   r.Total,
			Passed:  r.Passed,
			Failed:  r.Failed,
			Errored: r.Errored,
		},
	}
	if r.FinishedAt.Valid {
		finishedAt := r.FinishedAt.Time
		run.FinishedAt = &finishedAt
	}
	return run
}

type caseRow struct {
	RunID      uuid.UUID `db:"run_id"`
	CaseID     string    `db:"case_id"`
	Group      string    `db:"case_group"`
	Kind       string    `db:"kind"`
	Code       int       `db:"code"`
	Cause      string    `db:"cause"`
	Detail     string    `db:"detail"`
	ExitCode   int       `db:"exit_code"`
	DurationMs int64     `db:"duration_ms"`
}

func (r caseRow) toDomain() domain.Outcome {
	return domain.Outcome{
		RunID:    r.RunID,
		Case:     domain.TestCase{ID: r.CaseID, Group: domain.Extension(r.Group)},
		Kind:     domain.OutcomeKind(r.Kind),
		Code:     uint16(r.Code),
		Cause:    domain.Cause(r.Cause),
		Detail:   r.Detail,
		ExitCode: r.ExitCode,
		Duration: time.Duration(r.DurationMs) * time.Millisecond,
	}
}

// RunRepository implements secondary.RunRepository with PostgreSQL
type RunRepository struct {
	db     *sqlx.DB
	schema string
	logger primary.Logger
}

// NewRunRepository creates a new PostgreSQL run repository
func NewRunRepository(db *sqlx.DB, logger primary.Logger, schema string) *RunRepository {
	return &RunRepository{
		db:     db,
		schema: schema,
		logger: logger,
	}
}

// Migrate creates the tables when they do not exist yet
func (r *RunRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		r.logger.Error("Failed to migrate run tables", "error", err)
		return fmt.Errorf("failed to migrate run tables: %w", err)
	}
	return nil
}

// SaveRun upserts a run
func (r *RunRepository) SaveRun(ctx context.Context, run *domain.Run) error {
	tbl := domain.GetRunTable()
	query, args, err := querybuilder.NewQueryBuilder(r.schema).
		Insert(tbl.ID, tbl.Status, tbl.Jobs, tbl.StartedAt, tbl.FinishedAt,
			tbl.Total, tbl.Passed, tbl.Failed, tbl.Errored).
		Into(tbl.TableName()).
		Values(run.ID, run.Status, run.Jobs, run.StartedAt, run.FinishedAt,
			run.Stats.Total, run.Stats.Passed, run.Stats.Failed, run.Stats.Errored).
		OnConflict(tbl.ID).
		SetExclude(tbl.Status, tbl.FinishedAt, tbl.Total, tbl.Passed, tbl.Failed, tbl.Errored).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build run query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...); err != nil {
		r.logger.Error("Failed to save run", "runId", run.ID, "error", err)
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

// SaveOutcomes inserts the outcomes of a run in one statement. Outcomes that
// were already stored are left alone.
func (r *RunRepository) SaveOutcomes(ctx context.Context, runID uuid.UUID, outcomes []domain.Outcome) error {
	if len(outcomes) == 0 {
		return nil
	}
	tbl := domain.GetCaseResultTable()
	qb := querybuilder.NewQueryBuilder(r.schema).
		Insert(tbl.RunID, tbl.CaseID, tbl.Group, tbl.Kind, tbl.Code,
			tbl.Cause, tbl.Detail, tbl.ExitCode, tbl.DurationMs).
		Into(tbl.TableName())
	for _, o := range outcomes {
		qb.Values(runID, o.Case.ID, o.Case.Group, o.Kind, int(o.Code),
			o.Cause, o.Detail, o.ExitCode, o.Duration.Milliseconds())
	}
	query, args, err := qb.OnConflict(tbl.RunID, tbl.CaseID).DoNothing().Build()
	if err != nil {
		return fmt.Errorf("failed to build outcome query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...); err != nil {
		r.logger.Error("Failed to save outcomes", "runId", runID, "count", len(outcomes), "error", err)
		return fmt.Errorf("failed to save outcomes: %w", err)
	}
	return nil
}

// GetRun returns nil when the run does not exist
func (r *RunRepository) GetRun(ctx context.Context, runID uuid.UUID) (*domain.Run, error) {
	tbl := domain.GetRunTable()
	query, args, err := querybuilder.NewQueryBuilder(r.schema).
		Select(runColumns(tbl)...).
		From(tbl.TableName()).
		Where(tbl.ID+" = ?", runID).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build run query: %w", err)
	}

	var row runRow
	if err := r.db.GetContext(ctx, &row, r.db.Rebind(query), args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get run", "runId", runID, "error", err)
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return row.toDomain(), nil
}

// ListRuns returns the most recent runs first
func (r *RunRepository) ListRuns(ctx context.Context, limit int) ([]*domain.Run, error) {
	tbl := domain.GetRunTable()
	query, args, err := querybuilder.NewQueryBuilder(r.schema).
		Select(runColumns(tbl)...).
		From(tbl.TableName()).
		OrderBy(tbl.StartedAt, false).
		Limit(limit).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build run query: %w", err)
	}

	var rows []runRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		r.logger.Error("Failed to list runs", "error", err)
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}

	runs := make([]*domain.Run, 0, len(rows))
	for _, row := range rows {
		runs = append(runs, row.toDomain())
	}
	return runs, nil
}

// GetOutcomes returns the outcomes of a run ordered by case id
func (r *RunRepository) GetOutcomes(ctx context.Context, runID uuid.UUID) ([]domain.Outcome, error) {
	tbl := domain.GetCaseResultTable()
	query, args, err := querybuilder.NewQueryBuilder(r.schema).
		Select(tbl.RunID, tbl.CaseID, tbl.Group, tbl.Kind, tbl.Code,
			tbl.Cause, tbl.Detail, tbl.ExitCode, tbl.DurationMs).
		From(tbl.TableName()).
		Where(tbl.RunID+" = ?", runID).
		OrderBy(tbl.CaseID, true).
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build outcome query: %w", err)
	}

	var rows []caseRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		r.logger.Error("Failed to get outcomes", "runId", runID, "error", err)
		return nil, fmt.Errorf("failed to get outcomes: %w", err)
	}

	outcomes := make([]domain.Outcome, 0, len(rows))
	for _, row := range rows {
		outcomes = append(outcomes, row.toDomain())
	}
	return outcomes, nil
}

func runColumns(tbl domain.RunTable) []string {
	return []string{
		tbl.ID, tbl.Status, tbl.Jobs, tbl.StartedAt, tbl.FinishedAt,
		tbl.Total, tbl.Passed, tbl.Failed, tbl.Errored,
	}
}
