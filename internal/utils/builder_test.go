package querybuilder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSelect(t *testing.T) {
	query, args, err := NewQueryBuilder("public").
		Select("id", "status").
		From("harness_runs").
		Where("status = ?", "COMPLETED").
		Or("status = ?", "ABORTED").
		OrderBy("started_at", false).
		Limit(10).
		Build()
	require.NoError(t, err)

	assert.Equal(t, "SELECT id, status FROM public.harness_runs WHERE status = ? OR status = ? ORDER BY started_at DESC LIMIT ?", query)
	assert.Equal(t, []interface{}{"COMPLETED", "ABORTED", 10}, args)
}

func TestBuildSelectWithoutSchema(t *testing.T) {
	query, args, err := NewQueryBuilder("").Select("id").From("t").Build()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM t", query)
	assert.Empty(t, args)
}

func TestBuildInsertRows(t *testing.T) {
	query, args, err := NewQueryBuilder("public").
		Insert("run_id", "case_id").
		Into("harness_case_results").
		Values("r", "a").
		Values("r", "b").
		Build()
	require.NoError(t, err)

	assert.Equal(t, "INSERT INTO public.harness_case_results (run_id, case_id) VALUES (?, ?), (?, ?)", query)
	assert.Equal(t, []interface{}{"r", "a", "r", "b"}, args)
}

func TestBuildInsertOnConflict(t *testing.T) {
	query, _, err := NewQueryBuilder("public").
		Insert("id", "status").
		Into("harness_runs").
		Values(1, "RUNNING").
		OnConflict("id").
		SetExclude("status").
		Build()
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO public.harness_runs (id, status) VALUES (?, ?) ON CONFLICT (id) DO UPDATE SET status = EXCLUDED.status", query)

	query, _, err = NewQueryBuilder("public").
		Insert("id").
		Into("harness_runs").
		Values(1).
		OnConflict("id").
		DoNothing().
		Build()
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO public.harness_runs (id) VALUES (?) ON CONFLICT (id) DO NOTHING", query)
}

func TestBuildRejectsMalformed(t *testing.T) {
	_, _, err := NewQueryBuilder("public").Insert("a", "b").Into("t").Values(1).Build()
	assert.Error(t, err)

	_, _, err = NewQueryBuilder("public").Select("a").Build()
	assert.Error(t, err)

	_, _, err = NewQueryBuilder("public").From("t").Build()
	assert.Error(t, err)
}
