package querybuilder

import (
	"fmt"
	"strings"
)

type InsertRows [][]interface{} // multiple Rows

func (q *queryBuilder) buildInsert() (string, []interface{}, error) {
	numOfParam := len(q.cols)
	if numOfParam == 0 {
		return "", nil, fmt.Errorf("insert into %s has no columns", q.table)
	}

	placeholders := "(" + strings.TrimSuffix(strings.Repeat("?, ", numOfParam), ", ") + ")"
	valueTuples := make([]string, len(q.values))
	args := make([]interface{}, 0, len(q.values)*numOfParam)
	for i, row := range q.values {
		if len(row) != numOfParam {
			return "", nil, fmt.Errorf("row %d has %d values, want %d", i, len(row), numOfParam)
		}
		args = append(args, row...)
		valueTuples[i] = placeholders
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s", q.tableName(), strings.Join(q.cols, ", "), strings.Join(valueTuples, ", "))

	if len(q.onConflict) > 0 {
		query += fmt.Sprintf(" ON CONFLICT (%s)", strings.Join(q.onConflict, ", "))
		if len(q.excludeCols) == 0 {
			return query + " DO NOTHING", args, nil
		}
		sets := make([]string, len(q.excludeCols))
		for i, col := range q.excludeCols {
			sets[i] = fmt.Sprintf("%s = EXCLUDED.%s", col, col)
		}
		query += " DO UPDATE SET " + strings.Join(sets, ", ")
	}

	return query, args, nil
}
