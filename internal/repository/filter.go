package repository

import (
	"strings"

	"github.com/jackc/pgx/v5"
)

type BoardSize struct {
	Rows      int
	Cols      int
	MineCount int
}

// ResultFilter narrows a leaderboard query. The zero value matches every
// result.
type ResultFilter struct {
	PlayerName *string
	Board      *BoardSize
}

func (f ResultFilter) clauses() ([]string, []string, []any) {
	columns := make([]string, 0, 4)
	names := make([]string, 0, 4)
	values := make([]any, 0, 4)
	if f.PlayerName != nil {
		columns = append(columns, "player_name")
		names = append(names, "player_name")
		values = append(values, *f.PlayerName)
	}
	if f.Board != nil {
		columns = append(columns, "board_rows", "board_cols", "mine_count")
		names = append(names, "board_rows", "board_cols", "mine_count")
		values = append(values, f.Board.Rows, f.Board.Cols, f.Board.MineCount)
	}
	return columns, names, values
}

// NamedWhereClause renders the filter for pgx named arguments.
func (f ResultFilter) NamedWhereClause() (string, pgx.NamedArgs) {
	columns, names, values := f.clauses()
	args := pgx.NamedArgs{}
	parts := make([]string, len(columns))
	for i, column := range columns {
		parts[i] = column + " = @" + names[i]
		args[names[i]] = values[i]
	}
	return strings.Join(parts, " AND "), args
}

// WhereClause renders the filter with positional placeholders.
func (f ResultFilter) WhereClause() (string, []any) {
	columns, _, values := f.clauses()
	parts := make([]string, len(columns))
	for i, column := range columns {
		parts[i] = column + " = ?"
	}
	return strings.Join(parts, " AND "), values
}
