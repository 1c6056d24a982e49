package repository

import (
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
)

func TestResultFilterClauses(t *testing.T) {
	clause, args := ResultFilter{}.NamedWhereClause()
	assert.Empty(t, clause)
	assert.Empty(t, args)

	name := "alice"
	f := ResultFilter{PlayerName: &name, Board: &BoardSize{Rows: 5, Cols: 10, MineCount: 15}}

	clause, args = f.NamedWhereClause()
	assert.Equal(t,
		"player_name = @player_name AND board_rows = @board_rows AND board_cols = @board_cols AND mine_count = @mine_count",
		clause,
	)
	assert.Equal(t, pgx.NamedArgs{
		"player_name": "alice", "board_rows": 5, "board_cols": 10, "mine_count": 15,
	}, args)

	clause, values := f.WhereClause()
	assert.Equal(t, "player_name = ? AND board_rows = ? AND board_cols = ? AND mine_count = ?", clause)
	assert.Equal(t, []any{"alice", 5, 10, 15}, values)
}

func TestResultValidate(t *testing.T) {
	assert.NoError(t, Result{PlayerName: "a"}.Validate())
	assert.ErrorIs(t, Result{}.Validate(), ErrInvalidResult)
}
