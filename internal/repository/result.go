package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type resultRow struct {
	ResultId   int64     `db:"result_id"`
	PlayerName string    `db:"player_name"`
	Solved     bool      `db:"solved"`
	DurationMs int64     `db:"duration_ms"`
	Rows       int       `db:"board_rows"`
	Cols       int       `db:"board_cols"`
	MineCount  int       `db:"mine_count"`
	CreatedAt  time.Time `db:"created_at"`
}

func (r resultRow) Result() Result {
	return Result{
		ResultId:   r.ResultId,
		PlayerName: r.PlayerName,
		Solved:     r.Solved,
		Duration:   time.Duration(r.DurationMs) * time.Millisecond,
		Rows:       r.Rows,
		Cols:       r.Cols,
		MineCount:  r.MineCount,
		CreatedAt:  r.CreatedAt,
	}
}

func (q Queries) InsertResult(ctx context.Context, result Result) (*Result, error) {
	if err := result.Validate(); err != nil {
		return nil, err
	}

	args := pgx.NamedArgs{
		"player_name": result.PlayerName,
		"solved":      result.Solved,
		"duration_ms": result.Duration.Milliseconds(),
		"board_rows":  result.Rows,
		"board_cols":  result.Cols,
		"mine_count":  result.MineCount,
	}
	createdAt := "now()"
	if !result.CreatedAt.IsZero() {
		createdAt = "@created_at"
		args["created_at"] = result.CreatedAt
	}

	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO result (
			player_name, solved, duration_ms, board_rows, board_cols, mine_count, created_at
		)
		VALUES (
			@player_name, @solved, @duration_ms, @board_rows, @board_cols, @mine_count, `+createdAt+`
		)
		RETURNING *;`,
		args,
	)
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[resultRow])
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.CheckViolation {
		return nil, errors.Join(ErrInvalidResult, err)
	}
	if err != nil {
		return nil, err
	}
	inserted := row.Result()
	return &inserted, nil
}

func (q Queries) FindBestResults(
	ctx context.Context, filter ResultFilter, n int,
) ([]Result, error) {
	if n <= 0 {
		return []Result{}, nil
	}

	query := "SELECT * FROM result"
	whereClause, args := filter.NamedWhereClause()
	if whereClause != "" {
		query += " WHERE " + whereClause
	}
	query += " ORDER BY solved DESC, duration_ms ASC, created_at DESC LIMIT @n;"
	args["n"] = n

	rows, err := q.db.Query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	resultRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[resultRow])
	if err != nil {
		return nil, err
	}

	results := make([]Result, len(resultRows))
	for i, r := range resultRows {
		results[i] = r.Result()
	}
	return results, nil
}
