package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/mattn/go-sqlite3"
)

// SQLite implements [Store] on top of a go-sqlite3 database. Timestamps are
// stored as unix microseconds.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db}
}

func isConstraintError(err error, code sqlite3.ErrNoExtended) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == code
}

func (s *SQLite) InsertResult(ctx context.Context, result Result) (*Result, error) {
	if err := result.Validate(); err != nil {
		return nil, err
	}
	if result.CreatedAt.IsZero() {
		result.CreatedAt = time.Now()
	}
	result.CreatedAt = time.UnixMicro(result.CreatedAt.UnixMicro())

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO result (
			player_name, solved, duration_ms, board_rows, board_cols, mine_count, created_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?);`,
		result.PlayerName,
		result.Solved,
		result.Duration.Milliseconds(),
		result.Rows,
		result.Cols,
		result.MineCount,
		result.CreatedAt.UnixMicro(),
	)
	if isConstraintError(err, sqlite3.ErrConstraintCheck) {
		return nil, errors.Join(ErrInvalidResult, err)
	}
	if err != nil {
		return nil, err
	}
	if result.ResultId, err = res.LastInsertId(); err != nil {
		return nil, err
	}
	result.Duration = result.Duration.Truncate(time.Millisecond)
	return &result, nil
}

func (s *SQLite) FindBestResults(
	ctx context.Context, filter ResultFilter, n int,
) ([]Result, error) {
	results := []Result{}
	if n <= 0 {
		return results, nil
	}

	query := `SELECT result_id, player_name, solved, duration_ms,
		board_rows, board_cols, mine_count, created_at
		FROM result`
	whereClause, args := filter.WhereClause()
	if whereClause != "" {
		query += " WHERE " + whereClause
	}
	query += " ORDER BY solved DESC, duration_ms ASC, created_at DESC LIMIT ?;"
	args = append(args, n)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			r          Result
			durationMs int64
			createdAt  int64
		)
		if err := rows.Scan(
			&r.ResultId, &r.PlayerName, &r.Solved, &durationMs,
			&r.Rows, &r.Cols, &r.MineCount, &createdAt,
		); err != nil {
			return nil, err
		}
		r.Duration = time.Duration(durationMs) * time.Millisecond
		r.CreatedAt = time.UnixMicro(createdAt)
		results = append(results, r)
	}
	return results, rows.Err()
}

func (s *SQLite) CreatePlayer(ctx context.Context, params CreatePlayerParams) (*Player, error) {
	player := &Player{
		Username:     params.Username,
		PasswordHash: params.PasswordHash,
		CreatedAt:    time.UnixMicro(time.Now().UnixMicro()),
	}
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO player (username, password_hash, created_at) VALUES (?, ?, ?);",
		player.Username, player.PasswordHash, player.CreatedAt.UnixMicro(),
	)
	if isConstraintError(err, sqlite3.ErrConstraintUnique) {
		return nil, ErrUsernameTaken
	}
	if err != nil {
		return nil, err
	}
	if player.PlayerId, err = res.LastInsertId(); err != nil {
		return nil, err
	}
	return player, nil
}

func (s *SQLite) FetchPlayer(ctx context.Context, username string) (*Player, error) {
	var (
		player    Player
		createdAt int64
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT player_id, username, password_hash, created_at FROM player WHERE username = ?;",
		username,
	).Scan(&player.PlayerId, &player.Username, &player.PasswordHash, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	player.CreatedAt = time.UnixMicro(createdAt)
	return &player, nil
}
