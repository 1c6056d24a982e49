package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrInvalidResult = errors.New("invalid result")
	ErrUsernameTaken = errors.New("username taken")
)

// Result is the outcome of one finished game.
type Result struct {
	ResultId   int64
	PlayerName string
	Solved     bool
	Duration   time.Duration
	Rows       int
	Cols       int
	MineCount  int
	CreatedAt  time.Time
}

type resultJSON struct {
	ResultId   int64  `json:"result_id"`
	PlayerName string `json:"player_name"`
	Solved     bool   `json:"solved"`
	DurationMs int64  `json:"duration_ms"`
	Rows       int    `json:"rows"`
	Cols       int    `json:"cols"`
	MineCount  int    `json:"mine_count"`
	CreatedAt  int64  `json:"created_at"`
}

// [Result] implements [json.Marshaler]
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(resultJSON{
		ResultId:   r.ResultId,
		PlayerName: r.PlayerName,
		Solved:     r.Solved,
		DurationMs: r.Duration.Milliseconds(),
		Rows:       r.Rows,
		Cols:       r.Cols,
		MineCount:  r.MineCount,
		CreatedAt:  r.CreatedAt.UnixMilli(),
	})
}

func (r Result) Validate() error {
	if r.PlayerName == "" {
		return fmt.Errorf("%w: empty player name", ErrInvalidResult)
	}
	if r.Duration < 0 {
		return fmt.Errorf("%w: negative duration %s", ErrInvalidResult, r.Duration)
	}
	return nil
}

type Player struct {
	PlayerId     int64
	Username     string
	PasswordHash []byte
	CreatedAt    time.Time
}

type CreatePlayerParams struct {
	Username     string
	PasswordHash []byte
}

/*
ResultStore persists finished games. FindBestResults returns at most n
results matching filter: solved games first, then by ascending duration,
most recent first when durations tie.
*/
type ResultStore interface {
	InsertResult(ctx context.Context, result Result) (*Result, error)
	FindBestResults(ctx context.Context, filter ResultFilter, n int) ([]Result, error)
}

type PlayerStore interface {
	CreatePlayer(ctx context.Context, params CreatePlayerParams) (*Player, error)
	FetchPlayer(ctx context.Context, username string) (*Player, error)
}

type Store interface {
	ResultStore
	PlayerStore
}

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Queries is the Postgres implementation of [Store].
type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}
