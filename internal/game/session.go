package game

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vancomm/msweeper/internal/mines"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrGameOver        = errors.New("game is over")
	ErrForbidden       = errors.New("session belongs to another player")
	ErrInvalidParams   = errors.New("invalid game parameters")
)

// DefaultMaxCells bounds rows*cols when no other limit is configured.
const DefaultMaxCells = 10_000

type Status string

const (
	InProgress Status = "in_progress"
	Won        Status = "won"
	Lost       Status = "lost"
	GivenUp    Status = "given_up"
)

func (s Status) Ended() bool {
	return s != InProgress
}

type Params struct {
	Rows  int `json:"rows"`
	Cols  int `json:"cols"`
	Mines int `json:"mines"`
}

// Validate checks p against the board rules and a cell limit. A board must
// keep at least one safe cell, otherwise it would be won before the first
// move.
func (p Params) Validate(maxCells int) error {
	if p.Rows <= 0 || p.Cols <= 0 {
		return fmt.Errorf("%w: board must be at least 1x1, got %dx%d", ErrInvalidParams, p.Rows, p.Cols)
	}
	if p.Rows > maxCells/p.Cols {
		return fmt.Errorf("%w: %dx%d board exceeds %d cells", ErrInvalidParams, p.Rows, p.Cols, maxCells)
	}
	if p.Mines < 0 {
		return fmt.Errorf("%w: negative mine count %d", ErrInvalidParams, p.Mines)
	}
	if p.Mines >= p.Rows*p.Cols {
		return fmt.Errorf(
			"%w: %d mines leave no safe cell on a %dx%d board", ErrInvalidParams, p.Mines, p.Rows, p.Cols,
		)
	}
	return nil
}

type Session struct {
	mu sync.Mutex

	id        uuid.UUID
	player    string
	ownerId   *int64
	params    Params
	board     *mines.Board
	status    Status
	startedAt time.Time
	endedAt   time.Time
	touchedAt time.Time
}

func (s *Session) elapsed(now time.Time) time.Duration {
	if s.status.Ended() {
		return s.endedAt.Sub(s.startedAt)
	}
	return now.Sub(s.startedAt)
}

// ownedBy reports whether playerId may mutate the session. Sessions created
// without a signed-in player are open to anyone holding the id.
func (s *Session) ownedBy(playerId *int64) bool {
	if s.ownerId == nil {
		return true
	}
	return playerId != nil && *playerId == *s.ownerId
}

// View is a point-in-time snapshot of a session, safe to use after the
// session lock is released.
type View struct {
	SessionId uuid.UUID  `json:"session_id"`
	Player    string     `json:"player"`
	Rows      int        `json:"rows"`
	Cols      int        `json:"cols"`
	MineCount int        `json:"mine_count"`
	Grid      mines.Grid `json:"grid"`
	Mines     [][]int    `json:"mines,omitempty"`
	Status    Status     `json:"status"`
	Won       bool       `json:"won"`
	Lost      bool       `json:"lost"`
	Hidden    bool       `json:"hidden"`
	StartedAt int64      `json:"started_at"`
	EndedAt   *int64     `json:"ended_at,omitempty"`
	ElapsedMs int64      `json:"elapsed_ms"`
}

func (s *Session) view(now time.Time) *View {
	v := &View{
		SessionId: s.id,
		Player:    s.player,
		Rows:      s.params.Rows,
		Cols:      s.params.Cols,
		MineCount: s.params.Mines,
		Grid:      s.board.DisplayGrid(),
		Status:    s.status,
		Won:       s.board.IsWon(),
		Lost:      s.board.IsLost(),
		Hidden:    s.board.IsHidden(),
		StartedAt: s.startedAt.UnixMilli(),
		ElapsedMs: s.elapsed(now).Milliseconds(),
	}
	if s.status.Ended() {
		endedAt := s.endedAt.UnixMilli()
		v.EndedAt = &endedAt
		v.Mines = s.board.MineLayout()
	}
	return v
}
