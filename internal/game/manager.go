package game

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/msweeper/internal/mines"
	"github.com/vancomm/msweeper/internal/repository"
)

const AnonymousPlayer = "anonymous"

// Manager keeps every live session in memory. Finished games are reported to
// the result store once; boards themselves are never persisted.
type Manager struct {
	log      logrus.FieldLogger
	store    repository.ResultStore
	defaults Params
	maxCells int
	now      func() time.Time

	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session

	rndMu sync.Mutex
	rnd   *rand.Rand
}

type Option func(*Manager)

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func WithRand(r *rand.Rand) Option {
	return func(m *Manager) { m.rnd = r }
}

// WithMaxCells limits rows*cols of new games. Values below 1 keep
// [DefaultMaxCells].
func WithMaxCells(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.maxCells = n
		}
	}
}

// NewManager creates a manager. store may be nil, in which case finished
// games are not recorded.
func NewManager(
	log logrus.FieldLogger,
	store repository.ResultStore,
	defaults Params,
	opts ...Option,
) *Manager {
	m := &Manager{
		log:      log,
		store:    store,
		defaults: defaults,
		maxCells: DefaultMaxCells,
		now:      time.Now,
		sessions: make(map[uuid.UUID]*Session),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.rnd == nil {
		m.rnd = mines.NewRand()
	}
	return m
}

func (m *Manager) Defaults() Params {
	return m.defaults
}

func (m *Manager) newBoard(p Params) (*mines.Board, error) {
	m.rndMu.Lock()
	defer m.rndMu.Unlock()
	return mines.New(p.Rows, p.Cols, p.Mines, m.rnd)
}

// NewGame starts a session. A zero params value selects the defaults; an empty
// player name is recorded as [AnonymousPlayer].
func (m *Manager) NewGame(player string, ownerId *int64, params Params) (*View, error) {
	if params == (Params{}) {
		params = m.defaults
	}
	if player == "" {
		player = AnonymousPlayer
	}
	if err := params.Validate(m.maxCells); err != nil {
		return nil, err
	}
	board, err := m.newBoard(params)
	if err != nil {
		return nil, err
	}

	now := m.now()
	s := &Session{
		id:        uuid.New(),
		player:    player,
		ownerId:   ownerId,
		params:    params,
		board:     board,
		status:    InProgress,
		startedAt: now,
		touchedAt: now,
	}

	m.mu.Lock()
	m.sessions[s.id] = s
	m.mu.Unlock()

	m.log.WithFields(logrus.Fields{
		"session_id": s.id,
		"player":     player,
		"rows":       params.Rows,
		"cols":       params.Cols,
		"mines":      params.Mines,
	}).Info("game started")

	return s.view(now), nil
}

func (m *Manager) lookup(id uuid.UUID) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (m *Manager) Get(id uuid.UUID) (*View, error) {
	s, err := m.lookup(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view(m.now()), nil
}

// update runs fn under the session lock and records a result if fn ended the
// game.
func (m *Manager) update(
	ctx context.Context, id uuid.UUID, playerId *int64, fn func(s *Session, now time.Time) error,
) (*View, error) {
	s, err := m.lookup(id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if !s.ownedBy(playerId) {
		s.mu.Unlock()
		return nil, ErrForbidden
	}
	now := m.now()
	wasEnded := s.status.Ended()
	if err := fn(s, now); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.touchedAt = now
	view := s.view(now)
	var result *repository.Result
	if !wasEnded && s.status.Ended() {
		result = &repository.Result{
			PlayerName: s.player,
			Solved:     s.status == Won,
			Duration:   s.elapsed(now),
			Rows:       s.params.Rows,
			Cols:       s.params.Cols,
			MineCount:  s.params.Mines,
			CreatedAt:  s.endedAt,
		}
	}
	s.mu.Unlock()

	if result != nil {
		m.record(ctx, id, *result)
	}
	return view, nil
}

func (m *Manager) record(ctx context.Context, id uuid.UUID, result repository.Result) {
	log := m.log.WithFields(logrus.Fields{
		"session_id":  id,
		"player":      result.PlayerName,
		"solved":      result.Solved,
		"duration_ms": result.Duration.Milliseconds(),
	})
	if m.store == nil {
		log.Info("game finished")
		return
	}
	inserted, err := m.store.InsertResult(ctx, result)
	if err != nil {
		log.WithError(err).Error("unable to record result")
		return
	}
	log.WithField("result_id", inserted.ResultId).Info("game finished")
}

func finish(s *Session, status Status, now time.Time) {
	s.status = status
	s.endedAt = now
}

func (m *Manager) Reveal(
	ctx context.Context, id uuid.UUID, playerId *int64, row, col int,
) (*View, error) {
	return m.update(ctx, id, playerId, func(s *Session, now time.Time) error {
		if s.status.Ended() {
			return ErrGameOver
		}
		if err := s.board.Reveal(row, col); err != nil {
			return err
		}
		switch {
		case s.board.IsLost():
			finish(s, Lost, now)
		case s.board.IsWon():
			finish(s, Won, now)
		}
		return nil
	})
}

func (m *Manager) Flag(
	ctx context.Context, id uuid.UUID, playerId *int64, row, col int,
) (*View, error) {
	return m.update(ctx, id, playerId, func(s *Session, now time.Time) error {
		if s.status.Ended() {
			return ErrGameOver
		}
		return s.board.PutFlag(row, col)
	})
}

// Reset deals a fresh board with the same parameters and restarts the clock.
// Nothing is recorded for the abandoned board.
func (m *Manager) Reset(ctx context.Context, id uuid.UUID, playerId *int64) (*View, error) {
	return m.update(ctx, id, playerId, func(s *Session, now time.Time) error {
		board, err := m.newBoard(s.params)
		if err != nil {
			return fmt.Errorf("unable to deal new board: %w", err)
		}
		s.board = board
		s.status = InProgress
		s.startedAt = now
		s.endedAt = time.Time{}
		return nil
	})
}

// GiveUp ends a game in progress. Giving up a finished game changes nothing.
func (m *Manager) GiveUp(ctx context.Context, id uuid.UUID, playerId *int64) (*View, error) {
	return m.update(ctx, id, playerId, func(s *Session, now time.Time) error {
		if s.status.Ended() {
			return nil
		}
		status := GivenUp
		if s.board.IsWon() {
			status = Won
		}
		finish(s, status, now)
		return nil
	})
}

// Execute runs one line of the text command language.
func (m *Manager) Execute(
	ctx context.Context, id uuid.UUID, playerId *int64, line string,
) (*View, error) {
	cmd, err := ParseCommand(line)
	if err != nil {
		return nil, err
	}
	switch cmd.Kind {
	case CommandOpen:
		return m.Reveal(ctx, id, playerId, cmd.Row, cmd.Col)
	case CommandFlag:
		return m.Flag(ctx, id, playerId, cmd.Row, cmd.Col)
	case CommandReset:
		return m.Reset(ctx, id, playerId)
	case CommandGiveUp:
		return m.GiveUp(ctx, id, playerId)
	default:
		return m.Get(id)
	}
}

// Sweep drops sessions idle for longer than ttl and reports how many were
// removed.
func (m *Manager) Sweep(ttl time.Duration) int {
	cutoff := m.now().Add(-ttl)

	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, s := range m.sessions {
		s.mu.Lock()
		idle := s.touchedAt.Before(cutoff)
		s.mu.Unlock()
		if idle {
			delete(m.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		m.log.WithFields(logrus.Fields{
			"removed": removed,
			"live":    len(m.sessions),
		}).Info("swept idle sessions")
	}
	return removed
}

// RunSweeper calls [Manager.Sweep] every interval until ctx is done.
func (m *Manager) RunSweeper(ctx context.Context, interval, ttl time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			m.Sweep(ttl)
		}
	}
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
