package repository_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/msweeper/internal/database"
	"github.com/vancomm/msweeper/internal/repository"
)

func newSQLite(t *testing.T) *repository.SQLite {
	t.Helper()
	path := filepath.Join(t.TempDir(), "msweeper.db")
	_, err := database.MigrateSQLite(path)
	require.NoError(t, err)
	db, err := database.OpenSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return repository.NewSQLite(db)
}

func insert(t *testing.T, s repository.Store, r repository.Result) *repository.Result {
	t.Helper()
	inserted, err := s.InsertResult(context.Background(), r)
	require.NoError(t, err)
	return inserted
}

func TestInsertResult(t *testing.T) {
	s := newSQLite(t)

	inserted := insert(t, s, repository.Result{
		PlayerName: "alice",
		Solved:     true,
		Duration:   1500*time.Millisecond + 300*time.Microsecond,
		Rows:       5,
		Cols:       10,
		MineCount:  15,
	})
	assert.NotZero(t, inserted.ResultId)
	assert.False(t, inserted.CreatedAt.IsZero())
	assert.Equal(t, 1500*time.Millisecond, inserted.Duration)

	results, err := s.FindBestResults(context.Background(), repository.ResultFilter{}, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, *inserted, results[0])
}

func TestInsertResultInvalid(t *testing.T) {
	s := newSQLite(t)
	ctx := context.Background()

	_, err := s.InsertResult(ctx, repository.Result{Duration: time.Second})
	assert.ErrorIs(t, err, repository.ErrInvalidResult)

	_, err = s.InsertResult(ctx, repository.Result{PlayerName: "bob", Duration: -time.Second})
	assert.ErrorIs(t, err, repository.ErrInvalidResult)
}

func TestFindBestResultsOrder(t *testing.T) {
	s := newSQLite(t)
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	insert(t, s, repository.Result{PlayerName: "slow", Solved: true, Duration: 9 * time.Second, CreatedAt: base})
	insert(t, s, repository.Result{PlayerName: "lost", Solved: false, Duration: time.Second, CreatedAt: base})
	insert(t, s, repository.Result{PlayerName: "old", Solved: true, Duration: 3 * time.Second, CreatedAt: base})
	insert(t, s, repository.Result{PlayerName: "new", Solved: true, Duration: 3 * time.Second, CreatedAt: base.Add(time.Minute)})

	results, err := s.FindBestResults(context.Background(), repository.ResultFilter{}, 10)
	require.NoError(t, err)

	names := make([]string, len(results))
	for i, r := range results {
		names[i] = r.PlayerName
	}
	assert.Equal(t, []string{"new", "old", "slow", "lost"}, names)

	results, err = s.FindBestResults(context.Background(), repository.ResultFilter{}, 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestFindBestResultsEmpty(t *testing.T) {
	s := newSQLite(t)
	insert(t, s, repository.Result{PlayerName: "alice", Solved: true, Duration: time.Second})

	for _, n := range []int{0, -1} {
		results, err := s.FindBestResults(context.Background(), repository.ResultFilter{}, n)
		require.NoError(t, err)
		assert.NotNil(t, results)
		assert.Empty(t, results)
	}
}

func TestFindBestResultsFilter(t *testing.T) {
	s := newSQLite(t)
	insert(t, s, repository.Result{PlayerName: "alice", Solved: true, Duration: time.Second, Rows: 5, Cols: 10, MineCount: 15})
	insert(t, s, repository.Result{PlayerName: "alice", Solved: true, Duration: time.Second, Rows: 9, Cols: 9, MineCount: 10})
	insert(t, s, repository.Result{PlayerName: "bob", Solved: true, Duration: time.Second, Rows: 9, Cols: 9, MineCount: 10})

	alice := "alice"
	results, err := s.FindBestResults(context.Background(), repository.ResultFilter{PlayerName: &alice}, 10)
	require.NoError(t, err)
	assert.Len(t, results, 2)

	results, err = s.FindBestResults(context.Background(), repository.ResultFilter{
		PlayerName: &alice,
		Board:      &repository.BoardSize{Rows: 9, Cols: 9, MineCount: 10},
	}, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 9, results[0].Rows)
}

func TestPlayers(t *testing.T) {
	s := newSQLite(t)
	ctx := context.Background()

	created, err := s.CreatePlayer(ctx, repository.CreatePlayerParams{
		Username: "alice", PasswordHash: []byte("hash"),
	})
	require.NoError(t, err)
	assert.NotZero(t, created.PlayerId)

	_, err = s.CreatePlayer(ctx, repository.CreatePlayerParams{
		Username: "alice", PasswordHash: []byte("other"),
	})
	assert.ErrorIs(t, err, repository.ErrUsernameTaken)

	fetched, err := s.FetchPlayer(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, created, fetched)

	_, err = s.FetchPlayer(ctx, "nobody")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
