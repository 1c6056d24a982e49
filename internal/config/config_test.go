package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, 5, cfg.Game.Rows)
	assert.Equal(t, 10, cfg.Game.Cols)
	assert.Equal(t, 15, cfg.Game.Mines)
	assert.Equal(t, 10_000, cfg.Game.MaxCells)
	assert.Equal(t, 2*time.Hour, cfg.Game.SessionTTL)
	assert.Equal(t, uint16(5432), cfg.Store.Postgres.Port)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("APP_ADDR", ":9000")
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("POSTGRES_PORT", "6543")
	t.Setenv("GAME_ROWS", "16")
	t.Setenv("GAME_SESSION_TTL", "30m")
	t.Setenv("DEVELOPMENT", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, uint16(6543), cfg.Store.Postgres.Port)
	assert.Equal(t, 16, cfg.Game.Rows)
	assert.Equal(t, 30*time.Minute, cfg.Game.SessionTTL)
	assert.True(t, cfg.Development)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "msweeper.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"addr: \":7000\"\ngame:\n  rows: 9\n  cols: 9\n  mines: 10\n",
	), 0o600))
	t.Setenv("GAME_MINES", "12")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.Addr)
	assert.Equal(t, 9, cfg.Game.Rows)
	assert.Equal(t, 12, cfg.Game.Mines, "env overrides file")
}

func TestLoadInvalid(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mongo")
	_, err := Load("")
	assert.Error(t, err)
}

func TestLoadInvalidGame(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"zero rows", map[string]string{"GAME_ROWS": "0"}},
		{"negative cols", map[string]string{"GAME_COLS": "-3"}},
		{"negative mines", map[string]string{"GAME_MINES": "-1"}},
		{"no safe cell", map[string]string{"GAME_ROWS": "3", "GAME_COLS": "5", "GAME_MINES": "15"}},
		{"over cell limit", map[string]string{"GAME_MAX_CELLS": "40"}},
		{"zero cell limit", map[string]string{"GAME_MAX_CELLS": "0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestPostgresURL(t *testing.T) {
	s := Store{DatabaseURL: "postgres://x"}
	u, err := s.PostgresURL()
	require.NoError(t, err)
	assert.Equal(t, "postgres://x", u)

	pwFile := filepath.Join(t.TempDir(), "pw")
	require.NoError(t, os.WriteFile(pwFile, []byte("s3cr@t\n"), 0o600))
	s = Store{Postgres: Postgres{
		User: "player", PasswordFile: pwFile, Host: "db", Port: 5432, DBName: "msweeper", SSLMode: "disable",
	}}
	u, err = s.PostgresURL()
	require.NoError(t, err)
	assert.Equal(t, "postgresql://player:s3cr%40t@db:5432/msweeper?sslmode=disable", u)

	_, err = Store{Postgres: Postgres{User: "player", Host: "db", DBName: "msweeper"}}.PostgresURL()
	assert.Error(t, err)
}

func TestFields(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	fields := cfg.Fields()
	assert.Equal(t, "sqlite", fields["store_driver"])
	assert.NotContains(t, fields, "pg_password")
}

func TestNewLogger(t *testing.T) {
	log, err := NewLogger(Log{}, true)
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	log, err = NewLogger(Log{Level: "warn"}, false)
	require.NoError(t, err)
	assert.Equal(t, logrus.WarnLevel, log.GetLevel())

	_, err = NewLogger(Log{Level: "loud"}, false)
	assert.Error(t, err)

	file := filepath.Join(t.TempDir(), "logs", "msweeper.log")
	log, err = NewLogger(Log{File: file}, false)
	require.NoError(t, err)
	log.Info("hello")
	_, err = os.Stat(file)
	assert.NoError(t, err)
}
