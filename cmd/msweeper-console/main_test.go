package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/msweeper/internal/game"
)

func TestRunWinsEmptyBoard(t *testing.T) {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	opts := options{
		rows: 2, cols: 3, mines: 0,
		player: "tester",
		dbPath: filepath.Join(t.TempDir(), "console.db"),
		seed:   7,
	}
	in := strings.NewReader("f 0 0\nbogus\nf 0 0\no 1 1\nh\nq\n")
	var out bytes.Buffer

	require.NoError(t, run(context.Background(), opts, log, in, &out))

	s := out.String()
	assert.Contains(t, s, "□ □ □ \n□ □ □ \n")
	assert.Contains(t, s, "' □ □ \n")
	assert.Contains(t, s, "error: unknown command")
	assert.Contains(t, s, "0 0 0 \n0 0 0 \nsolved in")
	assert.Contains(t, s, " 1. tester")
}

func TestRunWithoutStore(t *testing.T) {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	opts := options{rows: 1, cols: 2, mines: 1, player: "tester"}
	var out bytes.Buffer
	require.NoError(t, run(context.Background(), opts, log, strings.NewReader("r\nh\n"), &out))

	s := out.String()
	assert.Contains(t, s, "given up\n")
	assert.Contains(t, s, "results are not recorded")
}

func TestRunRejectsFullBoard(t *testing.T) {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	opts := options{rows: 1, cols: 1, mines: 1, player: "tester"}
	err := run(context.Background(), opts, log, strings.NewReader(""), new(bytes.Buffer))
	assert.ErrorIs(t, err, game.ErrInvalidParams)
}
