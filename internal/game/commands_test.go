package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line string
		want Command
	}{
		{"g", Command{Kind: CommandGet}},
		{"o 1 2", Command{Kind: CommandOpen, Row: 1, Col: 2}},
		{"  f   3 4  ", Command{Kind: CommandFlag, Row: 3, Col: 4}},
		{"n", Command{Kind: CommandReset}},
		{"r", Command{Kind: CommandGiveUp}},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := ParseCommand(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCommandErrors(t *testing.T) {
	tests := []struct {
		line string
		want error
	}{
		{"", ErrBadCommand},
		{"x 1 2", ErrUnknownCommand},
		{"c 1 2", ErrUnknownCommand},
		{"o 1", ErrBadCommand},
		{"g 1", ErrBadCommand},
		{"o a 2", ErrBadCommand},
		{"f 1 b", ErrBadCommand},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			_, err := ParseCommand(tt.line)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
