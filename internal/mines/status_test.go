package mines

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ringField = [][]int{
	{1, 1, 1},
	{1, 0, 1},
	{0, 1, 1},
}

func TestIsLost(t *testing.T) {
	b := newTestBoard(t, cornerField)
	assert.False(t, b.IsLost())

	require.NoError(t, b.Reveal(1, 2))
	assert.True(t, b.IsLost())
}

func TestIsWon(t *testing.T) {
	b := newTestBoard(t, ringField)
	assert.False(t, b.IsWon())

	require.NoError(t, b.Reveal(1, 1))
	assert.False(t, b.IsWon())

	require.NoError(t, b.Reveal(2, 0))
	assert.True(t, b.IsWon())
	assert.False(t, b.IsLost())
}

func TestIsHidden(t *testing.T) {
	b := newTestBoard(t, ringField)
	assert.True(t, b.IsHidden())

	require.NoError(t, b.Reveal(1, 1))
	assert.True(t, b.IsHidden())

	all := newTestBoard(t, [][]int{{0, 0}, {0, 0}})
	require.NoError(t, all.Reveal(0, 0))
	assert.False(t, all.IsHidden())
}

func TestDisplayGrid(t *testing.T) {
	b := newTestBoard(t, ringField)
	require.NoError(t, b.PutFlag(2, 2))
	require.NoError(t, b.Reveal(1, 1))

	assert.Equal(t, Grid{
		{Hidden, Hidden, Hidden},
		{Hidden, NumberedCell(7), Hidden},
		{Hidden, Hidden, Flagged},
	}, b.DisplayGrid())

	require.NoError(t, b.Reveal(0, 0))
	assert.Equal(t, Grid{
		{2, 0, 0},
		{0, 10, 0},
		{0, 0, 1},
	}, b.DisplayGrid())
}

func TestDisplayGridFlagWins(t *testing.T) {
	b := newTestBoard(t, cornerField)
	require.NoError(t, b.PutFlag(0, 0))
	require.NoError(t, b.Reveal(2, 2))

	g := b.DisplayGrid()
	assert.Equal(t, Flagged, g[0][0])
	assert.Equal(t, NumberedCell(1), g[2][2])
	assert.Equal(t, 1, g[2][2].Adjacent())
	assert.Equal(t, -1, g[0][0].Adjacent())
}

func TestDisplayGridIsFresh(t *testing.T) {
	b := newTestBoard(t, cornerField)
	g := b.DisplayGrid()
	g[0][0] = Mine

	assert.Equal(t, Hidden, b.DisplayGrid()[0][0])
}

func TestDisplayToConsole(t *testing.T) {
	b := newTestBoard(t, [][]int{
		{1, 0, 0},
		{0, 0, 0},
	})
	require.NoError(t, b.PutFlag(0, 0))
	require.NoError(t, b.Reveal(1, 2))

	assert.Equal(t, "' 1 0 \n□ 1 0 \n", b.DisplayToConsole())

	mine := newTestBoard(t, [][]int{{1}})
	require.NoError(t, mine.Reveal(0, 0))
	assert.Equal(t, "* \n", mine.DisplayToConsole())
}

func TestString(t *testing.T) {
	b := newTestBoard(t, [][]int{{1, 0}})
	require.NoError(t, b.Reveal(0, 1))

	assert.Equal(t, "1,0,0,0 0,1,0,1 \nfalse true", b.String())
}

func TestCellString(t *testing.T) {
	assert.Equal(t, "□", Hidden.String())
	assert.Equal(t, "'", Flagged.String())
	assert.Equal(t, "*", Mine.String())
	assert.Equal(t, "0", Empty.String())
	assert.Equal(t, "8", NumberedCell(8).String())
	assert.Equal(t, "!", NumberedCell(9).String())
}
