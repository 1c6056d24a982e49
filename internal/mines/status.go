package mines

import (
	"strconv"
	"strings"
)

// Cell is what a player is allowed to know about a square.
type Cell int8

const (
	Hidden  Cell = 0
	Flagged Cell = 1
	Mine    Cell = 2 /* revealed mine */
	Empty   Cell = 3
	/*
	 * Empty + n (3 to 11) is a revealed safe square with n mined
	 * neighbours.
	 */
)

func NumberedCell(adjacent int) Cell {
	return Empty + Cell(adjacent)
}

// Adjacent returns the neighbour mine count of a revealed safe cell, or -1.
func (c Cell) Adjacent() int {
	if c < Empty {
		return -1
	}
	return int(c - Empty)
}

func (c Cell) String() string {
	switch {
	case c == Flagged:
		return "'"
	case c == Hidden:
		return "□"
	case c == Mine:
		return "*"
	case Empty <= c && c <= NumberedCell(8):
		return strconv.Itoa(c.Adjacent())
	default:
		return "!"
	}
}

type Grid [][]Cell

func (g Grid) String() string {
	var b strings.Builder
	for _, row := range g {
		for _, c := range row {
			b.WriteString(c.String())
			b.WriteByte(' ')
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// IsLost reports whether a mine has been revealed.
func (b *Board) IsLost() bool {
	for i, m := range b.mine {
		if m && b.revealed[i] {
			return true
		}
	}
	return false
}

// IsWon reports whether every safe cell has been revealed. Mines may stay
// hidden or flagged.
func (b *Board) IsWon() bool {
	for i, m := range b.mine {
		if !m && !b.revealed[i] {
			return false
		}
	}
	return true
}

// IsHidden reports whether any cell is still unrevealed.
func (b *Board) IsHidden() bool {
	for _, r := range b.revealed {
		if !r {
			return true
		}
	}
	return false
}

func (b *Board) cell(i int) Cell {
	switch {
	case b.flag[i]:
		return Flagged
	case !b.revealed[i]:
		return Hidden
	case b.mine[i]:
		return Mine
	default:
		return NumberedCell(int(b.adjacent[i]))
	}
}

// DisplayGrid returns a fresh rows x cols projection of the board.
func (b *Board) DisplayGrid() Grid {
	g := make(Grid, b.rows)
	for row := range b.rows {
		g[row] = make([]Cell, b.cols)
		for col := range b.cols {
			g[row][col] = b.cell(b.index(row, col))
		}
	}
	return g
}

func (b *Board) DisplayToConsole() string {
	return b.DisplayGrid().String()
}

// String dumps every layer as mine,adjacent,flag,revealed followed by the
// lost and won status. Debugging only.
func (b *Board) String() string {
	var sb strings.Builder
	for row := range b.rows {
		for col := range b.cols {
			i := b.index(row, col)
			sb.WriteString(strconv.Itoa(btoi(b.mine[i])))
			sb.WriteByte(',')
			sb.WriteString(strconv.Itoa(int(b.adjacent[i])))
			sb.WriteByte(',')
			sb.WriteString(strconv.Itoa(btoi(b.flag[i])))
			sb.WriteByte(',')
			sb.WriteString(strconv.Itoa(btoi(b.revealed[i])))
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	sb.WriteString(strconv.FormatBool(b.IsLost()))
	sb.WriteByte(' ')
	sb.WriteString(strconv.FormatBool(b.IsWon()))
	return sb.String()
}
