package mines

import (
	"hash/maphash"
	"iter"
	"math"
	"math/rand/v2"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

// Board holds the state of one game. The four layers are stored row-major,
// cell (row, col) lives at index row*cols + col in each of them.
type Board struct {
	rows, cols int
	mine       []bool
	flag       []bool
	revealed   []bool
	adjacent   []uint8 /* 0-8, fixed after construction */
}

// NewRand returns a PCG source seeded from the runtime's random hash seed.
func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func newBoard(rows, cols int) *Board {
	size := rows * cols
	return &Board{
		rows:     rows,
		cols:     cols,
		mine:     make([]bool, size),
		flag:     make([]bool, size),
		revealed: make([]bool, size),
		adjacent: make([]uint8, size),
	}
}

// New creates a board with mineCount mines placed uniformly at random. A nil
// r is replaced with [NewRand].
func New(rows, cols, mineCount int, r *rand.Rand) (*Board, error) {
	if rows <= 0 || cols <= 0 {
		return nil, argumentErrorf("board must be at least 1x1, got %dx%d", rows, cols)
	}
	if cols > math.MaxInt/rows {
		return nil, argumentErrorf("%dx%d board is too large", rows, cols)
	}
	if mineCount < 0 {
		return nil, argumentErrorf("negative mine count %d", mineCount)
	}
	if mineCount > rows*cols {
		return nil, argumentErrorf(
			"%d mines do not fit on a %dx%d board", mineCount, rows, cols,
		)
	}
	if r == nil {
		r = NewRand()
	}

	b := newBoard(rows, cols)
	b.placeMines(mineCount, r)
	b.countAdjacent()

	Log.WithFields(logrus.Fields{
		"rows": rows, "cols": cols, "mines": mineCount,
	}).Debug("random board created")

	return b, nil
}

// FromLayout creates a board from a matrix of 0 (empty) and 1 (mine) values.
func FromLayout(layout [][]int) (*Board, error) {
	if err := validateLayout(layout); err != nil {
		return nil, err
	}

	b := newBoard(len(layout), len(layout[0]))
	for row, values := range layout {
		for col, v := range values {
			b.mine[b.index(row, col)] = v == 1
		}
	}
	b.countAdjacent()

	return b, nil
}

func validateLayout(layout [][]int) error {
	if len(layout) == 0 {
		return argumentErrorf("layout has no rows")
	}
	cols := len(layout[0])
	if cols == 0 {
		return argumentErrorf("layout rows are empty")
	}
	for row, values := range layout {
		if len(values) != cols {
			return argumentErrorf(
				"row %d has %d cells, expected %d", row, len(values), cols,
			)
		}
		for col, v := range values {
			if v != 0 && v != 1 {
				return argumentErrorf("cell %d:%d holds %d, expected 0 or 1", row, col, v)
			}
		}
	}
	return nil
}

/*
Rejection sampling: draw a random cell and redraw while it already holds a
mine. mineCount <= rows*cols is checked by the caller, so this terminates.
*/
func (b *Board) placeMines(mineCount int, r *rand.Rand) {
	for range mineCount {
		i := b.index(r.IntN(b.rows), r.IntN(b.cols))
		for b.mine[i] {
			i = b.index(r.IntN(b.rows), r.IntN(b.cols))
		}
		b.mine[i] = true
	}
}

func (b *Board) index(row, col int) int {
	return row*b.cols + col
}

func (b *Board) InBounds(row, col int) bool {
	return 0 <= row && row < b.rows && 0 <= col && col < b.cols
}

// neighbours yields the indices of the existing 8-neighbours of cell i.
func (b *Board) neighbours(i int) iter.Seq[int] {
	row, col := i/b.cols, i%b.cols
	return func(yield func(int) bool) {
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				if dr == 0 && dc == 0 {
					continue
				}
				if !b.InBounds(row+dr, col+dc) {
					continue
				}
				if !yield(b.index(row+dr, col+dc)) {
					return
				}
			}
		}
	}
}

func (b *Board) Rows() int {
	return b.rows
}

func (b *Board) Cols() int {
	return b.cols
}

func (b *Board) MineCount() (count int) {
	for _, m := range b.mine {
		if m {
			count++
		}
	}
	return
}

// Clone returns a deep copy that shares no memory with b.
func (b *Board) Clone() *Board {
	c := newBoard(b.rows, b.cols)
	copy(c.mine, b.mine)
	copy(c.flag, b.flag)
	copy(c.revealed, b.revealed)
	copy(c.adjacent, b.adjacent)
	return c
}

func (b *Board) matrix(value func(i int) int) [][]int {
	m := make([][]int, b.rows)
	for row := range b.rows {
		m[row] = make([]int, b.cols)
		for col := range b.cols {
			m[row][col] = value(b.index(row, col))
		}
	}
	return m
}

func btoi(v bool) int {
	if v {
		return 1
	}
	return 0
}

// MineLayout returns the mine layer in the format accepted by [FromLayout].
func (b *Board) MineLayout() [][]int {
	return b.matrix(func(i int) int { return btoi(b.mine[i]) })
}

func (b *Board) FlagGrid() [][]int {
	return b.matrix(func(i int) int { return btoi(b.flag[i]) })
}

func (b *Board) RevealGrid() [][]int {
	return b.matrix(func(i int) int { return btoi(b.revealed[i]) })
}

func (b *Board) AdjacencyGrid() [][]int {
	return b.matrix(func(i int) int { return int(b.adjacent[i]) })
}
