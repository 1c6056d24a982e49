package mines

import "github.com/gammazero/deque"

// PutFlag toggles the flag on a hidden cell. Revealed cells are left alone.
func (b *Board) PutFlag(row, col int) error {
	if !b.InBounds(row, col) {
		return argumentErrorf("cell %d:%d is outside the %dx%d board", row, col, b.rows, b.cols)
	}
	i := b.index(row, col)
	if !b.revealed[i] {
		b.flag[i] = !b.flag[i]
	}
	return nil
}

/*
Reveal opens a cell. Flagged and already revealed cells are ignored. A cell
with no adjacent mines opens all of its neighbours as well, and so on until
the open region is bordered by numbered or flagged cells.

Opening a mine is not an error, [Board.IsLost] reports it afterwards.
*/
func (b *Board) Reveal(row, col int) error {
	if !b.InBounds(row, col) {
		return argumentErrorf("cell %d:%d is outside the %dx%d board", row, col, b.rows, b.cols)
	}
	i := b.index(row, col)
	if b.revealed[i] || b.flag[i] {
		return nil
	}

	// cells are marked revealed before they are queued, so each one is
	// queued at most once
	var todo deque.Deque[int]
	b.revealed[i] = true
	todo.PushBack(i)

	for todo.Len() > 0 {
		j := todo.PopFront()
		if b.adjacent[j] != 0 {
			continue
		}
		for k := range b.neighbours(j) {
			if b.revealed[k] || b.flag[k] {
				continue
			}
			b.revealed[k] = true
			todo.PushBack(k)
		}
	}

	return nil
}
