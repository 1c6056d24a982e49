package mines

// countAdjacent runs once per board, every mine bumps the count of each of
// its existing neighbours.
func (b *Board) countAdjacent() {
	for i, m := range b.mine {
		if !m {
			continue
		}
		for j := range b.neighbours(i) {
			b.adjacent[j]++
		}
	}
}
