package wordpack

// split consumes every free, non-overlapping occurrence of w, left to right,
// and returns their offsets.
//
// Consuming a span marks it -1 and then walks backward from just before it,
// rewriting the free run that ends there, until it reaches the previous
// consumed position. Spans are found moving forward and repaired moving
// backward, so each repair only touches the gap in front of its own span.
func (ix *corpusIndex) split(w *Word) []Pos {
	length := int32(w.Len)
	consumed := make([]Pos, 0, w.Count)
	last := Pos(-length)

	for _, p := range ix.positions(w.start, w.size) {
		if p < last+Pos(length) || !ix.free(p, length) {
			continue
		}
		last = p
		consumed = append(consumed, p)

		for i := p + Pos(length) - 1; i >= p; i-- {
			ix.occupancy[i] = -1
		}

		run := int32(0)
		for i := p - 1; i >= 0 && ix.occupancy[i] != -1; i-- {
			ix.occupancy[i] = run
			run++
		}
	}
	return consumed
}
