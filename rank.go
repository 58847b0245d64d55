package wordpack

// rank counts the free occurrences of m and estimates how many bits
// replacing them with one dictionary symbol would save under an order-0
// model of the residual corpus. It reports false, and marks m dead, if the
// word occurs fewer than twice or saves nothing.
//
// counts is scratch space that must be all zero on entry; it is left zeroed.
func (ix *corpusIndex) rank(m *candidate, counts *[256]int32, xlog func(float64) float64) (Word, bool) {
	count, loc := ix.count(m)
	if count < 2 {
		m.dead = true
		return Word{}, false
	}

	word := ix.buf[loc : loc+Pos(m.Len)]
	for _, c := range word {
		counts[c]++
	}

	c := float64(count)
	n := float64(ix.n)
	length := float64(m.Len)
	n1 := n - c*(length-1)

	var rank float64
	for _, sym := range word {
		k := counts[sym]
		if k == 0 {
			// Already accounted for.
			continue
		}
		counts[sym] = 0

		cx := ix.model[sym]
		cxw := cx - float64(k)*c
		rank += xlog(cxw) - xlog(cx)
	}

	rank -= 8 * (length + 1) // dictionary overhead
	rank += xlog(c)
	rank -= xlog(n1)
	rank += xlog(n)

	// NaN fails this test too.
	if !(rank > 0) {
		m.dead = true
		return Word{}, false
	}

	return Word{
		Location: loc,
		Len:      int(m.Len),
		Count:    int(count),
		Rank:     rank,
		start:    m.Start,
		size:     m.Count,
	}, true
}
