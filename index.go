package wordpack

import (
	"math"
	"slices"
)

// A corpusIndex holds the corpus and everything that changes as words are
// committed: which positions are still free, and the order-0 model of the
// bytes that are left.
type corpusIndex struct {
	buf []byte
	sa  []Pos

	// occupancy[p] is -1 if p has been consumed by a word. Otherwise it is
	// the number of free positions that directly follow p, so a run of L
	// bytes at p is free iff occupancy[p] >= L-1.
	occupancy []int32

	// model[c] is the number of free bytes with value c.
	model [256]float64

	// n is the residual corpus size in symbols: free bytes plus one per
	// committed occurrence.
	n int64
}

// newIndex builds the corpusIndex for buf and returns it along with the LCP
// array, which is only needed to generate candidates. It panics if buf does not fit
// an int32 suffix array.
func newIndex(buf []byte, s SuffixSorter) (*corpusIndex, []int32) {
	if len(buf) > math.MaxInt32 {
		panic("wordpack: corpus larger than math.MaxInt32 bytes")
	}

	raw := s.SuffixArray(buf)
	if len(raw) != len(buf) {
		panic("wordpack: suffix array has the wrong length")
	}
	lcp := s.LCP(buf, raw)

	ix := &corpusIndex{
		buf:       buf,
		sa:        make([]Pos, len(raw)),
		occupancy: make([]int32, len(buf)),
		n:         int64(len(buf)),
	}
	for i, p := range raw {
		ix.sa[i] = Pos(p)
	}
	last := int32(len(buf) - 1)
	for i := range ix.occupancy {
		ix.occupancy[i] = last - int32(i)
	}
	for _, c := range buf {
		ix.model[c]++
	}
	return ix, lcp
}

// Len returns the size of the corpus.
func (ix *corpusIndex) Len() int { return len(ix.buf) }

// Residual returns the estimated residual corpus size.
func (ix *corpusIndex) Residual() int64 { return ix.n }

func (ix *corpusIndex) free(p Pos, length int32) bool {
	return ix.occupancy[p] >= length-1
}

func (ix *corpusIndex) bytes(w *Word) []byte {
	return ix.buf[w.Location : int(w.Location)+w.Len]
}

// positions returns the buffer offsets of the suffixes in an SA range, sorted.
func (ix *corpusIndex) positions(start SAIdx, size int32) []Pos {
	locs := slices.Clone(ix.sa[start : start+SAIdx(size)])
	slices.Sort(locs)
	return locs
}

// count returns the number of non-overlapping free occurrences of m and the
// first of them.
func (ix *corpusIndex) count(m *candidate) (count int32, loc Pos) {
	if m.SelfOverlap {
		return ix.countSorted(m)
	}

	loc = Pos(math.MaxInt32)
	for _, p := range ix.sa[m.Start : m.Start+SAIdx(m.Count)] {
		if ix.free(p, m.Len) {
			count++
			loc = min(loc, p)
		}
	}
	return count, loc
}

// countSorted walks the occurrences of m from left to right, keeping the
// leftmost of any overlapping pair. It also refreshes m.SelfOverlap: once
// no two free occurrences overlap, they never will again, because positions
// are only ever consumed.
func (ix *corpusIndex) countSorted(m *candidate) (count int32, loc Pos) {
	last := Pos(-m.Len)
	overlap := false
	loc = Pos(math.MaxInt32)
	for _, p := range ix.positions(m.Start, m.Count) {
		if p < last+Pos(m.Len) {
			overlap = true
			continue
		}
		if ix.free(p, m.Len) {
			count++
			loc = min(loc, p)
			last = p
		}
	}
	m.SelfOverlap = overlap
	return count, loc
}

// commit subtracts the occurrences of w from the model.
func (ix *corpusIndex) commit(w *Word) {
	count := float64(w.Count)
	for _, c := range ix.bytes(w) {
		ix.model[c] -= count
	}
	ix.n -= int64(w.Count) * int64(w.Len-1)
}
