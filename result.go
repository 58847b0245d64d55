package wordpack

import (
	"errors"
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
)

// TokenBase is the token value of the first dictionary entry. Smaller token
// values are literal bytes.
const TokenBase = 256

// A Result is the output of Builder.Build.
type Result struct {
	// Dictionary holds the committed words, in the order they were chosen.
	Dictionary []Word

	buf         []byte
	occurrences [][]Pos // sorted offsets replaced by each word
	occupancy   []int32
	residual    int64
}

// Residual returns the residual corpus size after the last commit. It is the
// number of tokens in the token stream.
func (r *Result) Residual() int64 { return r.residual }

// Occurrences returns the offsets where dictionary entry i replaced the
// corpus, in increasing order.
func (r *Result) Occurrences(i int) []Pos { return r.occurrences[i] }

// Entries returns the literal contents of the dictionary entries.
func (r *Result) Entries() [][]byte {
	entries := make([][]byte, len(r.Dictionary))
	for i, w := range r.Dictionary {
		entries[i] = r.buf[w.Location : int(w.Location)+w.Len]
	}
	return entries
}

// Tokens returns the token stream for the corpus: one token per dictionary
// occurrence (TokenBase + entry index) and one per byte not covered by any
// occurrence (the byte value).
func (r *Result) Tokens() []uint16 {
	// owner[p] is 1 + the entry whose occurrence starts at p, or 0.
	owner := make([]uint16, len(r.buf))
	for i, occ := range r.occurrences {
		for _, p := range occ {
			owner[p] = uint16(i + 1)
		}
	}

	tokens := make([]uint16, 0, r.residual)
	for pos := 0; pos < len(r.buf); {
		if o := owner[pos]; o != 0 {
			tokens = append(tokens, TokenBase+o-1)
			pos += r.Dictionary[o-1].Len
			continue
		}
		tokens = append(tokens, uint16(r.buf[pos]))
		pos++
	}
	return tokens
}

var errOverlap = errors.New("wordpack: dictionary occurrences overlap")

// Verify checks the invariants of a finished build: occurrences are
// disjoint and exactly cover the consumed positions, every word was chosen
// with a positive rank and at least two occurrences, and the residual size
// matches the token count.
func (r *Result) Verify() error {
	covered := roaring.New()
	for i, w := range r.Dictionary {
		if w.Count < 2 {
			return fmt.Errorf("wordpack: word %d has %d occurrences", i, w.Count)
		}
		if !(w.Rank > 0) {
			return fmt.Errorf("wordpack: word %d has rank %v", i, w.Rank)
		}
		if len(r.occurrences[i]) != w.Count {
			return fmt.Errorf("wordpack: word %d replaced %d occurrences, want %d", i, len(r.occurrences[i]), w.Count)
		}
		want := r.buf[w.Location : int(w.Location)+w.Len]
		for _, p := range r.occurrences[i] {
			end := int(p) + w.Len
			if string(r.buf[p:end]) != string(want) {
				return fmt.Errorf("wordpack: word %d does not occur at %d", i, p)
			}
			for q := p; int(q) < end; q++ {
				if covered.Contains(uint32(q)) {
					return fmt.Errorf("%w: word %d at %d", errOverlap, i, p)
				}
			}
			covered.AddRange(uint64(p), uint64(end))
		}
	}

	consumed := 0
	for p, o := range r.occupancy {
		if o == -1 {
			consumed++
			if !covered.Contains(uint32(p)) {
				return fmt.Errorf("wordpack: position %d consumed but not covered", p)
			}
		}
	}
	if uint64(consumed) != covered.GetCardinality() {
		return fmt.Errorf("wordpack: %d positions consumed, %d covered", consumed, covered.GetCardinality())
	}

	if want := int64(len(r.buf)) - int64(consumed) + int64(r.occurrenceCount()); r.residual != want {
		return fmt.Errorf("wordpack: residual size %d, want %d", r.residual, want)
	}
	if r.residual < int64(len(r.Dictionary)) {
		return fmt.Errorf("wordpack: residual size %d below dictionary size %d", r.residual, len(r.Dictionary))
	}
	return nil
}

func (r *Result) occurrenceCount() int {
	n := 0
	for _, occ := range r.occurrences {
		n += len(occ)
	}
	return n
}
