// Package wordpack builds a static substitution dictionary for a corpus.
//
// It repeatedly picks the repeated substring ("word") whose substitution
// most reduces the order-0 entropy of the corpus, replaces its occurrences,
// and updates the symbol model, until no candidate gains anything. The
// result is a dictionary and a stream of 16-bit tokens: values below 256 are
// literal bytes, and 256+i stands for dictionary entry i.
//
// The work is split into a few steps that keep their own files:
//   - candidates come from a sweep over the LCP array (candidates.go)
//   - each round ranks every live candidate against the corpus index (rank.go)
//   - the best one is committed and its occurrences are split out of the
//     free runs of the corpus (split.go)
//
// Suffix-array construction is left to a SuffixSorter; the suffix package
// provides one.
package wordpack

// Pos is an offset into the corpus buffer.
type Pos int32

// SAIdx is an index into the suffix array (a suffix rank, not an offset).
type SAIdx int32

// A SuffixSorter builds the suffix array and the LCP array of a buffer.
// LCP(buf, sa)[i] must be the length of the common prefix of the suffixes
// ranked i and i+1, with a 0 in the last slot.
type SuffixSorter interface {
	SuffixArray(buf []byte) []int32
	LCP(buf []byte, sa []int32) []int32
}

// A candidate is a possible dictionary word: the suffixes ranked Start through
// Start+Count-1 all begin with the same Len bytes.
type candidate struct {
	Start SAIdx
	Count int32
	Len   int32

	// SelfOverlap reports whether two occurrences of this candidate may
	// overlap, which forces a sorted scan when counting.
	SelfOverlap bool

	dead bool
}

// A Word is a dictionary entry.
type Word struct {
	// Location is the offset of one occurrence of the word in the corpus.
	Location Pos
	Len      int

	// Count is the number of occurrences replaced by this word.
	Count int

	// Rank is the estimated entropy reduction, in bits, at the time the word
	// was chosen.
	Rank float64

	start SAIdx
	size  int32
}
