package wordpack

import (
	"runtime"
	"slices"
	"time"

	"github.com/c2h5oh/datasize"
	"github.com/ledgerwatch/log/v3"
	"golang.org/x/sync/errgroup"

	"github.com/andybalholm/wordpack/suffix"
)

// MaxWords is the largest dictionary a 16-bit token stream can address.
const MaxWords = 1<<16 - 256

// Ranking is split across workers only when each one gets at least this
// many candidates.
const minChunk = 4096

// A Builder runs the greedy dictionary construction. The zero value is
// ready to use.
type Builder struct {
	// MaxLen caps the length of candidate words. The default is
	// DefaultMaxLen; values above MaxLen are reduced to MaxLen.
	MaxLen int

	// MaxWords caps the size of the dictionary. The default (and the
	// upper limit) is MaxWords.
	MaxWords int

	// Workers is the number of goroutines used to rank candidates. The
	// default is GOMAXPROCS. The result does not depend on it.
	Workers int

	// FastLog switches the entropy estimate to a polynomial approximation
	// of log2.
	FastLog bool

	// Sorter builds the suffix and LCP arrays. The default is suffix.Sorter.
	Sorter SuffixSorter

	// Logger receives progress messages. The default is log.Root().
	Logger log.Logger

	// OnCommit, if set, is called after each word is committed, with the
	// residual corpus size after the commit.
	OnCommit func(w Word, residual int64)
}

func (b *Builder) init() {
	if b.MaxLen <= 0 {
		b.MaxLen = DefaultMaxLen
	}
	if b.MaxLen > MaxLen {
		b.MaxLen = MaxLen
	}
	if b.MaxWords <= 0 || b.MaxWords > MaxWords {
		b.MaxWords = MaxWords
	}
	if b.Workers <= 0 {
		b.Workers = runtime.GOMAXPROCS(0)
	}
	if b.Sorter == nil {
		b.Sorter = suffix.Sorter{}
	}
	if b.Logger == nil {
		b.Logger = log.Root()
	}
}

// Build constructs the dictionary for buf. buf must not be modified until
// the Result is no longer needed.
func (b *Builder) Build(buf []byte) *Result {
	b.init()
	start := time.Now()

	ix, lcp := newIndex(buf, b.Sorter)
	matches := generate(lcp, int32(b.MaxLen))
	b.Logger.Info("Building dictionary", "size", datasize.ByteSize(len(buf)).HumanReadable(),
		"candidates", len(matches), "workers", b.Workers)

	xlog := xlog2
	if b.FastLog {
		xlog = fastXLog2
	}

	r := &Result{buf: buf}
	for len(r.Dictionary) < b.MaxWords {
		w, ok := b.best(ix, matches, xlog)
		if !ok {
			break
		}

		occ := ix.split(&w)
		if len(occ) != w.Count {
			panic("wordpack: split consumed a different number of occurrences than were ranked")
		}
		ix.commit(&w)
		r.Dictionary = append(r.Dictionary, w)
		r.occurrences = append(r.occurrences, occ)

		b.Logger.Debug("Committed word", "index", len(r.Dictionary)-1, "len", w.Len,
			"count", w.Count, "rank", w.Rank, "residual", ix.n, "candidates", len(matches))
		if b.OnCommit != nil {
			b.OnCommit(w, ix.n)
		}

		matches = slices.DeleteFunc(matches, func(m candidate) bool { return m.dead })
	}

	r.occupancy = ix.occupancy
	r.residual = ix.n
	b.Logger.Info("Dictionary built", "words", len(r.Dictionary), "residual", ix.n,
		"took", time.Since(start))
	return r
}

// best ranks every live candidate and returns the highest ranked word. Ties
// go to the candidate that comes first in matches.
func (b *Builder) best(ix *corpusIndex, matches []candidate, xlog func(float64) float64) (Word, bool) {
	workers := min(b.Workers, len(matches)/minChunk)
	if workers <= 1 {
		var counts [256]int32
		return rankRange(ix, matches, &counts, xlog)
	}

	type pick struct {
		w  Word
		ok bool
	}
	picks := make([]pick, workers)
	chunk := (len(matches) + workers - 1) / workers

	var g errgroup.Group
	for i := range picks {
		i := i
		lo := min(i*chunk, len(matches))
		hi := min(lo+chunk, len(matches))
		g.Go(func() error {
			var counts [256]int32
			picks[i].w, picks[i].ok = rankRange(ix, matches[lo:hi], &counts, xlog)
			return nil
		})
	}
	_ = g.Wait()

	var best Word
	found := false
	for _, p := range picks {
		if p.ok && (!found || p.w.Rank > best.Rank) {
			best, found = p.w, true
		}
	}
	return best, found
}

func rankRange(ix *corpusIndex, matches []candidate, counts *[256]int32, xlog func(float64) float64) (best Word, found bool) {
	for i := range matches {
		m := &matches[i]
		if m.dead {
			continue
		}
		w, ok := ix.rank(m, counts, xlog)
		if ok && (!found || w.Rank > best.Rank) {
			best, found = w, true
		}
	}
	return best, found
}
