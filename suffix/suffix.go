// Package suffix builds suffix arrays and longest-common-prefix arrays for
// byte buffers.
//
// The suffix array is built by prefix doubling with counting sorts, so it
// runs in O(n log n) time and needs three int32 slices of length n. Shorter
// suffixes sort before longer ones that they are a prefix of, the same order
// index/suffixarray uses.
package suffix

import "math"

// A Sorter implements wordpack.SuffixSorter with the functions in this
// package.
type Sorter struct{}

func (Sorter) SuffixArray(buf []byte) []int32 { return Array(buf) }

func (Sorter) LCP(buf []byte, sa []int32) []int32 { return LCP(buf, sa) }

// Array returns the suffix array of buf: sa[i] is the offset of the i-th
// smallest suffix. It panics if buf is longer than math.MaxInt32 bytes.
func Array(buf []byte) []int32 {
	n := len(buf)
	if n > math.MaxInt32 {
		panic("suffix: buffer too large for int32 suffix array")
	}
	sa := make([]int32, n)
	if n == 0 {
		return sa
	}

	rank := make([]int32, n)
	tmp := make([]int32, n)
	cnt := make([]int32, max(n, 256))

	// Bucket by first byte.
	for _, c := range buf {
		cnt[c]++
	}
	sum := int32(0)
	for c := 0; c < 256; c++ {
		sum += cnt[c]
		cnt[c] = sum
	}
	for i := n - 1; i >= 0; i-- {
		c := buf[i]
		cnt[c]--
		sa[cnt[c]] = int32(i)
	}
	classes := int32(0)
	rank[sa[0]] = 0
	for i := 1; i < n; i++ {
		if buf[sa[i]] != buf[sa[i-1]] {
			classes++
		}
		rank[sa[i]] = classes
	}
	classes++

	for k := 1; k < n && int(classes) < n; k <<= 1 {
		// Order by the second half first. Suffixes shorter than k+1 have an
		// empty second half and go in front.
		p := 0
		for i := n - k; i < n; i++ {
			tmp[p] = int32(i)
			p++
		}
		for _, s := range sa {
			if int(s) >= k {
				tmp[p] = s - int32(k)
				p++
			}
		}

		// Stable counting sort by the first half.
		clear(cnt[:classes])
		for _, r := range rank {
			cnt[r]++
		}
		sum := int32(0)
		for r := int32(0); r < classes; r++ {
			sum += cnt[r]
			cnt[r] = sum
		}
		for i := n - 1; i >= 0; i-- {
			s := tmp[i]
			r := rank[s]
			cnt[r]--
			sa[cnt[r]] = s
		}

		second := func(s int32) int32 {
			if int(s)+k < n {
				return rank[int(s)+k]
			}
			return -1
		}
		c := int32(0)
		tmp[sa[0]] = 0
		for i := 1; i < n; i++ {
			a, b := sa[i-1], sa[i]
			if rank[a] != rank[b] || second(a) != second(b) {
				c++
			}
			tmp[b] = c
		}
		rank, tmp = tmp, rank
		classes = c + 1
	}

	return sa
}

// LCP returns the longest-common-prefix array for buf and its suffix array
// sa: lcp[i] is the length of the common prefix of the suffixes ranked i and
// i+1. The last entry is always 0.
func LCP(buf []byte, sa []int32) []int32 {
	n := len(sa)
	lcp := make([]int32, n)
	if n == 0 {
		return lcp
	}
	rank := make([]int32, n)
	for i, s := range sa {
		rank[s] = int32(i)
	}

	// Kasai et al., run against the following suffix instead of the
	// preceding one. h drops by at most one between consecutive positions.
	h := 0
	for p := 0; p < n; p++ {
		r := int(rank[p])
		if r == n-1 {
			h = 0
			continue
		}
		q := int(sa[r+1])
		for p+h < n && q+h < n && buf[p+h] == buf[q+h] {
			h++
		}
		lcp[r] = int32(h)
		if h > 0 {
			h--
		}
	}
	return lcp
}
