package wordpack

// DefaultMaxLen is the default cap on candidate length. Longer repeats are
// still found, truncated to this length.
const DefaultMaxLen = 255

// MaxLen is the longest word the dictionary format can store.
const MaxLen = 1<<16 - 1

type openRange struct {
	start SAIdx
	len   int32
}

// generate turns an LCP array into the initial candidate list. For every
// length from 2 up to each LCP plateau it emits the maximal SA range whose
// suffixes share that many bytes. LCP values above maxLen are clamped.
func generate(lcp []int32, maxLen int32) []candidate {
	matches := make([]candidate, 0, len(lcp)*3/4)
	var stack []openRange

	for i, l := range lcp {
		l = min(l, maxLen)

		// Close every range that suffix i+1 no longer extends.
		for len(stack) > 0 && stack[len(stack)-1].len > l {
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			matches = append(matches, candidate{
				Start:       top.start,
				Count:       int32(i) - int32(top.start) + 1,
				Len:         top.len,
				SelfOverlap: true,
			})
		}

		// Open ranges for the lengths that start at i.
		next := int32(2)
		if len(stack) > 0 {
			next = stack[len(stack)-1].len + 1
		}
		for ; next <= l; next++ {
			stack = append(stack, openRange{start: SAIdx(i), len: next})
		}
	}

	if len(stack) != 0 {
		panic("wordpack: LCP array left open candidate ranges")
	}
	return matches
}
