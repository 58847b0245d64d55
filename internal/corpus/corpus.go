// Package corpus generates deterministic inputs for tests and benchmarks.
package corpus

import "math/rand"

var vocabulary = []string{
	"the", "of", "light", "rays", "colours", "refraction", "prism", "and",
	"which", "experiment", "glass", "is", "that", "red", "violet", "were",
	"in", "by", "same", "paper", "image", "sun", "hole", "window",
}

// Text returns size bytes of prose-like text built from a small vocabulary.
func Text(seed int64, size int) []byte {
	rng := rand.New(rand.NewSource(seed))
	var b []byte
	for len(b) < size {
		b = append(b, vocabulary[rng.Intn(len(vocabulary))]...)
		if rng.Intn(12) == 0 {
			b = append(b, ". "...)
		} else {
			b = append(b, ' ')
		}
	}
	return b[:size]
}

// Random returns size bytes that don't compress.
func Random(seed int64, size int) []byte {
	b := make([]byte, size)
	rand.New(rand.NewSource(seed)).Read(b)
	return b
}
