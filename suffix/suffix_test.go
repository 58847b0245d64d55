package suffix

import (
	"bytes"
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func naiveArray(buf []byte) []int32 {
	sa := make([]int32, len(buf))
	for i := range sa {
		sa[i] = int32(i)
	}
	sort.Slice(sa, func(i, j int) bool {
		return bytes.Compare(buf[sa[i]:], buf[sa[j]:]) < 0
	})
	return sa
}

func naiveLCP(buf []byte, sa []int32) []int32 {
	lcp := make([]int32, len(sa))
	for i := 0; i+1 < len(sa); i++ {
		a, b := buf[sa[i]:], buf[sa[i+1]:]
		h := 0
		for h < len(a) && h < len(b) && a[h] == b[h] {
			h++
		}
		lcp[i] = int32(h)
	}
	return lcp
}

func TestArray(t *testing.T) {
	data := []byte{4, 5, 6, 4, 5, 6, 4, 5, 6}
	assert.Equal(t, []int32{6, 3, 0, 7, 4, 1, 8, 5, 2}, Array(data))
}

func TestArrayEmpty(t *testing.T) {
	assert.Empty(t, Array(nil))
	assert.Empty(t, LCP(nil, nil))
	assert.Equal(t, []int32{0}, Array([]byte{'x'}))
	assert.Equal(t, []int32{0}, LCP([]byte{'x'}, []int32{0}))
}

func TestLCPPeriodic(t *testing.T) {
	buf := []byte("abababab")
	sa := Array(buf)
	require.Equal(t, []int32{6, 4, 2, 0, 7, 5, 3, 1}, sa)
	assert.Equal(t, []int32{2, 4, 6, 0, 1, 3, 5, 0}, LCP(buf, sa))
}

func TestAgainstNaive(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, alphabet := range []int{1, 2, 4, 26, 256} {
		for _, size := range []int{2, 3, 17, 100, 1000} {
			t.Run(fmt.Sprintf("%d-%d", alphabet, size), func(t *testing.T) {
				buf := make([]byte, size)
				for i := range buf {
					buf[i] = byte(rng.Intn(alphabet))
				}
				sa := Array(buf)
				require.Equal(t, naiveArray(buf), sa)
				require.Equal(t, naiveLCP(buf, sa), LCP(buf, sa))
			})
		}
	}
}

func BenchmarkArray(b *testing.B) {
	for _, size := range []int{1024, 64 * 1024, 1024 * 1024} {
		b.Run(fmt.Sprintf("%d", size), func(b *testing.B) {
			rng := rand.New(rand.NewSource(0))
			data := make([]byte, size)
			for i := range data {
				data[i] = byte('a' + rng.Intn(4))
			}
			b.SetBytes(int64(size))
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				Array(data)
			}
		})
	}
}
