package flate

import (
	"bytes"
	"compress/gzip"
	"io"
	"testing"

	"github.com/andybalholm/wordpack/internal/corpus"
)

func test(t *testing.T, data []byte, level int) {
	b := new(bytes.Buffer)
	w, err := NewGZIPWriter(b, level)
	if err != nil {
		t.Fatal(err)
	}
	w.Write(data)
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	compressed := b.Bytes()

	// Check against the standard library's reader rather than the one
	// the container uses.
	gr, err := gzip.NewReader(bytes.NewReader(compressed))
	if err != nil {
		t.Fatal(err)
	}
	decompressed, err := io.ReadAll(gr)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(decompressed, data) {
		t.Fatal("decompressed output doesn't match")
	}
	if !gr.ModTime.IsZero() {
		t.Fatalf("ModTime = %v, want zero", gr.ModTime)
	}
}

func TestEncode(t *testing.T) {
	opticks := corpus.Text(1, 100000)
	for _, level := range []int{-5, 0, 1, 6, 9, 20} {
		test(t, opticks, level)
	}
}

func TestEncodeEmpty(t *testing.T) {
	test(t, nil, 0)
}

func TestDeterministic(t *testing.T) {
	data := corpus.Text(2, 10000)
	var a, b bytes.Buffer
	for _, buf := range []*bytes.Buffer{&a, &b} {
		w, err := Container{}.NewWriter(buf)
		if err != nil {
			t.Fatal(err)
		}
		w.Write(data)
		w.Close()
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Fatal("output differs between runs")
	}

	r, err := Container{}.NewReader(&a)
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	decompressed, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(decompressed, data) {
		t.Fatal("decompressed output doesn't match")
	}
}

func BenchmarkEncode(b *testing.B) {
	b.StopTimer()
	b.ReportAllocs()
	data := corpus.Text(3, 1<<20)

	b.SetBytes(int64(len(data)))
	buf := new(bytes.Buffer)
	w, _ := NewGZIPWriter(buf, 6)
	w.Write(data)
	w.Close()
	b.ReportMetric(float64(len(data))/float64(buf.Len()), "ratio")
	b.StartTimer()
	for i := 0; i < b.N; i++ {
		w, _ := NewGZIPWriter(io.Discard, 6)
		w.Write(data)
		w.Close()
	}
}
