package lz4

import (
	"bytes"
	"io"
	"testing"

	"github.com/pierrec/lz4/v4"

	"github.com/andybalholm/wordpack/internal/corpus"
)

func test(t *testing.T, data []byte) {
	b := new(bytes.Buffer)
	w := NewFrameWriter(b)
	w.Write(data)
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	compressed := b.Bytes()
	r := lz4.NewReader(bytes.NewReader(compressed))
	decompressed, err := io.ReadAll(r)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(decompressed, data) {
		t.Fatal("decompressed output doesn't match")
	}
}

func TestEncode(t *testing.T) {
	test(t, corpus.Text(1, 200000))
}

func TestEncodeMultipleBlocks(t *testing.T) {
	test(t, corpus.Text(2, blockSize+blockSize/2))
}

func TestEncodeIncompressible(t *testing.T) {
	test(t, corpus.Random(3, 100000))
}

func TestEncodeEmpty(t *testing.T) {
	test(t, nil)
}

func TestContainer(t *testing.T) {
	data := corpus.Text(4, 5000)
	b := new(bytes.Buffer)
	w, err := Container{}.NewWriter(b)
	if err != nil {
		t.Fatal(err)
	}
	w.Write(data)
	w.Close()
	r, err := Container{}.NewReader(b)
	if err != nil {
		t.Fatal(err)
	}
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
	data := corpus.Text(5, 1<<20)

	b.SetBytes(int64(len(data)))
	buf := new(bytes.Buffer)
	w := NewFrameWriter(buf)
	w.Write(data)
	w.Close()
	b.ReportMetric(float64(len(data))/float64(buf.Len()), "ratio")
	b.StartTimer()
	for i := 0; i < b.N; i++ {
		w := NewFrameWriter(io.Discard)
		w.Write(data)
		w.Close()
	}
}
