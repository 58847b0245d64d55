// Package snappy stores wordpack output files in the snappy framing format.
package snappy

import (
	"hash/crc32"
	"io"

	"github.com/golang/snappy"
)

// Container is a codec.Container for the snappy framing format.
type Container struct{}

func (Container) Name() string { return "snappy" }

func (Container) NewWriter(w io.Writer) (io.WriteCloser, error) { return NewWriter(w), nil }

func (Container) NewReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(snappy.NewReader(r)), nil
}

const maxBlockSize = 65536

var magicChunk = []byte("\xff\x06\x00\x00sNaPpY")

var crcTable = crc32.MakeTable(crc32.Castagnoli)

// crc implements the checksum specified in section 3 of
// https://github.com/google/snappy/blob/master/framing_format.txt
func crc(b []byte) uint32 {
	c := crc32.Update(0, crcTable, b)
	return uint32(c>>15|c<<17) + 0xa282ead8
}

// A Writer compresses its input into snappy frames of up to 64 KiB each.
type Writer struct {
	dst         io.Writer
	pending     []byte
	block       []byte
	out         []byte
	wroteHeader bool
	err         error
}

func NewWriter(dst io.Writer) *Writer {
	return &Writer{
		dst:     dst,
		pending: make([]byte, 0, maxBlockSize),
	}
}

func (w *Writer) Write(p []byte) (n int, err error) {
	if w.err != nil {
		return 0, w.err
	}
	for len(p) > 0 {
		k := min(len(p), maxBlockSize-len(w.pending))
		w.pending = append(w.pending, p[:k]...)
		p = p[k:]
		n += k
		if len(w.pending) == maxBlockSize {
			if err := w.flush(); err != nil {
				return n, err
			}
		}
	}
	return n, nil
}

// Close writes any buffered data. It does not close the underlying writer.
func (w *Writer) Close() error {
	if w.err != nil {
		return w.err
	}
	if len(w.pending) > 0 || !w.wroteHeader {
		return w.flush()
	}
	return nil
}

func (w *Writer) flush() error {
	w.out = w.encode(w.out[:0], w.pending)
	w.pending = w.pending[:0]
	if _, err := w.dst.Write(w.out); err != nil {
		w.err = err
		return err
	}
	return nil
}

// encode appends the chunk for src to dst, preceded by the stream
// identifier if it has not been written yet.
func (w *Writer) encode(dst []byte, src []byte) []byte {
	if len(src) > maxBlockSize {
		panic("block too large")
	}

	if !w.wroteHeader {
		dst = append(dst, magicChunk...)
		w.wroteHeader = true
	}
	if len(src) == 0 {
		return dst
	}

	start := len(dst)
	checksum := crc(src)

	dst = append(dst,
		0,       // chunk type: compressed data
		0, 0, 0, // placeholder for compressed length
		byte(checksum), byte(checksum>>8), byte(checksum>>16), byte(checksum>>24),
	)

	w.block = snappy.Encode(w.block[:cap(w.block)], src)
	dataLen := len(w.block)
	if dataLen >= len(src)-len(src)/8 {
		// The compression isn't saving even 12.5%.
		// Just do an uncompressed chunk.
		dst = append(dst, src...)
		dst[start] = 1 // chunk type: uncompressed data
		dataLen = len(src)
	} else {
		dst = append(dst, w.block...)
	}

	chunkLen := dataLen + 4
	dst[start+1] = byte(chunkLen)
	dst[start+2] = byte(chunkLen >> 8)
	dst[start+3] = byte(chunkLen >> 16)

	return dst
}
