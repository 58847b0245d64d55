// Package lz4 stores wordpack output files in the LZ4 frame format.
package lz4

import (
	"encoding/binary"
	"hash"
	"io"

	"github.com/pierrec/lz4/v4"
	"github.com/pierrec/xxHash/xxHash32"
)

// Container is a codec.Container for LZ4 frames.
type Container struct{}

func (Container) Name() string { return "lz4" }

func (Container) NewWriter(w io.Writer) (io.WriteCloser, error) { return NewFrameWriter(w), nil }

func (Container) NewReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(lz4.NewReader(r)), nil
}

const (
	blockSize = 4 << 20

	// uncompressedBit marks a block stored as is.
	uncompressedBit = 1 << 31
)

// A FrameWriter writes an LZ4 frame with independent 4 MB blocks and a
// content checksum.
type FrameWriter struct {
	dst     io.Writer
	hasher  hash.Hash32
	c       lz4.Compressor
	pending []byte
	block   []byte
	out     []byte
	err     error
}

func NewFrameWriter(dst io.Writer) *FrameWriter {
	return &FrameWriter{dst: dst}
}

func (f *FrameWriter) Write(p []byte) (n int, err error) {
	if f.err != nil {
		return 0, f.err
	}
	for len(p) > 0 {
		k := min(len(p), blockSize-len(f.pending))
		f.pending = append(f.pending, p[:k]...)
		p = p[k:]
		n += k
		if len(f.pending) == blockSize {
			if err := f.flush(false); err != nil {
				return n, err
			}
		}
	}
	return n, nil
}

// Close writes the last block, the end mark, and the checksum.
// It does not close the underlying writer.
func (f *FrameWriter) Close() error {
	if f.err != nil {
		return f.err
	}
	return f.flush(true)
}

func (f *FrameWriter) flush(lastBlock bool) error {
	out, err := f.encode(f.out[:0], f.pending, lastBlock)
	f.out = out
	f.pending = f.pending[:0]
	if err == nil {
		_, err = f.dst.Write(f.out)
	}
	if err != nil {
		f.err = err
	}
	return err
}

func (f *FrameWriter) encode(dst []byte, src []byte, lastBlock bool) ([]byte, error) {
	if f.hasher == nil {
		f.hasher = xxHash32.New(0)
		dst = binary.LittleEndian.AppendUint32(dst, 0x184D2204)
		// Frame header for independent blocks, content checksum enabled,
		// and 4-MB blocks.
		dst = append(dst, 0x64, 0x70, 0xb9)
	}

	if len(src) > 0 {
		if bound := lz4.CompressBlockBound(len(src)); cap(f.block) < bound {
			f.block = make([]byte, bound)
		}
		n, err := f.c.CompressBlock(src, f.block[:cap(f.block)])
		if err != nil {
			return dst, err
		}
		if n == 0 || n >= len(src) {
			dst = binary.LittleEndian.AppendUint32(dst, uint32(len(src))|uncompressedBit)
			dst = append(dst, src...)
		} else {
			dst = binary.LittleEndian.AppendUint32(dst, uint32(n))
			dst = append(dst, f.block[:n]...)
		}
		f.hasher.Write(src)
	}

	if lastBlock {
		dst = append(dst, 0, 0, 0, 0)
		dst = binary.LittleEndian.AppendUint32(dst, f.hasher.Sum32())
	}

	return dst, nil
}
