// Package zstd stores wordpack output files as Zstandard frames.
package zstd

import (
	"io"

	"github.com/klauspost/compress/zstd"
)

// Container is a codec.Container for Zstandard.
// Level uses the zstd command-line scale (1-22); zero means the
// library's default.
type Container struct {
	Level int
}

func (Container) Name() string { return "zstd" }

func (c Container) NewWriter(w io.Writer) (io.WriteCloser, error) {
	opts := []zstd.EOption{
		zstd.WithEncoderCRC(true),
		zstd.WithEncoderConcurrency(1),
	}
	if c.Level != 0 {
		opts = append(opts, zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(c.Level)))
	}
	return zstd.NewWriter(w, opts...)
}

func (Container) NewReader(r io.Reader) (io.ReadCloser, error) {
	d, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, err
	}
	return d.IOReadCloser(), nil
}
