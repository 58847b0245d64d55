// Package brotli stores wordpack output files as brotli streams.
package brotli

import (
	"io"

	"github.com/andybalholm/brotli"
)

// Container is a codec.Container for brotli.
// Levels 0-11 are available; zero means brotli.DefaultCompression.
type Container struct {
	Level int
}

func (Container) Name() string { return "brotli" }

func (c Container) NewWriter(w io.Writer) (io.WriteCloser, error) {
	level := c.Level
	if level == 0 {
		level = brotli.DefaultCompression
	}
	return brotli.NewWriterLevel(w, level), nil
}

func (Container) NewReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(brotli.NewReader(r)), nil
}
