// Package flate stores wordpack output files as gzip streams.
package flate

import (
	"hash/crc32"
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
)

// Container is a codec.Container for gzip files.
// Levels 1-9 are available; zero means level 6, and levels outside this
// range will be replaced with the closest level available.
type Container struct {
	Level int
}

func (Container) Name() string { return "gzip" }

func (c Container) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return NewGZIPWriter(w, c.Level)
}

func (Container) NewReader(r io.Reader) (io.ReadCloser, error) {
	return gzip.NewReader(r)
}

// A GZIPWriter writes a gzip member with no file name and no timestamp,
// so the same input always gives the same output.
type GZIPWriter struct {
	dst    io.Writer
	f      *flate.Writer
	length uint32
	crc    uint32
}

func NewGZIPWriter(dst io.Writer, level int) (*GZIPWriter, error) {
	switch {
	case level == 0:
		level = 6
	case level < 1:
		level = 1
	case level > 9:
		level = 9
	}

	if _, err := dst.Write(header(nil)); err != nil {
		return nil, err
	}
	f, err := flate.NewWriter(dst, level)
	if err != nil {
		return nil, err
	}
	return &GZIPWriter{dst: dst, f: f}, nil
}

func header(dst []byte) []byte {
	dst = append(dst,
		0x1f, 0x8b, // magic number
		8, // CM = flate
		0, // FLG
	)
	dst = appendUint32(dst, 0) // MTIME (none)
	dst = append(dst,
		0,   // XFL
		255, // OS (unspecified)
	)
	return dst
}

func appendUint32(dst []byte, n uint32) []byte {
	return append(dst,
		byte(n),
		byte(n>>8),
		byte(n>>16),
		byte(n>>24),
	)
}

func (g *GZIPWriter) Write(p []byte) (int, error) {
	g.length += uint32(len(p))
	g.crc = crc32.Update(g.crc, crc32.IEEETable, p)
	return g.f.Write(p)
}

// Close finishes the flate stream and writes the trailer.
// It does not close the underlying writer.
func (g *GZIPWriter) Close() error {
	if err := g.f.Close(); err != nil {
		return err
	}
	var trailer []byte
	trailer = appendUint32(trailer, g.crc)
	trailer = appendUint32(trailer, g.length)
	_, err := g.dst.Write(trailer)
	return err
}
