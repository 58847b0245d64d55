package codec

import (
	"fmt"
	"io"
	"os"
)

// A Container wraps a dictionary or token-stream file in a general-purpose
// compressed format. The format packages (brotli, flate, lz4, snappy, zstd)
// each provide one.
type Container interface {
	// Name is the short name used on the command line and as a file suffix.
	Name() string

	NewWriter(w io.Writer) (io.WriteCloser, error)
	NewReader(r io.Reader) (io.ReadCloser, error)
}

// Raw is the Container that stores files as they are.
type Raw struct{}

func (Raw) Name() string { return "raw" }

func (Raw) NewWriter(w io.Writer) (io.WriteCloser, error) { return nopWriteCloser{w}, nil }

func (Raw) NewReader(r io.Reader) (io.ReadCloser, error) { return io.NopCloser(r), nil }

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// WriteFile creates path and calls write with a writer that stores its
// output in container c.
func WriteFile(path string, c Container, write func(w io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()

	cw, err := c.NewWriter(f)
	if err != nil {
		return fmt.Errorf("codec: %s writer for %s: %w", c.Name(), path, err)
	}
	if err := write(cw); err != nil {
		cw.Close()
		return err
	}
	if err := cw.Close(); err != nil {
		return fmt.Errorf("codec: closing %s writer for %s: %w", c.Name(), path, err)
	}
	return nil
}

// ReadFile opens path and calls read with a reader that decodes container c.
func ReadFile(path string, c Container, read func(r io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	cr, err := c.NewReader(f)
	if err != nil {
		return fmt.Errorf("codec: %s reader for %s: %w", c.Name(), path, err)
	}
	defer cr.Close()
	return read(cr)
}
