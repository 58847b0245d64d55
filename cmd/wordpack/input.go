package main

import (
	"fmt"
	"os"

	"github.com/c2h5oh/datasize"
	"github.com/edsrzf/mmap-go"
)

// mapInput maps path read-only. The returned function releases the mapping;
// the data must not be used after it is called.
func mapInput(path string, limit datasize.ByteSize) ([]byte, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, nil, err
	}
	size := datasize.ByteSize(fi.Size())
	if size > limit {
		return nil, nil, fmt.Errorf("%s is %s, larger than the %s limit", path, size.HumanReadable(), limit.HumanReadable())
	}
	if size == 0 {
		// Empty files can't be mapped.
		return nil, func() error { return nil }, nil
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, nil, fmt.Errorf("mapping %s: %w", path, err)
	}
	return m, m.Unmap, nil
}
