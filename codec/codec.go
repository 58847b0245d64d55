// Package codec reads and writes the dictionary and token-stream files.
//
// Dictionary file: a 4-byte big-endian entry count, then for each entry a
// 2-byte big-endian length followed by that many bytes.
//
// Token stream: a sequence of 2-byte big-endian tokens. Values below 256 are
// literal bytes; 256+i refers to dictionary entry i.
package codec

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// TokenBase is the first token value that refers to a dictionary entry.
const TokenBase = 256

// ErrCorrupt is returned for input that is not a valid dictionary or token
// stream.
var ErrCorrupt = errors.New("codec: corrupt input")

var be = binary.BigEndian

const bufferSize = 1 << 16

// WriteDictionary writes entries to w in dictionary file format.
func WriteDictionary(w io.Writer, entries [][]byte) error {
	if uint64(len(entries)) > math.MaxUint32 {
		return fmt.Errorf("codec: %d dictionary entries do not fit the header", len(entries))
	}
	bw := bufio.NewWriterSize(w, bufferSize)

	var hdr [4]byte
	be.PutUint32(hdr[:], uint32(len(entries)))
	if _, err := bw.Write(hdr[:]); err != nil {
		return fmt.Errorf("codec: writing dictionary header: %w", err)
	}
	for i, e := range entries {
		if len(e) > math.MaxUint16 {
			return fmt.Errorf("codec: dictionary entry %d is %d bytes long", i, len(e))
		}
		var l [2]byte
		be.PutUint16(l[:], uint16(len(e)))
		if _, err := bw.Write(l[:]); err != nil {
			return fmt.Errorf("codec: writing dictionary entry %d: %w", i, err)
		}
		if _, err := bw.Write(e); err != nil {
			return fmt.Errorf("codec: writing dictionary entry %d: %w", i, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("codec: writing dictionary: %w", err)
	}
	return nil
}

// ReadDictionary reads a dictionary file.
func ReadDictionary(r io.Reader) ([][]byte, error) {
	br := bufio.NewReaderSize(r, bufferSize)

	var hdr [4]byte
	if _, err := io.ReadFull(br, hdr[:]); err != nil {
		return nil, fmt.Errorf("codec: reading dictionary header: %w", unexpected(err))
	}
	count := be.Uint32(hdr[:])

	// The count comes from the file; don't trust it for preallocation.
	entries := make([][]byte, 0, min(count, 1<<16))
	for i := uint32(0); i < count; i++ {
		var l [2]byte
		if _, err := io.ReadFull(br, l[:]); err != nil {
			return nil, fmt.Errorf("codec: reading dictionary entry %d: %w", i, unexpected(err))
		}
		e := make([]byte, be.Uint16(l[:]))
		if _, err := io.ReadFull(br, e); err != nil {
			return nil, fmt.Errorf("codec: reading dictionary entry %d: %w", i, unexpected(err))
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// WriteTokens writes tokens to w in token-stream format.
func WriteTokens(w io.Writer, tokens []uint16) error {
	bw := bufio.NewWriterSize(w, bufferSize)
	var b [2]byte
	for _, t := range tokens {
		be.PutUint16(b[:], t)
		if _, err := bw.Write(b[:]); err != nil {
			return fmt.Errorf("codec: writing tokens: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("codec: writing tokens: %w", err)
	}
	return nil
}

// ReadTokens reads a token stream until EOF.
func ReadTokens(r io.Reader) ([]uint16, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("codec: reading tokens: %w", err)
	}
	if len(data)%2 != 0 {
		return nil, fmt.Errorf("%w: token stream has odd length %d", ErrCorrupt, len(data))
	}
	tokens := make([]uint16, len(data)/2)
	for i := range tokens {
		tokens[i] = be.Uint16(data[2*i:])
	}
	return tokens, nil
}

// Decode appends the bytes represented by tokens to dst.
func Decode(dst []byte, dict [][]byte, tokens []uint16) ([]byte, error) {
	for i, t := range tokens {
		if t < TokenBase {
			dst = append(dst, byte(t))
			continue
		}
		e := int(t - TokenBase)
		if e >= len(dict) {
			return dst, fmt.Errorf("%w: token %d at %d refers to entry %d of %d", ErrCorrupt, t, i, e, len(dict))
		}
		dst = append(dst, dict[e]...)
	}
	return dst, nil
}

func unexpected(err error) error {
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		return fmt.Errorf("%w: %v", ErrCorrupt, io.ErrUnexpectedEOF)
	}
	return err
}
