package wordpack

import "strconv"

// A TextEncoder produces a human-readable rendering of a token stream.
// Literal bytes are copied, and dictionary tokens are replaced with <i>,
// where i is the entry index.
type TextEncoder struct {
	// Expand writes the entry contents inside the brackets instead of the
	// index: <word>.
	Expand bool
}

// Encode appends the rendering of tokens to dst. dict is only consulted when
// Expand is set.
func (t TextEncoder) Encode(dst []byte, dict [][]byte, tokens []uint16) []byte {
	for _, tok := range tokens {
		if tok < TokenBase {
			dst = append(dst, byte(tok))
			continue
		}
		i := int(tok - TokenBase)
		dst = append(dst, '<')
		if t.Expand && i < len(dict) {
			dst = append(dst, dict[i]...)
		} else {
			dst = strconv.AppendInt(dst, int64(i), 10)
		}
		dst = append(dst, '>')
	}
	return dst
}
