package format

import (
	"strings"

	"golang.org/x/text/encoding/unicode"
)

// utf16le is the wire encoding of every native string property. Byte-order
// marks are neither expected nor emitted.
var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// DecodeUTF16 decodes a fixed-length, NUL-terminated UTF-16LE buffer. The
// text ends at the first NUL code unit; anything after it is ignored. A buffer
// without a terminator is decoded in full.
func DecodeUTF16(data []byte) (string, error) {
	if len(data)%2 != 0 {
		return "", ErrOddLength
	}
	if n := indexNUL(data); n >= 0 {
		data = data[:n]
	}
	if len(data) == 0 {
		return "", nil
	}
	out, err := utf16le.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// EncodeUTF16 encodes s as UTF-16LE followed by one NUL code unit. A string
// containing NUL fails with ErrEmbeddedNUL.
func EncodeUTF16(s string) ([]byte, error) {
	if strings.IndexByte(s, 0) >= 0 {
		return nil, ErrEmbeddedNUL
	}
	out, err := utf16le.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, err
	}
	return append(out, 0, 0), nil
}

// DecodeMultiString splits a double-terminated UTF-16LE block into its
// strings, preserving order. The empty segment produced by the final
// terminator is discarded, as is anything after it.
func DecodeMultiString(data []byte) ([]string, error) {
	if len(data)%2 != 0 {
		return nil, ErrOddLength
	}
	result := []string{}
	start := 0
	for i := 0; i+1 < len(data); i += 2 {
		if data[i] != 0 || data[i+1] != 0 {
			continue
		}
		if i == start {
			// empty segment: end of list
			return result, nil
		}
		s, err := DecodeUTF16(data[start:i])
		if err != nil {
			return nil, err
		}
		result = append(result, s)
		start = i + 2
	}
	if start < len(data) {
		// unterminated tail
		s, err := DecodeUTF16(data[start:])
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, nil
}

// EncodeMultiString encodes ss as a double-terminated UTF-16LE block. An
// empty list encodes as a single NUL code unit. Empty elements fail with
// ErrEmptyElement.
func EncodeMultiString(ss []string) ([]byte, error) {
	var out []byte
	for _, s := range ss {
		if s == "" {
			return nil, ErrEmptyElement
		}
		b, err := EncodeUTF16(s)
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	return append(out, 0, 0), nil
}

// indexNUL returns the byte offset of the first aligned NUL code unit, or -1.
func indexNUL(data []byte) int {
	for i := 0; i+1 < len(data); i += 2 {
		if data[i] == 0 && data[i+1] == 0 {
			return i
		}
	}
	return -1
}
