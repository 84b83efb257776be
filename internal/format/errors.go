package format

import "errors"

var (
	// ErrOddLength indicates a UTF-16 buffer with an odd number of bytes.
	ErrOddLength = errors.New("format: utf16 buffer has odd length")
	// ErrEmbeddedNUL indicates a string holding a NUL code unit, which the
	// terminated wire form cannot carry.
	ErrEmbeddedNUL = errors.New("format: string contains NUL")
	// ErrEmptyElement indicates an empty string in a multi-string list; it
	// would read back as the list terminator.
	ErrEmptyElement = errors.New("format: empty string in list")
)
