package wasmread

import "errors"

// Errors returned by Decode. Every error Decode returns wraps exactly one of
// these; use errors.Is to tell them apart.
var (
	ErrBadMagic                    = errors.New("bad magic number")
	ErrUnsupportedVersion          = errors.New("unsupported version")
	ErrUnexpectedEndOfInput        = errors.New("unexpected end of input")
	ErrTruncatedSection            = errors.New("section extends past end of input")
	ErrMalformedTypeEntry          = errors.New("type entry is not a func type")
	ErrUnknownValueType            = errors.New("unknown value type")
	ErrUnsupportedMultiValue       = errors.New("more than one result is not supported")
	ErrUnknownImportKind           = errors.New("unknown import kind")
	ErrUnknownExportKind           = errors.New("unknown export kind")
	ErrUnsupportedTableElementType = errors.New("table element type is not anyfunc")
	ErrOverflow                    = errors.New("varint overflows 32 bits")

	// Only returned with WithStrictUTF8.
	ErrInvalidUTF8 = errors.New("invalid UTF-8")
	// Only returned with WithMaxSize.
	ErrInputTooLarge = errors.New("input too large")
)
