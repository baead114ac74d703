package torrent

import (
	"errors"
	"fmt"

	"github.com/torrent-meta/bencode"
)

var (
	ErrEmptyPath      = errors.New("torrent: file path has no segments")
	ErrLengthOverflow = errors.New("torrent: total length of files overflows int64")
)

// FieldError places a schema error at a dotted key path inside the
// metainfo, such as "info.files[2].path".
type FieldError struct {
	Path string
	Err  error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("torrent: %s: %v", e.Path, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

type PieceLengthError struct {
	Length int64
}

func (e *PieceLengthError) Error() string {
	return fmt.Sprintf("piece length must be positive, got %d", e.Length)
}

type PiecesError struct {
	Len int
}

func (e *PiecesError) Error() string {
	return fmt.Sprintf("pieces length %d is not a multiple of %d", e.Len, HashSize)
}

type LengthError struct {
	Length int64
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("length must not be negative, got %d", e.Length)
}

// KeyPairError reports a dict that holds both keys of a pair where exactly
// one is allowed.
type KeyPairError struct {
	First       string
	FirstValue  bencode.Value
	Second      string
	SecondValue bencode.Value
}

func (e *KeyPairError) Error() string {
	return fmt.Sprintf("keys %q (%v) and %q (%v) are mutually exclusive", e.First, e.FirstValue, e.Second, e.SecondValue)
}

// within prefixes the path of err with field, wrapping err in a FieldError
// if it is not one already.
func within(field string, err error) error {
	var fe *FieldError
	if errors.As(err, &fe) {
		return &FieldError{Path: field + "." + fe.Path, Err: fe.Err}
	}
	return &FieldError{Path: field, Err: err}
}
