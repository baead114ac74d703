package bencode

import (
	"errors"
	"fmt"
)

var (
	ErrMissingType  = errors.New("bencode: missing type character")
	ErrNotUTF8      = errors.New("bencode: length or integer span is not utf-8")
	ErrTrailingData = errors.New("bencode: trailing data after value")
	ErrTooDeep      = errors.New("bencode: nesting exceeds MaxDepth")
)

type InvalidTypeError struct {
	Char byte
}

func (e *InvalidTypeError) Error() string {
	return fmt.Sprintf("bencode: invalid type character %q", e.Char)
}

// DelimiterError reports that input ended before Delim was found.
type DelimiterError struct {
	Delim byte
}

func (e *DelimiterError) Error() string {
	return fmt.Sprintf("bencode: delimiter %q not found", e.Delim)
}

// IntegerError reports an integer or string length that does not parse or
// is not in canonical form.
type IntegerError struct {
	Span string
}

func (e *IntegerError) Error() string {
	return fmt.Sprintf("bencode: malformed integer %q", e.Span)
}

// OutOfBoundsError reports a string whose declared length runs past the
// end of the input.
type OutOfBoundsError struct {
	Want int64
	Have int64
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("bencode: need %d bytes, have %d", e.Want, e.Have)
}

type KeyTypeError struct {
	Got Kind
}

func (e *KeyTypeError) Error() string {
	return fmt.Sprintf("bencode: dict key is a %s, not a text string", e.Got)
}

type TypeError struct {
	Want Kind
	Got  Kind
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("bencode: expected %s, got %s", e.Want, e.Got)
}

type KeyNotFoundError struct {
	Key string
}

func (e *KeyNotFoundError) Error() string {
	return fmt.Sprintf("bencode: key %q not found in dict", e.Key)
}
