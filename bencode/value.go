// Package bencode implements a strict bencode codec over a closed set of
// value types.
//
// Decoding only accepts canonical input: integers without leading zeros or
// negative zero, string lengths without leading zeros, and dictionary keys
// that are text. Encoding always produces canonical output, with dictionary
// keys in ascending byte order, so that hashing an encoded value is stable.
package bencode

import "sort"

type Kind uint8

const (
	KindInteger Kind = iota
	KindTextString
	KindByteString
	KindList
	KindDict

	kindNone Kind = 0xff
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindTextString:
		return "text string"
	case KindByteString:
		return "byte string"
	case KindList:
		return "list"
	case KindDict:
		return "dict"
	case kindNone:
		return "nothing"
	}
	return "unknown"
}

// Value is one of Integer, TextString, ByteString, List or Dict.
type Value interface {
	Kind() Kind
	isValue()
}

type Integer int64

// TextString is a string payload that is valid UTF-8.
type TextString string

// ByteString is a string payload that is not valid UTF-8, such as the
// concatenated piece hashes of a torrent.
type ByteString []byte

type List []Value

type Dict map[string]Value

func (Integer) Kind() Kind    { return KindInteger }
func (TextString) Kind() Kind { return KindTextString }
func (ByteString) Kind() Kind { return KindByteString }
func (List) Kind() Kind       { return KindList }
func (Dict) Kind() Kind       { return KindDict }

func (Integer) isValue()    {}
func (TextString) isValue() {}
func (ByteString) isValue() {}
func (List) isValue()       {}
func (Dict) isValue()       {}

// Keys returns the keys of d in ascending byte order.
func (d Dict) Keys() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Without returns a copy of d that does not contain key. d is not modified.
func (d Dict) Without(key string) Dict {
	rest := make(Dict, len(d))
	for k, v := range d {
		if k != key {
			rest[k] = v
		}
	}
	return rest
}
