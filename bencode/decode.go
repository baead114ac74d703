package bencode

import (
	"bytes"
	"strconv"
)

// MaxDepth bounds how deeply lists and dicts may nest in decoded input.
const MaxDepth = 512

// Decode decodes exactly one value from data. Bytes left over after the
// value are an error.
func Decode(data []byte) (Value, error) {
	v, rest, err := DecodePrefix(data)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, ErrTrailingData
	}
	return v, nil
}

// DecodePrefix decodes the value at the start of data and returns it along
// with the bytes that follow it.
func DecodePrefix(data []byte) (Value, []byte, error) {
	return decodeValue(data, 0)
}

func decodeValue(data []byte, depth int) (Value, []byte, error) {
	if len(data) == 0 {
		return nil, nil, ErrMissingType
	}

	switch c := data[0]; {
	case c == 'i':
		return decodeInteger(data[1:])
	case c >= '0' && c <= '9':
		return decodeString(data)
	case c == 'l':
		if depth >= MaxDepth {
			return nil, nil, ErrTooDeep
		}
		return decodeList(data[1:], depth+1)
	case c == 'd':
		if depth >= MaxDepth {
			return nil, nil, ErrTooDeep
		}
		return decodeDict(data[1:], depth+1)
	default:
		return nil, nil, &InvalidTypeError{Char: c}
	}
}

func decodeInteger(data []byte) (Value, []byte, error) {
	span, rest, err := splitOn(data, 'e')
	if err != nil {
		return nil, nil, err
	}
	n, err := parseCanonical(span)
	if err != nil {
		return nil, nil, err
	}
	return Integer(n), rest, nil
}

// decodeString returns a TextString when the payload is valid UTF-8 and a
// ByteString holding the same bytes otherwise.
func decodeString(data []byte) (Value, []byte, error) {
	span, rest, err := splitOn(data, ':')
	if err != nil {
		return nil, nil, err
	}
	n, err := parseCanonical(span)
	if err != nil {
		return nil, nil, err
	}
	if n > int64(len(rest)) {
		return nil, nil, &OutOfBoundsError{Want: n, Have: int64(len(rest))}
	}

	payload := rest[:n]
	if validUTF8Prefix(payload) == len(payload) {
		return TextString(payload), rest[n:], nil
	}
	raw := make(ByteString, len(payload))
	copy(raw, payload)
	return raw, rest[n:], nil
}

func decodeList(data []byte, depth int) (Value, []byte, error) {
	list := List{}
	for {
		if len(data) == 0 {
			return nil, nil, &DelimiterError{Delim: 'e'}
		}
		if data[0] == 'e' {
			return list, data[1:], nil
		}

		item, rest, err := decodeValue(data, depth)
		if err != nil {
			return nil, nil, err
		}
		list = append(list, item)
		data = rest
	}
}

// decodeDict accepts keys in any order. A repeated key replaces the value
// decoded earlier.
func decodeDict(data []byte, depth int) (Value, []byte, error) {
	dict := Dict{}
	for {
		if len(data) == 0 {
			return nil, nil, &DelimiterError{Delim: 'e'}
		}
		if data[0] == 'e' {
			return dict, data[1:], nil
		}

		key, rest, err := decodeValue(data, depth)
		if err != nil {
			return nil, nil, err
		}
		k, ok := key.(TextString)
		if !ok {
			return nil, nil, &KeyTypeError{Got: key.Kind()}
		}

		value, rest, err := decodeValue(rest, depth)
		if err != nil {
			return nil, nil, err
		}
		dict[string(k)] = value
		data = rest
	}
}

// splitOn splits data around the first occurrence of delim, dropping the
// delimiter itself.
func splitOn(data []byte, delim byte) ([]byte, []byte, error) {
	i := bytes.IndexByte(data, delim)
	if i < 0 {
		return nil, nil, &DelimiterError{Delim: delim}
	}
	return data[:i], data[i+1:], nil
}

// parseCanonical parses span as a decimal integer and requires that
// formatting the result gives back span exactly. That rules out leading
// zeros, "-0", a leading "+" and empty spans.
func parseCanonical(span []byte) (int64, error) {
	if validUTF8Prefix(span) != len(span) {
		return 0, ErrNotUTF8
	}
	n, err := strconv.ParseInt(string(span), 10, 64)
	if err != nil || strconv.FormatInt(n, 10) != string(span) {
		return 0, &IntegerError{Span: string(span)}
	}
	return n, nil
}
