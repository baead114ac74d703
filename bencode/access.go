package bencode

// The Expect functions assert the kind of a value and return its payload.
// The Keyed functions take a key out of a dict value, assert the kind of
// what was stored under it, and return that payload together with the rest
// of the dict. Chaining Keyed calls peels a dict one field at a time; the
// final residual holds every key nobody asked for.

func ExpectDict(v Value) (Dict, error) {
	d, ok := v.(Dict)
	if !ok {
		return nil, mismatch(KindDict, v)
	}
	return d, nil
}

func ExpectList(v Value) (List, error) {
	l, ok := v.(List)
	if !ok {
		return nil, mismatch(KindList, v)
	}
	return l, nil
}

func ExpectTextString(v Value) (string, error) {
	s, ok := v.(TextString)
	if !ok {
		return "", mismatch(KindTextString, v)
	}
	return string(s), nil
}

func ExpectByteString(v Value) ([]byte, error) {
	b, ok := v.(ByteString)
	if !ok {
		return nil, mismatch(KindByteString, v)
	}
	return []byte(b), nil
}

func ExpectInteger(v Value) (int64, error) {
	i, ok := v.(Integer)
	if !ok {
		return 0, mismatch(KindInteger, v)
	}
	return int64(i), nil
}

func KeyedDict(v Value, key string) (Dict, Value, error) {
	item, rest, err := take(v, key)
	if err != nil {
		return nil, nil, err
	}
	d, err := ExpectDict(item)
	if err != nil {
		return nil, nil, err
	}
	return d, rest, nil
}

func KeyedList(v Value, key string) (List, Value, error) {
	item, rest, err := take(v, key)
	if err != nil {
		return nil, nil, err
	}
	l, err := ExpectList(item)
	if err != nil {
		return nil, nil, err
	}
	return l, rest, nil
}

func KeyedTextString(v Value, key string) (string, Value, error) {
	item, rest, err := take(v, key)
	if err != nil {
		return "", nil, err
	}
	s, err := ExpectTextString(item)
	if err != nil {
		return "", nil, err
	}
	return s, rest, nil
}

func KeyedByteString(v Value, key string) ([]byte, Value, error) {
	item, rest, err := take(v, key)
	if err != nil {
		return nil, nil, err
	}
	b, err := ExpectByteString(item)
	if err != nil {
		return nil, nil, err
	}
	return b, rest, nil
}

func KeyedInteger(v Value, key string) (int64, Value, error) {
	item, rest, err := take(v, key)
	if err != nil {
		return 0, nil, err
	}
	i, err := ExpectInteger(item)
	if err != nil {
		return 0, nil, err
	}
	return i, rest, nil
}

func take(v Value, key string) (Value, Dict, error) {
	d, err := ExpectDict(v)
	if err != nil {
		return nil, nil, err
	}
	item, ok := d[key]
	if !ok {
		return nil, nil, &KeyNotFoundError{Key: key}
	}
	return item, d.Without(key), nil
}

func mismatch(want Kind, got Value) error {
	if got == nil {
		return &TypeError{Want: want, Got: kindNone}
	}
	return &TypeError{Want: want, Got: got.Kind()}
}
