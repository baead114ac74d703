package bencode

// validUTF8Prefix returns the number of leading bytes of b that form
// complete, well-formed UTF-8 sequences. It stops at the first byte that
// does not start a valid sequence, so the result equals len(b) only when all
// of b is valid UTF-8.
func validUTF8Prefix(b []byte) int {
	n := 0
	for n < len(b) {
		size := sequenceSize(b[n:])
		if size == 0 {
			break
		}
		n += size
	}
	return n
}

// sequenceSize returns the length of the UTF-8 sequence at the start of b,
// or 0 if b does not start with one. Overlong forms, surrogate halves and
// code points above U+10FFFF are not valid.
func sequenceSize(b []byte) int {
	b0 := b[0]
	switch {
	case b0 < 0x80:
		return 1

	case b0&0xe0 == 0xc0:
		if len(b) < 2 || !continuation(b[1]) {
			return 0
		}
		r := rune(b0&0x1f)<<6 | rune(b[1]&0x3f)
		if r < 0x80 {
			return 0
		}
		return 2

	case b0&0xf0 == 0xe0:
		if len(b) < 3 || !continuation(b[1]) || !continuation(b[2]) {
			return 0
		}
		r := rune(b0&0x0f)<<12 | rune(b[1]&0x3f)<<6 | rune(b[2]&0x3f)
		if r < 0x800 || (r >= 0xd800 && r <= 0xdfff) {
			return 0
		}
		return 3

	case b0&0xf8 == 0xf0:
		if len(b) < 4 || !continuation(b[1]) || !continuation(b[2]) || !continuation(b[3]) {
			return 0
		}
		r := rune(b0&0x07)<<18 | rune(b[1]&0x3f)<<12 | rune(b[2]&0x3f)<<6 | rune(b[3]&0x3f)
		if r < 0x10000 || r > 0x10ffff {
			return 0
		}
		return 4
	}
	return 0
}

func continuation(b byte) bool {
	return b&0xc0 == 0x80
}
