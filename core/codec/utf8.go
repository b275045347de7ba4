package codec

// EncodeUTF8 encodes cps as UTF-8.
//
// Surrogates and values above MaxCodePoint fail with InvalidCodePoint.
func EncodeUTF8(cps []uint32) ([]byte, error) {
	out := make([]byte, 0, len(cps))
	for i, cp := range cps {
		var err error
		if out, err = appendUTF8(out, cp, i); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// AppendUTF8 appends the UTF-8 encoding of cp to dst and returns the
// extended buffer. On error dst is returned unchanged.
func AppendUTF8(dst []byte, cp uint32) ([]byte, error) {
	return appendUTF8(dst, cp, 0)
}

func appendUTF8(dst []byte, cp uint32, offset int) ([]byte, error) {
	switch {
	case cp < 0x80:
		return append(dst, byte(cp)), nil
	case cp < 0x800:
		return append(dst,
			0xC0|byte(cp>>6),
			0x80|byte(cp&0x3F)), nil
	case cp < 0x10000:
		if IsSurrogate(cp) {
			return dst, newError(UTF8, InvalidCodePoint, offset, cp)
		}
		return append(dst,
			0xE0|byte(cp>>12),
			0x80|byte((cp>>6)&0x3F),
			0x80|byte(cp&0x3F)), nil
	case cp <= MaxCodePoint:
		return append(dst,
			0xF0|byte(cp>>18),
			0x80|byte((cp>>12)&0x3F),
			0x80|byte((cp>>6)&0x3F),
			0x80|byte(cp&0x3F)), nil
	default:
		return dst, newError(UTF8, InvalidCodePoint, offset, cp)
	}
}

// UTF8Len returns the number of bytes needed to encode cp in UTF-8.
func UTF8Len(cp uint32) (int, error) {
	switch {
	case cp < 0x80:
		return 1, nil
	case cp < 0x800:
		return 2, nil
	case cp < 0x10000:
		if IsSurrogate(cp) {
			return 0, newError(UTF8, InvalidCodePoint, 0, cp)
		}
		return 3, nil
	case cp <= MaxCodePoint:
		return 4, nil
	default:
		return 0, newError(UTF8, InvalidCodePoint, 0, cp)
	}
}

// DecodeUTF8 decodes a complete UTF-8 buffer into code points.
//
// The first malformed symbol aborts decoding: a leading byte that is not
// 0xxxxxxx, 110xxxxx, 1110xxxx or 11110xxx, or a continuation byte that is
// not 10xxxxxx, fails with InvalidContinuation; input ending inside a
// sequence fails with TruncatedSequence; non-minimal sequences fail with
// OverlongEncoding; surrogates and values above MaxCodePoint fail with
// InvalidCodePoint.
func DecodeUTF8(data []byte) ([]uint32, error) {
	out := make([]uint32, 0, len(data))
	for i := 0; i < len(data); {
		cp, size, err := decodeUTF8Symbol(data, i)
		if err != nil {
			return nil, err
		}
		out = append(out, cp)
		i += size
	}
	return out, nil
}

func decodeUTF8Symbol(data []byte, i int) (cp uint32, size int, err error) {
	lead := data[i]
	switch {
	case lead&0x80 == 0x00:
		return uint32(lead), 1, nil
	case lead&0xE0 == 0xC0:
		cp, size = uint32(lead&0x1F), 2
	case lead&0xF0 == 0xE0:
		cp, size = uint32(lead&0x0F), 3
	case lead&0xF8 == 0xF0:
		cp, size = uint32(lead&0x07), 4
	default:
		return 0, 0, newError(UTF8, InvalidContinuation, i, uint32(lead))
	}

	for k := 1; k < size; k++ {
		if i+k >= len(data) {
			return 0, 0, newError(UTF8, TruncatedSequence, i, uint32(lead))
		}
		b := data[i+k]
		if b&0xC0 != 0x80 {
			return 0, 0, newError(UTF8, InvalidContinuation, i, uint32(b))
		}
		cp = cp<<6 | uint32(b&0x3F)
	}

	switch size {
	case 2:
		if cp < 0x80 {
			return 0, 0, newError(UTF8, OverlongEncoding, i, cp)
		}
	case 3:
		if cp < 0x800 {
			return 0, 0, newError(UTF8, OverlongEncoding, i, cp)
		}
		if IsSurrogate(cp) {
			return 0, 0, newError(UTF8, InvalidCodePoint, i, cp)
		}
	case 4:
		if cp < 0x10000 {
			return 0, 0, newError(UTF8, OverlongEncoding, i, cp)
		}
		if cp > MaxCodePoint {
			return 0, 0, newError(UTF8, InvalidCodePoint, i, cp)
		}
	}
	return cp, size, nil
}
