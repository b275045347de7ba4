package codec

// EncodeUTF16 encodes cps as UTF-16 code units. Code points above MaxBMP
// become a high/low surrogate pair.
func EncodeUTF16(cps []uint32) ([]uint16, error) {
	out := make([]uint16, 0, len(cps))
	for i, cp := range cps {
		var err error
		if out, err = appendUTF16(out, cp, i); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// AppendUTF16 appends the UTF-16 encoding of cp to dst. On error dst is
// returned unchanged.
func AppendUTF16(dst []uint16, cp uint32) ([]uint16, error) {
	return appendUTF16(dst, cp, 0)
}

func appendUTF16(dst []uint16, cp uint32, offset int) ([]uint16, error) {
	switch {
	case IsSurrogate(cp):
		return dst, newError(UTF16, InvalidCodePoint, offset, cp)
	case cp < SurrogateOffset:
		return append(dst, uint16(cp)), nil
	case cp <= MaxCodePoint:
		extra := cp - SurrogateOffset
		high := uint16(HighSurrogateMin + (extra >> 10))
		low := uint16(LowSurrogateMin + (extra & 0x3FF))
		return append(dst, high, low), nil
	default:
		return dst, newError(UTF16, InvalidCodePoint, offset, cp)
	}
}

// UTF16Len returns the number of code units (1 or 2) needed for cp.
func UTF16Len(cp uint32) (int, error) {
	switch {
	case IsSurrogate(cp), cp > MaxCodePoint:
		return 0, newError(UTF16, InvalidCodePoint, 0, cp)
	case cp < SurrogateOffset:
		return 1, nil
	default:
		return 2, nil
	}
}

// DecodeUTF16 decodes UTF-16 code units into code points.
//
// A high surrogate must be followed by a low surrogate: end of input fails
// with TruncatedSequence, any other unit with InvalidContinuation. A low
// surrogate with no preceding high surrogate fails with InvalidCodePoint.
func DecodeUTF16(units []uint16) ([]uint32, error) {
	out := make([]uint32, 0, len(units))
	for i := 0; i < len(units); {
		cp, size, err := decodeUTF16Symbol(units, i)
		if err != nil {
			return nil, err
		}
		out = append(out, cp)
		i += size
	}
	return out, nil
}

func decodeUTF16Symbol(units []uint16, i int) (uint32, int, error) {
	high := units[i]
	if isLowSurrogate(high) {
		return 0, 0, newError(UTF16, InvalidCodePoint, i, uint32(high))
	}
	if !isHighSurrogate(high) {
		return uint32(high), 1, nil
	}

	if i+1 >= len(units) {
		return 0, 0, newError(UTF16, TruncatedSequence, i, uint32(high))
	}
	low := units[i+1]
	if !isLowSurrogate(low) {
		return 0, 0, newError(UTF16, InvalidContinuation, i, uint32(low))
	}

	cp := (uint32(high&0x3FF) << 10) + uint32(low&0x3FF) + SurrogateOffset
	return cp, 2, nil
}
