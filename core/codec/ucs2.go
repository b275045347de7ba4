package codec

// EncodeUCS2 encodes cps as UCS-2, one unit per code point. Values above
// MaxBMP and surrogates fail with InvalidCodePoint.
func EncodeUCS2(cps []uint32) ([]uint16, error) {
	out := make([]uint16, len(cps))
	for i, cp := range cps {
		if cp > MaxBMP || IsSurrogate(cp) {
			return nil, newError(UCS2, InvalidCodePoint, i, cp)
		}
		out[i] = uint16(cp)
	}
	return out, nil
}

// DecodeUCS2 decodes UCS-2 units. UCS-2 has no surrogate pairs, so any
// unit in the surrogate range fails with InvalidCodePoint.
func DecodeUCS2(units []uint16) ([]uint32, error) {
	out := make([]uint32, len(units))
	for i, u := range units {
		if IsSurrogate(uint32(u)) {
			return nil, newError(UCS2, InvalidCodePoint, i, uint32(u))
		}
		out[i] = uint32(u)
	}
	return out, nil
}
