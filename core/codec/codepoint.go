// Package codec converts Unicode code point sequences to and from UTF-8,
// UTF-16 and UCS-2.
//
// Every function in this package is a pure transformation: inputs are only
// read, outputs are freshly allocated, and any malformed symbol aborts the
// whole call with a *Error and a nil result. Nothing here substitutes
// U+FFFD for bad input.
package codec

// Code point limits
const (
	// MaxCodePoint is the largest Unicode scalar value.
	MaxCodePoint = 0x10FFFF

	// MaxBMP is the last code point of the Basic Multilingual Plane,
	// the largest value UCS-2 can carry.
	MaxBMP = 0xFFFF
)

// UTF-16 surrogate constants
const (
	SurrogateMin     = 0xD800
	SurrogateMax     = 0xDFFF
	HighSurrogateMin = 0xD800
	HighSurrogateMax = 0xDBFF
	LowSurrogateMin  = 0xDC00
	LowSurrogateMax  = 0xDFFF
	SurrogateOffset  = 0x10000
)

// IsSurrogate reports whether cp lies in the range reserved for UTF-16
// surrogate halves. Such values are never valid as standalone scalars.
func IsSurrogate(cp uint32) bool {
	return cp >= SurrogateMin && cp <= SurrogateMax
}

// IsValid reports whether cp is a Unicode scalar value.
func IsValid(cp uint32) bool {
	return cp <= MaxCodePoint && !IsSurrogate(cp)
}

// Validate checks every element of cps and returns an InvalidCodePoint
// error for the first one that is not a scalar value.
func Validate(cps []uint32) error {
	for i, cp := range cps {
		if !IsValid(cp) {
			return newError(0, InvalidCodePoint, i, cp)
		}
	}
	return nil
}

func isHighSurrogate(u uint16) bool {
	return u >= HighSurrogateMin && u <= HighSurrogateMax
}

func isLowSurrogate(u uint16) bool {
	return u >= LowSurrogateMin && u <= LowSurrogateMax
}
