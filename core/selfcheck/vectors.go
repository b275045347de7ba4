package selfcheck

import (
	"fmt"

	"github.com/FocuswithJustin/ende/core/codec"
)

// boundaries are the length-class edges every codec must handle.
var boundaries = []uint32{0x7F, 0x80, 0x7FF, 0x800, 0xFFFF, 0x10000, 0x10FFFF}

// Vectors returns the built-in conformance vectors.
func Vectors() []Vector {
	vs := []Vector{
		{Label: "dollar", Check: CheckEncode, Encoding: codec.UTF8, CodePoints: []uint32{0x24}, Units: []uint32{0x24}},
		{Label: "dollar", Check: CheckDecode, Encoding: codec.UTF8, CodePoints: []uint32{0x24}, Units: []uint32{0x24}},
		{Label: "euro", Check: CheckEncode, Encoding: codec.UTF8, CodePoints: []uint32{0x20AC}, Units: []uint32{0xE2, 0x82, 0xAC}},
		{Label: "linear-b", Check: CheckEncode, Encoding: codec.UTF8, CodePoints: []uint32{0x10001}, Units: []uint32{0xF0, 0x90, 0x80, 0x81}},
		{Label: "linear-b", Check: CheckDecode, Encoding: codec.UTF8, CodePoints: []uint32{0x10001}, Units: []uint32{0xF0, 0x90, 0x80, 0x81}},
		{Label: "linear-b", Check: CheckEncode, Encoding: codec.UTF16, CodePoints: []uint32{0x10001}, Units: []uint32{0xD800, 0xDC01}},
		{Label: "linear-b", Check: CheckDecode, Encoding: codec.UTF16, CodePoints: []uint32{0x10001}, Units: []uint32{0xD800, 0xDC01}},
		{Label: "halfwidth", Check: CheckEncode, Encoding: codec.UCS2, CodePoints: []uint32{0xFFEE}, Units: []uint32{0xFFEE}},
		{Label: "halfwidth", Check: CheckDecode, Encoding: codec.UCS2, CodePoints: []uint32{0xFFEE}, Units: []uint32{0xFFEE}},
		{Label: "mixed", Check: CheckEncode, Encoding: codec.UTF8, CodePoints: []uint32{0x24, 0x418, 0x20AC, 0x10348},
			Units: []uint32{0x24, 0xD0, 0x98, 0xE2, 0x82, 0xAC, 0xF0, 0x90, 0x8D, 0x88}},
		{Label: "cjk-ext-b", Check: CheckEncode, Encoding: codec.UTF16, CodePoints: []uint32{0x23456}, Units: []uint32{0xD84D, 0xDC56}},
		{Label: "empty", Check: CheckRoundtrip, Encoding: codec.UTF8, CodePoints: []uint32{}},

		// UTF-8 boundary encodings
		{Label: "max-1-byte", Check: CheckEncode, Encoding: codec.UTF8, CodePoints: []uint32{0x7F}, Units: []uint32{0x7F}},
		{Label: "min-2-byte", Check: CheckEncode, Encoding: codec.UTF8, CodePoints: []uint32{0x80}, Units: []uint32{0xC2, 0x80}},
		{Label: "max-2-byte", Check: CheckEncode, Encoding: codec.UTF8, CodePoints: []uint32{0x7FF}, Units: []uint32{0xDF, 0xBF}},
		{Label: "min-3-byte", Check: CheckEncode, Encoding: codec.UTF8, CodePoints: []uint32{0x800}, Units: []uint32{0xE0, 0xA0, 0x80}},
		{Label: "max-3-byte", Check: CheckEncode, Encoding: codec.UTF8, CodePoints: []uint32{0xFFFF}, Units: []uint32{0xEF, 0xBF, 0xBF}},
		{Label: "min-4-byte", Check: CheckEncode, Encoding: codec.UTF8, CodePoints: []uint32{0x10000}, Units: []uint32{0xF0, 0x90, 0x80, 0x80}},
		{Label: "max-4-byte", Check: CheckEncode, Encoding: codec.UTF8, CodePoints: []uint32{0x10FFFF}, Units: []uint32{0xF4, 0x8F, 0xBF, 0xBF}},
		{Label: "min-pair", Check: CheckEncode, Encoding: codec.UTF16, CodePoints: []uint32{0x10000}, Units: []uint32{0xD800, 0xDC00}},
		{Label: "max-pair", Check: CheckEncode, Encoding: codec.UTF16, CodePoints: []uint32{0x10FFFF}, Units: []uint32{0xDBFF, 0xDFFF}},

		// Surrogates are never scalars
		{Label: "surrogate", Check: CheckEncode, Encoding: codec.UTF8, CodePoints: []uint32{0xD800}, WantKind: codec.InvalidCodePoint},
		{Label: "surrogate", Check: CheckEncode, Encoding: codec.UTF16, CodePoints: []uint32{0x41, 0xDFFF}, WantKind: codec.InvalidCodePoint, WantOffset: 1},
		{Label: "surrogate", Check: CheckEncode, Encoding: codec.UCS2, CodePoints: []uint32{0xD800}, WantKind: codec.InvalidCodePoint},
		{Label: "surrogate", Check: CheckDecode, Encoding: codec.UCS2, Units: []uint32{0xD800}, WantKind: codec.InvalidCodePoint},
		{Label: "low-surrogate", Check: CheckDecode, Encoding: codec.UCS2, Units: []uint32{0x41, 0xDC00}, WantKind: codec.InvalidCodePoint, WantOffset: 1},
		{Label: "encoded-surrogate", Check: CheckDecode, Encoding: codec.UTF8, Units: []uint32{0xED, 0xA0, 0x80}, WantKind: codec.InvalidCodePoint},

		// Out of range
		{Label: "beyond-max", Check: CheckEncode, Encoding: codec.UTF8, CodePoints: []uint32{0x110000}, WantKind: codec.InvalidCodePoint},
		{Label: "beyond-max", Check: CheckEncode, Encoding: codec.UTF16, CodePoints: []uint32{0x110000}, WantKind: codec.InvalidCodePoint},
		{Label: "beyond-bmp", Check: CheckEncode, Encoding: codec.UCS2, CodePoints: []uint32{0x10001}, WantKind: codec.InvalidCodePoint},
		{Label: "beyond-max", Check: CheckDecode, Encoding: codec.UTF8, Units: []uint32{0xF4, 0x90, 0x80, 0x80}, WantKind: codec.InvalidCodePoint},

		// Malformed UTF-8
		{Label: "stray-continuation", Check: CheckDecode, Encoding: codec.UTF8, Units: []uint32{0x80}, WantKind: codec.InvalidContinuation},
		{Label: "invalid-lead", Check: CheckDecode, Encoding: codec.UTF8, Units: []uint32{0x41, 0xF8}, WantKind: codec.InvalidContinuation, WantOffset: 1},
		{Label: "bad-continuation", Check: CheckDecode, Encoding: codec.UTF8, Units: []uint32{0xE2, 0x28, 0xA1}, WantKind: codec.InvalidContinuation},
		{Label: "truncated", Check: CheckDecode, Encoding: codec.UTF8, Units: []uint32{0xE2, 0x82}, WantKind: codec.TruncatedSequence},
		{Label: "overlong-2", Check: CheckDecode, Encoding: codec.UTF8, Units: []uint32{0xC0, 0x80}, WantKind: codec.OverlongEncoding},
		{Label: "overlong-3", Check: CheckDecode, Encoding: codec.UTF8, Units: []uint32{0xE0, 0x80, 0x80}, WantKind: codec.OverlongEncoding},
		{Label: "overlong-4", Check: CheckDecode, Encoding: codec.UTF8, Units: []uint32{0xF0, 0x80, 0x80, 0x80}, WantKind: codec.OverlongEncoding},

		// Malformed UTF-16
		{Label: "unterminated-pair", Check: CheckDecode, Encoding: codec.UTF16, Units: []uint32{0xD800}, WantKind: codec.TruncatedSequence},
		{Label: "unpaired-high", Check: CheckDecode, Encoding: codec.UTF16, Units: []uint32{0xD800, 0x41}, WantKind: codec.InvalidContinuation},
		{Label: "lone-low", Check: CheckDecode, Encoding: codec.UTF16, Units: []uint32{0xDC00}, WantKind: codec.InvalidCodePoint},
	}

	for _, enc := range codec.Encodings {
		for _, cp := range boundaries {
			if enc == codec.UCS2 && cp > codec.MaxBMP {
				continue
			}
			vs = append(vs, Vector{
				Label:      fmt.Sprintf("boundary-%X", cp),
				Check:      CheckRoundtrip,
				Encoding:   enc,
				CodePoints: []uint32{cp},
			})
		}
	}
	return vs
}
