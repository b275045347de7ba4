package codec

import (
	"bytes"
	"errors"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
)

func TestEncodeUTF8(t *testing.T) {
	tests := []struct {
		name     string
		cps      []uint32
		expected []byte
	}{
		{"empty", []uint32{}, []byte{}},
		{"dollar", []uint32{0x24}, []byte{0x24}},
		{"cyrillic", []uint32{0x418}, []byte{0xD0, 0x98}},
		{"euro", []uint32{0x20AC}, []byte{0xE2, 0x82, 0xAC}},
		{"gothic", []uint32{0x10348}, []byte{0xF0, 0x90, 0x8D, 0x88}},
		{"supplementary", []uint32{0x10001}, []byte{0xF0, 0x90, 0x80, 0x81}},
		{"two supplementary", []uint32{0x10001, 0x23456},
			[]byte{0xF0, 0x90, 0x80, 0x81, 0xF0, 0xA3, 0x91, 0x96}},
		{"repeated", []uint32{0x10001, 0x10001, 0x10001},
			[]byte{0xF0, 0x90, 0x80, 0x81, 0xF0, 0x90, 0x80, 0x81, 0xF0, 0x90, 0x80, 0x81}},
		{"max 1 byte", []uint32{0x7F}, []byte{0x7F}},
		{"min 2 byte", []uint32{0x80}, []byte{0xC2, 0x80}},
		{"max 2 byte", []uint32{0x7FF}, []byte{0xDF, 0xBF}},
		{"min 3 byte", []uint32{0x800}, []byte{0xE0, 0xA0, 0x80}},
		{"before surrogates", []uint32{0xD7FF}, []byte{0xED, 0x9F, 0xBF}},
		{"after surrogates", []uint32{0xE000}, []byte{0xEE, 0x80, 0x80}},
		{"max BMP", []uint32{0xFFFF}, []byte{0xEF, 0xBF, 0xBF}},
		{"min 4 byte", []uint32{0x10000}, []byte{0xF0, 0x90, 0x80, 0x80}},
		{"max code point", []uint32{0x10FFFF}, []byte{0xF4, 0x8F, 0xBF, 0xBF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeUTF8(tt.cps)
			if err != nil {
				t.Fatalf("EncodeUTF8(%X) error: %v", tt.cps, err)
			}
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("EncodeUTF8(%X) mismatch (-want +got):\n%s", tt.cps, diff)
			}
		})
	}
}

func TestEncodeUTF8Invalid(t *testing.T) {
	tests := []struct {
		name   string
		cps    []uint32
		offset int
		value  uint32
	}{
		{"high surrogate", []uint32{0xD800}, 0, 0xD800},
		{"low surrogate", []uint32{0xDFFF}, 0, 0xDFFF},
		{"surrogate after valid", []uint32{0x41, 0x20AC, 0xDC00}, 2, 0xDC00},
		{"above max", []uint32{0x110000}, 0, 0x110000},
		{"max uint32", []uint32{0x24, 0xFFFFFFFF}, 1, 0xFFFFFFFF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeUTF8(tt.cps)
			if got != nil {
				t.Errorf("EncodeUTF8(%X) returned partial output %X", tt.cps, got)
			}
			assertCodecError(t, err, UTF8, InvalidCodePoint, tt.offset, tt.value)
		})
	}
}

func TestDecodeUTF8(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected []uint32
	}{
		{"empty", nil, []uint32{}},
		{"dollar", []byte{0x24}, []uint32{0x24}},
		{"nul", []byte{0x00}, []uint32{0x00}},
		{"cyrillic", []byte{0xD0, 0x98}, []uint32{0x418}},
		{"euro", []byte{0xE2, 0x82, 0xAC}, []uint32{0x20AC}},
		{"supplementary", []byte{0xF0, 0x90, 0x80, 0x81}, []uint32{0x10001}},
		{"two supplementary", []byte{0xF0, 0x90, 0x80, 0x81, 0xF0, 0xA3, 0x91, 0x96},
			[]uint32{0x10001, 0x23456}},
		{"mixed lengths", []byte{0x41, 0xD0, 0x98, 0xE2, 0x82, 0xAC, 0xF0, 0x90, 0x8D, 0x88},
			[]uint32{0x41, 0x418, 0x20AC, 0x10348}},
		{"min 2 byte", []byte{0xC2, 0x80}, []uint32{0x80}},
		{"max 2 byte", []byte{0xDF, 0xBF}, []uint32{0x7FF}},
		{"min 3 byte", []byte{0xE0, 0xA0, 0x80}, []uint32{0x800}},
		{"max BMP", []byte{0xEF, 0xBF, 0xBF}, []uint32{0xFFFF}},
		{"min 4 byte", []byte{0xF0, 0x90, 0x80, 0x80}, []uint32{0x10000}},
		{"max code point", []byte{0xF4, 0x8F, 0xBF, 0xBF}, []uint32{0x10FFFF}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeUTF8(tt.data)
			if err != nil {
				t.Fatalf("DecodeUTF8(%X) error: %v", tt.data, err)
			}
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("DecodeUTF8(%X) mismatch (-want +got):\n%s", tt.data, diff)
			}
		})
	}
}

func TestDecodeUTF8Invalid(t *testing.T) {
	tests := []struct {
		name   string
		data   []byte
		kind   Kind
		offset int
		value  uint32
	}{
		{"truncated 3 byte", []byte{0xE2, 0x82}, TruncatedSequence, 0, 0xE2},
		{"truncated after ascii", []byte{0x41, 0xC2}, TruncatedSequence, 1, 0xC2},
		{"truncated 4 byte", []byte{0xF0, 0x90, 0x80}, TruncatedSequence, 0, 0xF0},
		{"bad continuation", []byte{0xE2, 0x41, 0xAC}, InvalidContinuation, 0, 0x41},
		{"bad last continuation", []byte{0xF0, 0x90, 0x80, 0xC1}, InvalidContinuation, 0, 0xC1},
		{"stray continuation", []byte{0x41, 0x80}, InvalidContinuation, 1, 0x80},
		{"5 byte lead", []byte{0xF8, 0x88, 0x80, 0x80, 0x80}, InvalidContinuation, 0, 0xF8},
		{"0xFF lead", []byte{0xFF}, InvalidContinuation, 0, 0xFF},
		{"overlong nul", []byte{0xC0, 0x80}, OverlongEncoding, 0, 0x00},
		{"overlong 2 byte", []byte{0xC1, 0xBF}, OverlongEncoding, 0, 0x7F},
		{"overlong 3 byte", []byte{0xE0, 0x80, 0xAF}, OverlongEncoding, 0, 0x2F},
		{"overlong 3 byte max", []byte{0xE0, 0x9F, 0xBF}, OverlongEncoding, 0, 0x7FF},
		{"overlong 4 byte", []byte{0xF0, 0x8F, 0xBF, 0xBF}, OverlongEncoding, 0, 0xFFFF},
		{"encoded high surrogate", []byte{0xED, 0xA0, 0x80}, InvalidCodePoint, 0, 0xD800},
		{"encoded low surrogate", []byte{0x24, 0xED, 0xBF, 0xBF}, InvalidCodePoint, 1, 0xDFFF},
		{"above max", []byte{0xF4, 0x90, 0x80, 0x80}, InvalidCodePoint, 0, 0x110000},
		{"largest 4 byte", []byte{0xF7, 0xBF, 0xBF, 0xBF}, InvalidCodePoint, 0, 0x1FFFFF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeUTF8(tt.data)
			if got != nil {
				t.Errorf("DecodeUTF8(%X) returned partial output %X", tt.data, got)
			}
			assertCodecError(t, err, UTF8, tt.kind, tt.offset, tt.value)
		})
	}
}

func TestUTF8Len(t *testing.T) {
	tests := []struct {
		cp   uint32
		want int
	}{
		{0x00, 1}, {0x7F, 1},
		{0x80, 2}, {0x7FF, 2},
		{0x800, 3}, {0xD7FF, 3}, {0xE000, 3}, {0xFFFF, 3},
		{0x10000, 4}, {0x10FFFF, 4},
	}

	for _, tt := range tests {
		got, err := UTF8Len(tt.cp)
		if err != nil {
			t.Errorf("UTF8Len(%#x) error: %v", tt.cp, err)
			continue
		}
		if got != tt.want {
			t.Errorf("UTF8Len(%#x) = %d, want %d", tt.cp, got, tt.want)
		}
		enc, _ := EncodeUTF8([]uint32{tt.cp})
		if len(enc) != got {
			t.Errorf("len(EncodeUTF8(%#x)) = %d, UTF8Len = %d", tt.cp, len(enc), got)
		}
	}

	for _, cp := range []uint32{0xD800, 0xDFFF, 0x110000} {
		if _, err := UTF8Len(cp); !errors.Is(err, ErrInvalidCodePoint) {
			t.Errorf("UTF8Len(%#x) error = %v, want ErrInvalidCodePoint", cp, err)
		}
	}
}

func TestAppendUTF8(t *testing.T) {
	buf := []byte("a")
	buf, err := AppendUTF8(buf, 0x20AC)
	if err != nil {
		t.Fatalf("AppendUTF8() error: %v", err)
	}
	if diff := cmp.Diff([]byte{'a', 0xE2, 0x82, 0xAC}, buf); diff != "" {
		t.Errorf("AppendUTF8() mismatch (-want +got):\n%s", diff)
	}

	same, err := AppendUTF8(buf, 0xDC00)
	if err == nil {
		t.Fatal("AppendUTF8(0xDC00) should fail")
	}
	if len(same) != len(buf) {
		t.Errorf("AppendUTF8 grew buffer on error: %X", same)
	}
}

func TestUTF8RoundTrip(t *testing.T) {
	cps := sampleCodePoints(MaxCodePoint)
	enc, err := EncodeUTF8(cps)
	if err != nil {
		t.Fatalf("EncodeUTF8() error: %v", err)
	}
	if !utf8.Valid(enc) {
		t.Fatal("EncodeUTF8() produced bytes the standard library rejects")
	}
	dec, err := DecodeUTF8(enc)
	if err != nil {
		t.Fatalf("DecodeUTF8() error: %v", err)
	}
	if diff := cmp.Diff(cps, dec); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func FuzzDecodeUTF8(f *testing.F) {
	f.Add([]byte{0x24})
	f.Add([]byte{0xE2, 0x82, 0xAC})
	f.Add([]byte{0xF0, 0x90, 0x80, 0x81})
	f.Add([]byte{0xED, 0xA0, 0x80})
	f.Add([]byte{0xC0, 0x80})
	f.Add([]byte{0xF4, 0x90, 0x80, 0x80})

	f.Fuzz(func(t *testing.T, data []byte) {
		cps, err := DecodeUTF8(data)
		if valid := utf8.Valid(data); valid != (err == nil) {
			t.Fatalf("DecodeUTF8(%X) error = %v, utf8.Valid = %v", data, err, valid)
		}
		if err != nil {
			if KindOf(err) == 0 {
				t.Fatalf("DecodeUTF8(%X) returned untyped error %v", data, err)
			}
			return
		}
		want := []rune(string(data))
		if len(want) != len(cps) {
			t.Fatalf("DecodeUTF8(%X) = %d code points, want %d", data, len(cps), len(want))
		}
		for i := range want {
			if uint32(want[i]) != cps[i] {
				t.Fatalf("DecodeUTF8(%X)[%d] = %#x, want %#x", data, i, cps[i], want[i])
			}
		}
		again, err := EncodeUTF8(cps)
		if err != nil {
			t.Fatalf("EncodeUTF8 of decoded %X: %v", cps, err)
		}
		if !bytes.Equal(data, again) {
			t.Fatalf("re-encode of %X = %X", data, again)
		}
	})
}

// sampleCodePoints returns every scalar value up to max at a stride that
// hits each UTF-8 length class, plus the exact boundaries.
func sampleCodePoints(max uint32) []uint32 {
	var cps []uint32
	for cp := uint32(0); cp <= max; cp += 0x3F {
		if IsValid(cp) {
			cps = append(cps, cp)
		}
	}
	for _, cp := range []uint32{0x7F, 0x80, 0x7FF, 0x800, 0xD7FF, 0xE000, 0xFFFF, 0x10000, 0x10FFFF} {
		if cp <= max {
			cps = append(cps, cp)
		}
	}
	return cps
}

func assertCodecError(t *testing.T, err error, enc Encoding, kind Kind, offset int, value uint32) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", kind)
	}
	var ce *Error
	if !errors.As(err, &ce) {
		t.Fatalf("expected *codec.Error, got %T: %v", err, err)
	}
	if ce.Encoding != enc {
		t.Errorf("Encoding = %s, want %s", ce.Encoding, enc)
	}
	if ce.Kind != kind {
		t.Errorf("Kind = %s, want %s", ce.Kind, kind)
	}
	if ce.Offset != offset {
		t.Errorf("Offset = %d, want %d", ce.Offset, offset)
	}
	if ce.Value != value {
		t.Errorf("Value = %#x, want %#x", ce.Value, value)
	}
	if !errors.Is(err, kind.sentinel()) {
		t.Errorf("errors.Is(err, %s sentinel) = false", kind)
	}
}
