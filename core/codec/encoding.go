package codec

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/FocuswithJustin/ende/core/errors"
)

// Encoding selects one of the codecs.
type Encoding uint8

const (
	// UTF8 is variable-length UTF-8 (1-4 bytes per code point).
	UTF8 Encoding = iota + 1
	// UTF16 is variable-length UTF-16 (1-2 units per code point).
	UTF16
	// UCS2 is fixed-length UCS-2 (1 unit per code point, BMP only).
	UCS2
)

// Encodings lists every supported encoding in a stable order.
var Encodings = []Encoding{UTF8, UTF16, UCS2}

var encodingNames = map[string]Encoding{
	"utf8":   UTF8,
	"utf-8":  UTF8,
	"utf16":  UTF16,
	"utf-16": UTF16,
	"ucs2":   UCS2,
	"ucs-2":  UCS2,
}

// BOM represents byte order marks for 16-bit streams
const (
	BOM_LE_FIRST  = 0xFF // Little-endian BOM first byte
	BOM_LE_SECOND = 0xFE // Little-endian BOM second byte
	BOM_BE_FIRST  = 0xFE // Big-endian BOM first byte
	BOM_BE_SECOND = 0xFF // Big-endian BOM second byte
)

// ParseEncoding looks up an encoding by name, ignoring case.
func ParseEncoding(name string) (Encoding, error) {
	if enc, ok := encodingNames[strings.ToLower(strings.TrimSpace(name))]; ok {
		return enc, nil
	}
	return 0, errors.NewNotFound("encoding", name)
}

func (e Encoding) String() string {
	switch e {
	case UTF8:
		return "UTF-8"
	case UTF16:
		return "UTF-16"
	case UCS2:
		return "UCS-2"
	default:
		return fmt.Sprintf("Encoding(%d)", uint8(e))
	}
}

func (e Encoding) valid() bool {
	return e >= UTF8 && e <= UCS2
}

// UnitSize returns the width of one code unit in bytes.
func (e Encoding) UnitSize() int {
	if e == UTF8 {
		return 1
	}
	return 2
}

// UnitBits returns the width of one code unit in bits.
func (e Encoding) UnitBits() int {
	return e.UnitSize() * 8
}

// Marshal encodes cps and serializes the code units to bytes. 16-bit
// units are written in order (big-endian when nil); UTF-8 ignores order.
// No BOM is written.
func (e Encoding) Marshal(cps []uint32, order binary.ByteOrder) ([]byte, error) {
	switch e {
	case UTF8:
		return EncodeUTF8(cps)
	case UTF16:
		units, err := EncodeUTF16(cps)
		if err != nil {
			return nil, err
		}
		return packUint16(units, order), nil
	case UCS2:
		units, err := EncodeUCS2(cps)
		if err != nil {
			return nil, err
		}
		return packUint16(units, order), nil
	default:
		return nil, errors.NewNotFound("encoding", e.String())
	}
}

// MarshalWithBOM is Marshal with a leading byte order mark for 16-bit
// encodings. UTF-8 output carries no mark.
func (e Encoding) MarshalWithBOM(cps []uint32, order binary.ByteOrder) ([]byte, error) {
	data, err := e.Marshal(cps, order)
	if err != nil || e == UTF8 {
		return data, err
	}
	return append(ByteOrderMark(order), data...), nil
}

// ByteOrderMark returns U+FEFF serialized in order (big-endian when nil).
func ByteOrderMark(order binary.ByteOrder) []byte {
	bom := make([]byte, 2)
	orderOrDefault(order).PutUint16(bom, 0xFEFF)
	return bom
}

// Unmarshal reads code units from data and decodes them. A 16-bit stream
// with an odd byte count fails with TruncatedSequence.
func (e Encoding) Unmarshal(data []byte, order binary.ByteOrder) ([]uint32, error) {
	switch e {
	case UTF8:
		return DecodeUTF8(data)
	case UTF16:
		units, err := unpackUint16(UTF16, data, order)
		if err != nil {
			return nil, err
		}
		return DecodeUTF16(units)
	case UCS2:
		units, err := unpackUint16(UCS2, data, order)
		if err != nil {
			return nil, err
		}
		return DecodeUCS2(units)
	default:
		return nil, errors.NewNotFound("encoding", e.String())
	}
}

// Units splits a serialized stream into its code units without decoding
// them.
func (e Encoding) Units(data []byte, order binary.ByteOrder) ([]uint32, error) {
	if !e.valid() {
		return nil, errors.NewNotFound("encoding", e.String())
	}
	if e == UTF8 {
		out := make([]uint32, len(data))
		for i, b := range data {
			out[i] = uint32(b)
		}
		return out, nil
	}
	units, err := unpackUint16(e, data, order)
	if err != nil {
		return nil, err
	}
	out := make([]uint32, len(units))
	for i, u := range units {
		out[i] = uint32(u)
	}
	return out, nil
}

// PackUnits serializes raw code unit values, the inverse of Units. A value
// wider than the encoding's unit fails with a *errors.ValidationError.
func (e Encoding) PackUnits(units []uint32, order binary.ByteOrder) ([]byte, error) {
	if !e.valid() {
		return nil, errors.NewNotFound("encoding", e.String())
	}
	limit := uint32(1)<<e.UnitBits() - 1
	out := make([]byte, 0, len(units)*e.UnitSize())
	for i, u := range units {
		if u > limit {
			return nil, errors.NewValidation(
				fmt.Sprintf("unit %d", i),
				fmt.Sprintf("0x%X", u),
				fmt.Sprintf("exceeds %d-bit %s unit", e.UnitBits(), e))
		}
		if e == UTF8 {
			out = append(out, byte(u))
		} else {
			var buf [2]byte
			orderOrDefault(order).PutUint16(buf[:], uint16(u))
			out = append(out, buf[:]...)
		}
	}
	return out, nil
}

// DetectBOM checks for a UTF-16 byte order mark at the start of data.
func DetectBOM(data []byte) (order binary.ByteOrder, hasBOM bool) {
	if len(data) < 2 {
		return nil, false
	}
	if data[0] == BOM_BE_FIRST && data[1] == BOM_BE_SECOND {
		return binary.BigEndian, true
	}
	if data[0] == BOM_LE_FIRST && data[1] == BOM_LE_SECOND {
		return binary.LittleEndian, true
	}
	return nil, false
}

// StripBOM removes a leading byte order mark. It returns the remaining
// data, the order the mark announced, and whether one was found.
func StripBOM(data []byte) ([]byte, binary.ByteOrder, bool) {
	order, ok := DetectBOM(data)
	if !ok {
		return data, nil, false
	}
	return data[2:], order, true
}

// orderOrDefault treats a nil order as big-endian, the UTF-16 default
// when no BOM is present.
func orderOrDefault(order binary.ByteOrder) binary.ByteOrder {
	if order == nil {
		return binary.BigEndian
	}
	return order
}

func packUint16(units []uint16, order binary.ByteOrder) []byte {
	order = orderOrDefault(order)
	out := make([]byte, 2*len(units))
	for i, u := range units {
		order.PutUint16(out[2*i:], u)
	}
	return out
}

func unpackUint16(enc Encoding, data []byte, order binary.ByteOrder) ([]uint16, error) {
	if len(data)%2 != 0 {
		return nil, newError(enc, TruncatedSequence, len(data)/2, uint32(data[len(data)-1]))
	}
	order = orderOrDefault(order)
	units := make([]uint16, len(data)/2)
	for i := range units {
		units[i] = order.Uint16(data[2*i:])
	}
	return units, nil
}
