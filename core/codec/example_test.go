package codec_test

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/FocuswithJustin/ende/core/codec"
)

// Example demonstrates UTF-8 encoding of each length class
func ExampleEncodeUTF8() {
	for _, cp := range []uint32{0x24, 0x418, 0x20AC, 0x10348} {
		b, err := codec.EncodeUTF8([]uint32{cp})
		if err != nil {
			fmt.Println(err)
			continue
		}
		fmt.Printf("U+%04X: %d bytes: % X\n", cp, len(b), b)
	}

	// Output:
	// U+0024: 1 bytes: 24
	// U+0418: 2 bytes: D0 98
	// U+20AC: 3 bytes: E2 82 AC
	// U+10348: 4 bytes: F0 90 8D 88
}

func ExampleDecodeUTF8() {
	cps, err := codec.DecodeUTF8([]byte{0xF0, 0x90, 0x80, 0x81})
	fmt.Printf("%X %v\n", cps, err)

	_, err = codec.DecodeUTF8([]byte{0xC0, 0x80})
	fmt.Println(err)
	fmt.Println(errors.Is(err, codec.ErrOverlongEncoding))

	// Output:
	// [10001] <nil>
	// UTF-8: overlong encoding 0x0 at offset 0
	// true
}

func ExampleEncodeUTF16() {
	units, _ := codec.EncodeUTF16([]uint32{0x10001})
	fmt.Printf("%X\n", units)

	// Output:
	// [D800 DC01]
}

// Example shows an unterminated surrogate pair
func ExampleDecodeUTF16() {
	_, err := codec.DecodeUTF16([]uint16{0xD800})
	fmt.Println(codec.KindOf(err))

	// Output:
	// truncated sequence
}

func ExampleEncodeUCS2() {
	units, _ := codec.EncodeUCS2([]uint32{0xFFEE})
	fmt.Printf("%X\n", units)

	_, err := codec.EncodeUCS2([]uint32{0x10001})
	fmt.Println(err)

	// Output:
	// [FFEE]
	// UCS-2: invalid code point 0x10001 at offset 0
}

func ExampleEncoding_Marshal() {
	enc, _ := codec.ParseEncoding("utf-16")
	data, _ := enc.MarshalWithBOM([]uint32{0x41, 0x10001}, binary.LittleEndian)
	fmt.Printf("% X\n", data)

	// Output:
	// FF FE 41 00 00 D8 01 DC
}
