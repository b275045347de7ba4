package notation

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

const ruleSide = "---------------"

// Dump is one rendered block: a title naming the representation and the
// text it spells, followed by the values in hex, optionally binary, and
// decimal.
type Dump struct {
	// Label names the representation, e.g. "UTF-8" or "UNICODE".
	Label string
	// Text is the decoded text. Callers pass "?" when it cannot be decoded.
	Text   string
	Values []uint32
	// Bits is the minimum binary digit width. Zero means 8.
	Bits   int
	Binary bool
}

// Render writes d in the dump layout:
//
//	--------------- UTF-8 of "€" ---------------
//	Hex: [e2, 82, ac]
//	Bin: ["11100010", "10000010", "10101100"]
//	Dec: [226, 130, 172]
//	--------------------------------------------
//
// The block is surrounded by blank lines and the closing rule matches the
// title width.
func Render(w io.Writer, d Dump) error {
	title := fmt.Sprintf("%s %s of %q %s", ruleSide, d.Label, d.Text, ruleSide)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString("Hex: " + joinValues(d.Values, radixValue(16)) + "\n")
	if d.Binary {
		width := d.Bits
		if width == 0 {
			width = 8
		}
		b.WriteString("Bin: " + joinValues(d.Values, binValue(width)) + "\n")
	}
	b.WriteString("Dec: " + joinValues(d.Values, radixValue(10)) + "\n")
	b.WriteString(strings.Repeat("-", utf8.RuneCountInString(title)))
	b.WriteString("\n\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func radixValue(base int) func(uint32) string {
	return func(v uint32) string {
		return strconv.FormatUint(uint64(v), base)
	}
}

func binValue(width int) func(uint32) string {
	return func(v uint32) string {
		return fmt.Sprintf("%q", fmt.Sprintf("%0*b", width, v))
	}
}

func joinValues(values []uint32, format func(uint32) string) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = format(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// FormatCodePoint returns cp as U+XXXX with at least four hex digits.
func FormatCodePoint(cp uint32) string {
	return fmt.Sprintf("U+%04X", cp)
}

// FormatCodePoints renders a list ParseCodePoints can read back.
func FormatCodePoints(cps []uint32) string {
	parts := make([]string, len(cps))
	for i, cp := range cps {
		parts[i] = FormatCodePoint(cp)
	}
	return strings.Join(parts, " ")
}

// FormatUnits renders code units as 0x-prefixed hex padded to the unit
// width, in a form ParseUnits can read back.
func FormatUnits(units []uint32, bits int) string {
	digits := (bits + 3) / 4
	parts := make([]string, len(units))
	for i, u := range units {
		parts[i] = fmt.Sprintf("0x%0*X", digits, u)
	}
	return strings.Join(parts, " ")
}
