// Package notation parses and renders the textual forms of code point and
// code unit lists used on the command line and in dumps.
package notation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/FocuswithJustin/ende/core/errors"
)

// MaxRange caps how many values one A..B range may expand to.
const MaxRange = 0x10000

const listFormat = "code point list"

// listGrammar is the participle grammar for value lists.
// Examples: "U+0024", "0x20AC 0x10001", "36, 8364", "U+0041..U+005A"
//
//nolint:govet // participle grammar tags are not standard struct tags
type listGrammar struct {
	Items []*itemGrammar `parser:"( @@ ( \",\"? @@ )* )?"`
}

//nolint:govet // participle grammar tags are not standard struct tags
type itemGrammar struct {
	From *valueGrammar `parser:"@@"`
	To   *valueGrammar `parser:"( \"..\" @@ )?"`
}

//nolint:govet // participle grammar tags are not standard struct tags
type valueGrammar struct {
	UPlus *string `parser:"  @UPlus"`
	Hex   *string `parser:"| @Hex"`
	Dec   *string `parser:"| @Int"`
}

// listLexer tokenizes value lists. Hex must precede Int so "0x41" is not
// read as "0" followed by garbage.
var listLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "UPlus", Pattern: `[Uu]\+[0-9A-Fa-f]+`},
	{Name: "Hex", Pattern: `0[xX][0-9A-Fa-f]+`},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Range", Pattern: `\.\.`},
	{Name: "Punct", Pattern: `,`},
	{Name: "Whitespace", Pattern: `\s+`},
})

var listParser = participle.MustBuild[listGrammar](
	participle.Lexer(listLexer),
	participle.Elide("Whitespace"),
)

// ParseCodePoints parses a list of code points. Elements are separated by
// commas and/or whitespace and may be written as U+XXXX, 0xXX, decimal,
// or an inclusive range A..B of those forms. Values are not checked for
// Unicode validity; that is the codec's job.
func ParseCodePoints(s string) ([]uint32, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return []uint32{}, nil
	}

	parsed, err := listParser.ParseString("", s)
	if err != nil {
		return nil, errors.NewParse(listFormat, s, err.Error())
	}

	var out []uint32
	for _, item := range parsed.Items {
		from, err := item.From.value()
		if err != nil {
			return nil, errors.NewParse(listFormat, s, err.Error())
		}
		if item.To == nil {
			out = append(out, from)
			continue
		}
		to, err := item.To.value()
		if err != nil {
			return nil, errors.NewParse(listFormat, s, err.Error())
		}
		if to < from {
			return nil, errors.NewParse(listFormat, s,
				fmt.Sprintf("range %#x..%#x is reversed", from, to))
		}
		if to-from >= MaxRange {
			return nil, errors.NewParse(listFormat, s,
				fmt.Sprintf("range %#x..%#x exceeds %d values", from, to, MaxRange))
		}
		for v := from; ; v++ {
			out = append(out, v)
			if v == to {
				break
			}
		}
	}
	if out == nil {
		out = []uint32{}
	}
	return out, nil
}

// ParseUnits parses a list of code units of the given width in bits,
// using the same syntax as ParseCodePoints.
func ParseUnits(s string, bits int) ([]uint32, error) {
	units, err := ParseCodePoints(s)
	if err != nil {
		return nil, err
	}
	limit := uint64(1)<<bits - 1
	for _, u := range units {
		if uint64(u) > limit {
			return nil, errors.NewParse(listFormat, s,
				fmt.Sprintf("unit %#x does not fit in %d bits", u, bits))
		}
	}
	return units, nil
}

func (v *valueGrammar) value() (uint32, error) {
	var (
		digits string
		base   int
	)
	switch {
	case v.UPlus != nil:
		digits, base = (*v.UPlus)[2:], 16
	case v.Hex != nil:
		digits, base = (*v.Hex)[2:], 16
	default:
		digits, base = *v.Dec, 10
	}
	n, err := strconv.ParseUint(digits, base, 32)
	if err != nil {
		return 0, fmt.Errorf("value %s out of range", digits)
	}
	return uint32(n), nil
}
