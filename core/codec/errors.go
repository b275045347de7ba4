package codec

import (
	"fmt"

	"github.com/FocuswithJustin/ende/core/errors"
)

// Kind classifies a codec failure.
type Kind uint8

const (
	// InvalidCodePoint: a surrogate used as a scalar, or a value outside the
	// range the target encoding can represent.
	InvalidCodePoint Kind = iota + 1
	// TruncatedSequence: the input ended inside a multi-unit symbol.
	TruncatedSequence
	// InvalidContinuation: a unit expected to continue a symbol (or to lead
	// one) has the wrong bit pattern.
	InvalidContinuation
	// OverlongEncoding: a UTF-8 sequence longer than its value requires.
	OverlongEncoding
)

// Sentinels for errors.Is. Each one also matches errors.ErrInvalidInput.
var (
	ErrInvalidCodePoint    = fmt.Errorf("invalid code point: %w", errors.ErrInvalidInput)
	ErrTruncatedSequence   = fmt.Errorf("truncated sequence: %w", errors.ErrInvalidInput)
	ErrInvalidContinuation = fmt.Errorf("invalid continuation: %w", errors.ErrInvalidInput)
	ErrOverlongEncoding    = fmt.Errorf("overlong encoding: %w", errors.ErrInvalidInput)
)

func (k Kind) String() string {
	switch k {
	case InvalidCodePoint:
		return "invalid code point"
	case TruncatedSequence:
		return "truncated sequence"
	case InvalidContinuation:
		return "invalid continuation"
	case OverlongEncoding:
		return "overlong encoding"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

func (k Kind) sentinel() error {
	switch k {
	case InvalidCodePoint:
		return ErrInvalidCodePoint
	case TruncatedSequence:
		return ErrTruncatedSequence
	case InvalidContinuation:
		return ErrInvalidContinuation
	case OverlongEncoding:
		return ErrOverlongEncoding
	default:
		return errors.ErrInvalidInput
	}
}

// Error describes the symbol that made an encode or decode call fail.
type Error struct {
	Encoding Encoding // Codec that failed; zero for plain validation
	Kind     Kind
	Offset   int    // Index in the input of the offending code point or of the symbol's first unit
	Value    uint32 // Offending code point, unit, or decoded scalar
}

func (e *Error) Error() string {
	prefix := "codec"
	if e.Encoding.valid() {
		prefix = e.Encoding.String()
	}
	return fmt.Sprintf("%s: %s 0x%X at offset %d", prefix, e.Kind, e.Value, e.Offset)
}

func (e *Error) Unwrap() error {
	return e.Kind.sentinel()
}

func newError(enc Encoding, kind Kind, offset int, value uint32) *Error {
	return &Error{
		Encoding: enc,
		Kind:     kind,
		Offset:   offset,
		Value:    value,
	}
}

// KindOf returns the Kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return 0
}
