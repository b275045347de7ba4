package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      *NotFoundError
		wantMsg  string
		wantBase error
	}{
		{
			name:     "with name",
			err:      &NotFoundError{Resource: "encoding", Name: "latin-1"},
			wantMsg:  `unknown encoding: "latin-1"`,
			wantBase: ErrNotFound,
		},
		{
			name:     "without name",
			err:      &NotFoundError{Resource: "vector"},
			wantMsg:  "vector not found",
			wantBase: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if !errors.Is(tt.err, tt.wantBase) {
				t.Errorf("errors.Is(%v, %v) = false", tt.err, tt.wantBase)
			}
		})
	}

	t.Run("with underlying error", func(t *testing.T) {
		underlying := fmt.Errorf("registry empty")
		err := &NotFoundError{Resource: "encoding", Name: "x", Err: underlying}
		if got := err.Unwrap(); got != underlying {
			t.Errorf("Unwrap() = %v, want %v", got, underlying)
		}
	})
}

func TestValidationError(t *testing.T) {
	tests := []struct {
		name    string
		err     *ValidationError
		wantMsg string
	}{
		{
			name:    "field and value",
			err:     NewValidation("byte_order", "middle", "must be big or little"),
			wantMsg: `invalid byte_order "middle": must be big or little`,
		},
		{
			name:    "field only",
			err:     &ValidationError{Field: "workers", Message: "must not be negative"},
			wantMsg: "invalid workers: must not be negative",
		},
		{
			name:    "message only",
			err:     &ValidationError{Message: "empty input"},
			wantMsg: "validation failed: empty input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if !errors.Is(tt.err, ErrInvalidInput) {
				t.Errorf("expected %v to match ErrInvalidInput", tt.err)
			}
		})
	}
}

func TestIOError(t *testing.T) {
	err := NewIO("read", "in.bin", fs.ErrNotExist)
	if got, want := err.Error(), "failed to read in.bin: file does not exist"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrIO) {
		t.Error("expected IOError to match ErrIO")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Error("expected IOError to match the wrapped error")
	}

	noPath := NewIO("flush", "", fmt.Errorf("closed"))
	if got, want := noPath.Error(), "failed to flush: closed"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestParseError(t *testing.T) {
	err := NewParse("code point list", "U+ZZ", "unexpected token")
	if got, want := err.Error(), `failed to parse code point list "U+ZZ": unexpected token`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Error("expected ParseError to match ErrInvalidInput")
	}

	bare := &ParseError{Format: "config", Message: "bad table"}
	if got, want := bare.Error(), "failed to parse config: bad table"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil, "context") != nil {
		t.Error("Wrap(nil) should return nil")
	}
	base := NewNotFound("encoding", "ebcdic")
	wrapped := Wrap(base, "selecting codec")
	if got, want := wrapped.Error(), `selecting codec: unknown encoding: "ebcdic"`; got != want {
		t.Errorf("Wrap() = %q, want %q", got, want)
	}
	var nf *NotFoundError
	if !As(wrapped, &nf) || nf.Name != "ebcdic" {
		t.Errorf("As() did not recover the NotFoundError: %v", nf)
	}
}

func TestWrapf(t *testing.T) {
	if Wrapf(nil, "item %d", 3) != nil {
		t.Error("Wrapf(nil) should return nil")
	}
	wrapped := Wrapf(ErrInvalidInput, "item %d", 3)
	if got, want := wrapped.Error(), "item 3: invalid input"; got != want {
		t.Errorf("Wrapf() = %q, want %q", got, want)
	}
	if !Is(wrapped, ErrInvalidInput) {
		t.Error("Is() should see through Wrapf")
	}
}
