// Package fileio reads conversion input and writes conversion output,
// handling "-" for stdin/stdout and xz compression.
package fileio

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/ulikunitz/xz"

	"github.com/FocuswithJustin/ende/core/errors"
)

// StdStream is the path that selects stdin or stdout.
const StdStream = "-"

// Limits on what a single invocation will read.
const (
	// MaxInputSize caps input after decompression (256 MB).
	MaxInputSize = 256 << 20
	// MaxPathLength is the maximum allowed path length.
	MaxPathLength = 4096
)

var xzMagic = []byte{0xFD, 0x37, 0x7A, 0x58, 0x5A, 0x00}

// Injectable for tests.
var (
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout

	maxInputSize int64 = MaxInputSize

	osOpen       = os.Open
	osCreateTemp = os.CreateTemp
	osRename     = os.Rename
	xzNewReader  = xz.NewReader
	xzNewWriter  = xz.NewWriter
)

// IsXZ reports whether data starts with the xz stream magic.
func IsXZ(data []byte) bool {
	return bytes.HasPrefix(data, xzMagic)
}

// ReadInput returns the contents of path, or of stdin when path is "-".
// xz-compressed input is decompressed. Input larger than MaxInputSize is
// rejected.
func ReadInput(path string) ([]byte, error) {
	if err := ValidatePath(path); err != nil {
		return nil, err
	}

	var (
		data []byte
		err  error
	)
	if path == StdStream {
		data, err = readLimited(stdin)
	} else {
		var f *os.File
		if f, err = osOpen(path); err == nil {
			data, err = readLimited(f)
			f.Close()
		}
	}
	if err != nil {
		if errors.Is(err, errors.ErrInvalidInput) {
			return nil, err
		}
		return nil, errors.NewIO("read", path, err)
	}

	if !IsXZ(data) {
		return data, nil
	}
	plain, err := Decompress(data)
	if err != nil {
		if errors.Is(err, errors.ErrInvalidInput) {
			return nil, err
		}
		return nil, errors.NewIO("decompress", path, err)
	}
	return plain, nil
}

// ValidatePath rejects paths that are empty, overly long, or contain
// control characters.
func ValidatePath(path string) error {
	if path == "" {
		return errors.NewValidation("path", "", "cannot be empty")
	}
	if len(path) > MaxPathLength {
		return errors.NewValidation("path", "", fmt.Sprintf("longer than %d bytes", MaxPathLength))
	}
	if strings.ContainsFunc(path, unicode.IsControl) {
		return errors.NewValidation("path", path, "control character not allowed")
	}
	return nil
}

func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxInputSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxInputSize {
		return nil, errors.NewValidation("input", "", fmt.Sprintf("exceeds %d bytes", maxInputSize))
	}
	return data, nil
}

// Decompress inflates a complete xz stream, up to MaxInputSize bytes.
func Decompress(data []byte) ([]byte, error) {
	r, err := xzNewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create xz reader: %w", err)
	}
	return readLimited(r)
}

// Compress wraps data in an xz stream.
func Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := xzNewWriter(&buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create xz writer: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteOutput writes data to path, or to stdout when path is "-". Files are
// replaced atomically through a temporary file in the same directory.
func WriteOutput(path string, data []byte, compress bool) error {
	return WriteStream(stdout, path, data, compress)
}

// WriteStream is WriteOutput with w standing in for stdout.
func WriteStream(w io.Writer, path string, data []byte, compress bool) error {
	if err := ValidatePath(path); err != nil {
		return err
	}
	if compress {
		packed, err := Compress(data)
		if err != nil {
			return errors.NewIO("compress", path, err)
		}
		data = packed
	}

	if path == StdStream {
		if _, err := w.Write(data); err != nil {
			return errors.NewIO("write", "stdout", err)
		}
		return nil
	}

	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := osCreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return errors.NewIO("create", path, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.NewIO("write", path, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return errors.NewIO("chmod", path, err)
	}
	if err := tmp.Close(); err != nil {
		return errors.NewIO("close", path, err)
	}
	if err := osRename(tmpName, path); err != nil {
		return errors.NewIO("rename", path, err)
	}
	return nil
}
