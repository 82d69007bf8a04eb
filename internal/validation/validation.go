// Package validation checks paths given on the command line and sniffs the
// kind of file behind them before it is parsed.
package validation

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode"

	jerrors "github.com/FocuswithJustin/JuniperChecks/core/errors"
)

// Limits on inputs.
const (
	// MaxFileSize is the largest file accepted (64 MB). A whole Bible in
	// USFM is well under 10 MB.
	MaxFileSize = 64 << 20
	// MaxPathLength is the maximum allowed path length.
	MaxPathLength = 4096
)

// Common validation errors.
var (
	ErrEmptyPath        = errors.New("path cannot be empty")
	ErrPathTooLong      = errors.New("path too long")
	ErrInvalidCharacter = errors.New("invalid character in path")
	ErrFileTooLarge     = errors.New("file too large")
)

// ValidatePath rejects empty and overlong paths and paths containing
// control characters.
func ValidatePath(path string) error {
	if path == "" {
		return ErrEmptyPath
	}
	if len(path) > MaxPathLength {
		return ErrPathTooLong
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: control character not allowed", ErrInvalidCharacter)
		}
	}
	return nil
}

// Kind is the detected kind of an input file.
type Kind string

const (
	KindUSFM    Kind = "usfm"
	KindJSON    Kind = "json"
	KindSQLite  Kind = "sqlite"
	KindXZ      Kind = "xz"
	KindText    Kind = "text"
	KindBinary  Kind = "binary"
	KindUnknown Kind = "unknown"
)

// magicBytes are the signatures of the binary kinds.
var magicBytes = []struct {
	kind  Kind
	magic []byte
}{
	{KindSQLite, []byte("SQLite format 3\x00")},
	{KindXZ, []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}},
}

// DetectKind classifies the first bytes of a file.
func DetectKind(buf []byte) Kind {
	if len(buf) == 0 {
		return KindUnknown
	}
	for _, sig := range magicBytes {
		if bytes.HasPrefix(buf, sig.magic) {
			return sig.kind
		}
	}
	if !isLikelyText(buf) {
		return KindBinary
	}
	trimmed := bytes.TrimLeft(bytes.TrimPrefix(buf, []byte("\uFEFF")), " \t\r\n")
	switch {
	case bytes.HasPrefix(trimmed, []byte(`\id`)):
		return KindUSFM
	case bytes.HasPrefix(trimmed, []byte("{")):
		return KindJSON
	}
	return KindText
}

// SniffFile validates path, checks the file size limit and detects the
// kind of the file.
func SniffFile(path string) (Kind, error) {
	if err := ValidatePath(path); err != nil {
		return KindUnknown, jerrors.NewValidation("path", err.Error())
	}
	file, err := os.Open(path)
	if err != nil {
		return KindUnknown, jerrors.NewIO("open", path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return KindUnknown, jerrors.NewIO("stat", path, err)
	}
	if info.Size() > MaxFileSize {
		return KindUnknown, jerrors.NewIO("read", path, fmt.Errorf("%w: %d bytes", ErrFileTooLarge, info.Size()))
	}

	buf := make([]byte, 512)
	n, err := io.ReadFull(file, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return KindUnknown, jerrors.NewIO("read", path, err)
	}
	return DetectKind(buf[:n]), nil
}

// isLikelyText reports whether buf looks like UTF-8 or ASCII text.
func isLikelyText(buf []byte) bool {
	if bytes.IndexByte(buf, 0) != -1 {
		return false
	}
	printable := 0
	control := 0
	for _, b := range buf {
		if b >= 0x20 && b != 0x7f || b == '\t' || b == '\n' || b == '\r' {
			printable++
		} else {
			control++
		}
	}
	return printable > 0 && float64(printable)/float64(printable+control) > 0.95
}
