// Package validation checks user-supplied input paths and sniffs the
// encoding of input files before they are parsed.
package validation

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Security limits to prevent resource exhaustion (CWE-400).
const (
	// MaxFileSize is the maximum decompressed input size (256 MB).
	MaxFileSize = 256 << 20
	// MaxPathLength is the maximum allowed path length.
	MaxPathLength = 4096
)

// Common validation errors.
var (
	ErrPathTooLong      = errors.New("path too long")
	ErrInvalidCharacter = errors.New("invalid character in path")
	ErrEmptyPath        = errors.New("path cannot be empty")
	ErrNotText          = errors.New("content is not text")
)

// ValidatePath performs basic validation on a path without base directory restrictions.
func ValidatePath(path string) error {
	if path == "" {
		return ErrEmptyPath
	}
	if len(path) > MaxPathLength {
		return ErrPathTooLong
	}
	if strings.Contains(path, "\x00") {
		return fmt.Errorf("%w: null byte not allowed", ErrInvalidCharacter)
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: control character not allowed", ErrInvalidCharacter)
		}
	}
	return nil
}

// Compression is the container an input file is wrapped in.
type Compression string

const (
	CompressionNone Compression = "none"
	CompressionGzip Compression = "gzip"
	CompressionXZ   Compression = "xz"
)

var magicBytes = []struct {
	compression Compression
	magic       []byte
}{
	{CompressionGzip, []byte{0x1f, 0x8b}},
	{CompressionXZ, []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}},
}

// DetectCompression identifies a compressed stream from its first bytes.
// Anything unrecognised is treated as uncompressed.
func DetectCompression(header []byte) Compression {
	for _, sig := range magicBytes {
		if bytes.HasPrefix(header, sig.magic) {
			return sig.compression
		}
	}
	return CompressionNone
}

// CheckText rejects content that is clearly binary: a NUL byte, or more than
// 5% control characters other than tab, CR and LF.
func CheckText(buf []byte) error {
	if len(buf) == 0 {
		return nil
	}
	if bytes.IndexByte(buf, 0) != -1 {
		return fmt.Errorf("%w: contains NUL bytes", ErrNotText)
	}
	control := 0
	for _, b := range buf {
		if b < 0x20 && b != '\t' && b != '\n' && b != '\r' {
			control++
		}
	}
	if control*20 > len(buf) {
		return fmt.Errorf("%w: %d control bytes in %d", ErrNotText, control, len(buf))
	}
	return nil
}
