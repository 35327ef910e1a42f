// Package input loads almanac files. Plain text, gzip and xz inputs are
// accepted; the encoding is detected from the content, not the file name.
package input

import (
	"bufio"
	"compress/gzip"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ulikunitz/xz"
	"github.com/zeebo/blake3"

	"github.com/FocuswithJustin/almanac/core/errors"
	"github.com/FocuswithJustin/almanac/internal/validation"
)

// StdinPath is the path that reads from standard input.
const StdinPath = "-"

// Document is the decoded text of one input.
type Document struct {
	Path        string
	Lines       []string
	Digest      string // hex BLAKE3-256 of the decoded text
	Size        int
	Compression validation.Compression
}

// Load reads the file at path, or standard input when path is "-".
func Load(path string) (*Document, error) {
	if path == StdinPath {
		return Read(path, os.Stdin)
	}
	if err := validation.ValidatePath(path); err != nil {
		return nil, errors.NewIO("open", path, err)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}
	defer f.Close()
	return Read(path, f)
}

// Read decodes r, decompressing it first if it starts with a gzip or xz header.
func Read(name string, r io.Reader) (*Document, error) {
	br := bufio.NewReader(r)
	header, err := br.Peek(6)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, errors.NewIO("read", name, err)
	}

	compression := validation.DetectCompression(header)
	var body io.Reader = br
	switch compression {
	case validation.CompressionGzip:
		gzr, err := gzip.NewReader(br)
		if err != nil {
			return nil, errors.NewIO("decompress gzip", name, err)
		}
		defer gzr.Close()
		body = gzr
	case validation.CompressionXZ:
		xzr, err := xz.NewReader(br)
		if err != nil {
			return nil, errors.NewIO("decompress xz", name, err)
		}
		body = xzr
	}

	data, err := io.ReadAll(io.LimitReader(body, validation.MaxFileSize+1))
	if err != nil {
		return nil, errors.NewIO("read", name, err)
	}
	if len(data) > validation.MaxFileSize {
		return nil, errors.NewValidationValue("input", name, fmt.Sprintf("larger than %d bytes", validation.MaxFileSize))
	}
	if err := validation.CheckText(data); err != nil {
		return nil, errors.NewValidationValue("input", name, err.Error())
	}

	return &Document{
		Path:        name,
		Lines:       strings.Split(string(data), "\n"),
		Digest:      Digest(data),
		Size:        len(data),
		Compression: compression,
	}, nil
}

// Digest computes the hex BLAKE3-256 hash of data.
func Digest(data []byte) string {
	h := blake3.Sum256(data)
	return hex.EncodeToString(h[:])
}
