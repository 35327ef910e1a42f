package validation

import (
	"errors"
	"strings"
	"testing"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{name: "relative", path: "data/day05.txt"},
		{name: "absolute", path: "/tmp/almanac.txt.xz"},
		{name: "empty", path: "", wantErr: ErrEmptyPath},
		{name: "too long", path: strings.Repeat("a", MaxPathLength+1), wantErr: ErrPathTooLong},
		{name: "null byte", path: "a\x00b", wantErr: ErrInvalidCharacter},
		{name: "control character", path: "a\nb", wantErr: ErrInvalidCharacter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidatePath(%q) unexpected error: %v", tt.path, err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidatePath(%q) = %v, want %v", tt.path, err, tt.wantErr)
			}
		})
	}
}

func TestDetectCompression(t *testing.T) {
	tests := []struct {
		name   string
		header []byte
		want   Compression
	}{
		{name: "gzip", header: []byte{0x1f, 0x8b, 0x08, 0x00}, want: CompressionGzip},
		{name: "xz", header: []byte{0xfd, '7', 'z', 'X', 'Z', 0x00, 0x00}, want: CompressionXZ},
		{name: "text", header: []byte("seeds: 79 14"), want: CompressionNone},
		{name: "short", header: []byte{0x1f}, want: CompressionNone},
		{name: "empty", header: nil, want: CompressionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectCompression(tt.header); got != tt.want {
				t.Errorf("DetectCompression() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCheckText(t *testing.T) {
	if err := CheckText([]byte("seeds: 79 14 55 13\r\n\tx\n")); err != nil {
		t.Errorf("CheckText(text) = %v", err)
	}
	if err := CheckText(nil); err != nil {
		t.Errorf("CheckText(nil) = %v", err)
	}
	if err := CheckText([]byte("abc\x00def")); !errors.Is(err, ErrNotText) {
		t.Errorf("CheckText(NUL) = %v, want ErrNotText", err)
	}
	if err := CheckText([]byte{0x01, 0x02, 0x03, 'a'}); !errors.Is(err, ErrNotText) {
		t.Errorf("CheckText(control bytes) = %v, want ErrNotText", err)
	}
}
