// Copyright 2025 Outreach Corporation. All Rights Reserved.

package archive

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"gotest.tools/v3/assert"
)

// v7TarBytes returns a tar stream whose first header carries no ustar
// magic, only a valid checksum.
func v7TarBytes(t *testing.T) []byte {
	t.Helper()

	b := tarBytes(t, []testEntry{{name: "file.txt", body: "hello"}})
	for i := 257; i < 265; i++ {
		b[i] = 0
	}

	var sum int64
	for i, c := range b[:512] {
		if i >= 148 && i < 156 {
			c = ' '
		}
		sum += int64(c)
	}
	copy(b[148:156], fmt.Sprintf("%06o\x00 ", sum))

	return b
}

func TestSniffReader(t *testing.T) {
	entries := []testEntry{{name: "dir/file.txt", body: "hello"}}

	tests := []struct {
		name     string
		content  []byte
		want     Format
		detected string
		wantErr  bool
	}{
		{
			name:    "should detect a ustar archive",
			content: tarBytes(t, entries),
			want:    FormatTar,
		},
		{
			name:    "should detect a v7 archive by its checksum",
			content: v7TarBytes(t),
			want:    FormatTar,
		},
		{
			name:    "should detect gzip",
			content: archiveBytes(t, FormatGzipTar, entries),
			want:    FormatGzipTar,
		},
		{
			name:    "should detect xz",
			content: archiveBytes(t, FormatXzTar, entries),
			want:    FormatXzTar,
		},
		{
			name:    "should detect zip",
			content: zipBytes(t, entries),
			want:    FormatZip,
		},
		{
			name:    "should detect an empty zip",
			content: zipBytes(t, nil),
			want:    FormatZip,
		},
		{
			name:     "should name bzip2 as unsupported",
			content:  []byte("BZh91AY&SY"),
			detected: "bz2",
			wantErr:  true,
		},
		{
			name:     "should name zstd as unsupported",
			content:  []byte{0x28, 0xb5, 0x2f, 0xfd, 0x00},
			detected: "zst",
			wantErr:  true,
		},
		{
			name:     "should name an elf binary as unsupported",
			content:  []byte{0x7f, 'E', 'L', 'F', 0x02, 0x01},
			detected: "elf",
			wantErr:  true,
		},
		{
			name:    "should reject plain text",
			content: []byte("this is not an archive\n"),
			wantErr: true,
		},
		{
			name:    "should reject a zeroed block",
			content: make([]byte, 1024),
			wantErr: true,
		},
		{
			name:    "should reject empty input",
			content: nil,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SniffReader(bytes.NewReader(tt.content))
			if !tt.wantErr {
				assert.NilError(t, err)
				assert.Equal(t, got, tt.want)
				return
			}

			assert.Assert(t, errors.Is(err, ErrUnsupportedFormat), "got %v", err)
			assert.Equal(t, got, FormatUnknown)

			var uerr *UnsupportedFormatError
			assert.Assert(t, errors.As(err, &uerr))
			assert.Equal(t, uerr.Detected, tt.detected)
		})
	}
}

func TestSniffIgnoresExtension(t *testing.T) {
	p := writeTestFile(t, "release.zip", archiveBytes(t, FormatGzipTar, []testEntry{{name: "a", body: "b"}}))

	got, err := Sniff(p)
	assert.NilError(t, err)
	assert.Equal(t, got, FormatGzipTar)
}

func TestSniffMissingFile(t *testing.T) {
	_, err := Sniff("/does/not/exist.tar")
	assert.Assert(t, errors.Is(err, ErrFilesystem), "got %v", err)
}
