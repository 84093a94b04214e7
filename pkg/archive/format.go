// Copyright 2025 Outreach Corporation. All Rights Reserved.

// Description: This file contains content based detection of archive formats.

package archive

import (
	"bytes"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Format is an archive format this package knows how to extract.
type Format int

const (
	// FormatUnknown is returned alongside an error when detection fails.
	FormatUnknown Format = iota
	// FormatTar is an uncompressed tar stream.
	FormatTar
	// FormatGzipTar is a tar stream compressed with gzip.
	FormatGzipTar
	// FormatXzTar is a tar stream compressed with xz.
	FormatXzTar
	// FormatZip is a zip archive.
	FormatZip
)

// String implements fmt.Stringer.
func (f Format) String() string {
	switch f {
	case FormatTar:
		return "tar"
	case FormatGzipTar:
		return "tar.gz"
	case FormatXzTar:
		return "tar.xz"
	case FormatZip:
		return "zip"
	default:
		return "unknown"
	}
}

// sniffLen is the number of bytes needed to identify every format,
// which is one tar header block.
const sniffLen = 512

// signature maps a leading byte sequence to a format.
type signature struct {
	magic  []byte
	format Format

	// name is set for formats we recognize but cannot extract
	name string
}

// signatures is checked in order, first match wins.
var signatures = []signature{
	{magic: []byte{0x1f, 0x8b}, format: FormatGzipTar},
	{magic: []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}, format: FormatXzTar},
	{magic: []byte{'P', 'K', 0x03, 0x04}, format: FormatZip},
	{magic: []byte{'P', 'K', 0x05, 0x06}, format: FormatZip},
	{magic: []byte{'P', 'K', 0x07, 0x08}, format: FormatZip},

	{magic: []byte{'B', 'Z', 'h'}, name: "bz2"},
	{magic: []byte{0x28, 0xb5, 0x2f, 0xfd}, name: "zst"},
	{magic: []byte{'7', 'z', 0xbc, 0xaf, 0x27, 0x1c}, name: "7z"},
	{magic: []byte{'R', 'a', 'r', '!', 0x1a, 0x07}, name: "rar"},
	{magic: []byte{0x04, 0x22, 0x4d, 0x18}, name: "lz4"},
	{magic: []byte{0x7f, 'E', 'L', 'F'}, name: "elf"},
	{magic: []byte{0xfe, 0xed, 0xfa, 0xce}, name: "macho"},
	{magic: []byte{0xfe, 0xed, 0xfa, 0xcf}, name: "macho"},
	{magic: []byte{0xce, 0xfa, 0xed, 0xfe}, name: "macho"},
	{magic: []byte{0xcf, 0xfa, 0xed, 0xfe}, name: "macho"},
	{magic: []byte{0xca, 0xfe, 0xba, 0xbe}, name: "macho"},
	{magic: []byte{'M', 'Z'}, name: "exe"},
}

// Sniff detects the format of the archive at path by inspecting its
// content. The file extension is never consulted.
func Sniff(path string) (Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return FormatUnknown, &FilesystemError{Op: "open", Path: path, Err: err}
	}
	defer f.Close()

	return SniffReader(f)
}

// SniffReader detects the format of the archive read from r. At most
// 512 bytes are consumed.
func SniffReader(r io.Reader) (Format, error) {
	buf := make([]byte, sniffLen)
	n, err := io.ReadFull(r, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return FormatUnknown, errors.Wrap(err, "failed to read archive header")
	}
	buf = buf[:n]

	for _, sig := range signatures {
		if !bytes.HasPrefix(buf, sig.magic) {
			continue
		}

		if sig.format == FormatUnknown {
			return FormatUnknown, &UnsupportedFormatError{Detected: sig.name}
		}
		return sig.format, nil
	}

	if isTarHeader(buf) {
		return FormatTar, nil
	}

	return FormatUnknown, &UnsupportedFormatError{}
}

// isTarHeader reports whether block is a tar header, either a POSIX
// ustar/GNU header or an old style V7 header with a valid checksum.
func isTarHeader(block []byte) bool {
	if len(block) < sniffLen {
		return false
	}

	if bytes.HasPrefix(block[257:], []byte("ustar")) {
		return true
	}

	field := strings.Trim(string(block[148:156]), " \x00")
	if field == "" {
		return false
	}
	want, err := strconv.ParseInt(field, 8, 64)
	if err != nil {
		return false
	}

	// The checksum is computed with the checksum field itself set to
	// spaces. Some historic implementations used signed bytes.
	var unsigned, signed int64
	for i, b := range block {
		if i >= 148 && i < 156 {
			b = ' '
		}
		unsigned += int64(b)
		signed += int64(int8(b))
	}

	return want == unsigned || want == signed
}
