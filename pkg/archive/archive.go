// Copyright 2025 Outreach Corporation. All Rights Reserved.

// Description: This file contains the entrypoint for extracting an
// archive into a directory.

// Package archive extracts archives into a destination directory. The
// format is detected from the file content, the supported formats are:
//   - tar
//   - tar.gz
//   - tar.xz
//   - zip
//
// Every entry is passed through Transform, which strips leading path
// components and applies a Filter. Only regular files are written, each
// one through a temporary file that is renamed into place, and no write
// ever resolves outside of the destination.
package archive

import (
	"context"
	"io"
	"path/filepath"

	"github.com/getoutreach/binwrap/internal/fsutil"
	"github.com/pkg/errors"
)

// extractors maps every supported format to a constructor for its
// Extractor.
var extractors = map[Format]func() Extractor{
	FormatTar:     func() Extractor { return &tarExtractor{} },
	FormatGzipTar: func() Extractor { return &tarExtractor{container: &gzipCompressedReader{}} },
	FormatXzTar:   func() Extractor { return &tarExtractor{container: &xzCompressedReader{}} },
	FormatZip:     func() Extractor { return &zipExtractor{} },
}

// Decompress extracts the archive at archivePath into dest. strip leading
// path components are removed from every entry and entries rejected by
// filter are skipped, see Transform.
func Decompress(ctx context.Context, archivePath, dest string, filter Filter, strip int) error {
	return Extract(ctx, archivePath, dest, WithFilter(filter), WithStripComponents(strip))
}

// Extract extracts the archive at archivePath into dest, based on the
// provided option functions.
//
// The returned error matches ErrUnsupportedFormat, ErrArchiveCorrupt or
// ErrFilesystem with errors.Is. Nothing is written when the format is not
// supported. On any other failure the entries written before the failure
// are left in place.
func Extract(ctx context.Context, archivePath, dest string, optFns ...ExtractOptionFunc) error {
	opts := &ExtractOptions{FileMode: defaultFileMode}
	for _, fn := range optFns {
		if err := fn(opts); err != nil {
			return err
		}
	}

	format, err := Sniff(archivePath)
	if err != nil {
		return err
	}

	newExtractor, ok := extractors[format]
	if !ok {
		return &UnsupportedFormatError{Detected: format.String()}
	}

	extractor := newExtractor()
	defer extractor.Close() //nolint:errcheck // Why: read only handles

	archive, err := extractor.Open(ctx, archivePath)
	if err != nil {
		return err
	}

	for ctx.Err() == nil {
		header, err := archive.Next()
		if errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			return &ArchiveCorruptError{Err: err}
		}

		// skip directories, links and anything else that isn't a regular
		// file, directories are created as needed for the files under them
		if header.Type != HeaderTypeFile {
			continue
		}

		rel, ok := Transform(header.Name, opts.StripComponents, opts.Filter)
		if !ok {
			continue
		}

		if err := writeEntry(archive, header, dest, rel, opts); err != nil {
			return err
		}
	}

	return ctx.Err()
}

// writeEntry writes the current entry of archive to rel under dest.
func writeEntry(archive Archive, header *Header, dest, rel string, opts *ExtractOptions) error {
	target, err := resolve(dest, rel)
	if errors.Is(err, errInvalidPath) {
		return &ArchiveCorruptError{Entry: header.Name, Err: err}
	} else if err != nil {
		return &FilesystemError{Op: "resolve", Path: filepath.Join(dest, filepath.FromSlash(rel)), Err: err}
	}

	rc, err := archive.Open()
	if err != nil {
		return &ArchiveCorruptError{Entry: header.Name, Err: err}
	}
	defer rc.Close()

	mode := header.Mode.Perm()
	if mode == 0 {
		mode = opts.FileMode
	}

	if _, err := fsutil.WriteFile(target, rc, mode); err != nil {
		var ferr *fsutil.Error
		if errors.As(err, &ferr) && !ferr.Source {
			return &FilesystemError{Op: ferr.Op, Path: ferr.Path, Err: ferr.Err}
		}
		return &ArchiveCorruptError{Entry: header.Name, Err: err}
	}

	return nil
}
