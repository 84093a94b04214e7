// Copyright 2025 Outreach Corporation. All Rights Reserved.

// Description: This file contains an implementation of the Extractor
// and Archive interfaces for extracting a zip file.

package archive

import (
	"context"
	"io"

	"github.com/klauspost/compress/zip"
	"github.com/pkg/errors"
)

// _ ensures that the zipExtractor type implements the Extractor interface
var _ Extractor = &zipExtractor{}

// _ ensures that the zipArchive type implements the Archive interface
var _ Archive = &zipArchive{}

// zipExtractor is an extractor for zip files
type zipExtractor struct {
	rc *zip.ReadCloser
}

// Open returns an Archive for the zip file at archivePath. The central
// directory is read up front, entry data is only decompressed when the
// entry is opened.
func (z *zipExtractor) Open(_ context.Context, archivePath string) (Archive, error) {
	// Non-local names are confined by the caller, so the reader is used
	// even when it reports them.
	rc, err := zip.OpenReader(archivePath)
	if err != nil && !(errors.Is(err, zip.ErrInsecurePath) && rc != nil) {
		return nil, &ArchiveCorruptError{Err: err}
	}
	z.rc = rc

	return &zipArchive{files: rc.File, pos: -1}, nil
}

// Close closes the underlying zip file. This can be called multiple
// times and when Open hasn't been called safely.
func (z *zipExtractor) Close() error {
	if z.rc == nil {
		return nil
	}

	err := z.rc.Close()
	z.rc = nil
	return err
}

// zipArchive implements the Archive interface for zip files.
type zipArchive struct {
	files []*zip.File

	// pos is the index of the current entry, -1 before the first call
	// to Next
	pos int
}

// Next advances to the next entry in the archive.
func (z *zipArchive) Next() (*Header, error) {
	// if we've reached the end of the archive, return io.EOF
	if z.pos+1 >= len(z.files) {
		z.pos = len(z.files)
		return nil, io.EOF
	}
	z.pos++

	f := z.files[z.pos]
	inf := f.FileInfo()
	h := &Header{
		Name: f.Name,
		Size: inf.Size(),
		Mode: inf.Mode(),
		Type: HeaderTypeOther,
	}

	switch {
	case inf.Mode().IsRegular():
		h.Type = HeaderTypeFile
	case inf.IsDir():
		h.Type = HeaderTypeDirectory
	}

	return h, nil
}

// Open returns a decompressing reader for the current entry.
func (z *zipArchive) Open() (io.ReadCloser, error) {
	if z.pos < 0 || z.pos >= len(z.files) {
		return nil, errors.New("no current entry, call Next first")
	}

	f := z.files[z.pos]
	r, err := f.Open()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create reader for file %q", f.Name)
	}

	return r, nil
}
