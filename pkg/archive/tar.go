// Copyright 2025 Outreach Corporation. All Rights Reserved.

// Description: This file contains code for interacting with tar files.

package archive

import (
	"archive/tar"
	"bufio"
	"context"
	"errors"
	"io"
	"os"
)

// _ ensures that the tarExtractor type implements the Extractor interface
var _ Extractor = &tarExtractor{}

// _ ensures that the tarArchive type implements the Archive interface
var _ Archive = &tarArchive{}

// CompressedReader is the interface for a reader that can read a compressed
// stream wrapping a tar archive.
type CompressedReader interface {
	// Open returns a reader for the decompressed stream.
	Open(ctx context.Context, r io.Reader) (io.ReadCloser, error)
}

// tarExtractor is an extractor for tar files, optionally wrapped in a
// compressed container.
type tarExtractor struct {
	// container decompresses the outer layer, nil for plain tar files
	container CompressedReader

	c io.Closer
}

// Open returns an Archive for the tar file at archivePath.
func (t *tarExtractor) Open(ctx context.Context, archivePath string) (Archive, error) {
	f, err := os.Open(archivePath)
	if err != nil {
		return nil, &FilesystemError{Op: "open", Path: archivePath, Err: err}
	}
	t.c = f

	var r io.Reader = bufio.NewReader(f)
	if t.container != nil {
		containerR, err := t.container.Open(ctx, r)
		if err != nil {
			return nil, &ArchiveCorruptError{Err: err}
		}

		// Ensure we close in the order of container -> file
		t.c = newSequencedCloser(containerR, f)
		r = containerR
	}

	return &tarArchive{r: tar.NewReader(r)}, nil
}

// Close closes the handles opened by Open. This can be called multiple
// times and when Open hasn't been called safely.
// This is not go-routine safe.
func (t *tarExtractor) Close() error {
	if t.c == nil {
		return nil
	}

	err := t.c.Close()
	t.c = nil
	return err
}

// tarArchive implements the Archive interface for tar files.
type tarArchive struct {
	r *tar.Reader
}

// Next advances to the next entry in the archive.
func (t *tarArchive) Next() (*Header, error) {
	th, err := t.r.Next()
	if err != nil && !(errors.Is(err, tar.ErrInsecurePath) && th != nil) {
		return nil, err
	}

	h := &Header{
		Name: th.Name,
		Size: th.Size,
		Mode: th.FileInfo().Mode(),
		Type: HeaderTypeOther,
	}

	switch th.Typeflag {
	case tar.TypeReg, tar.TypeRegA: //nolint:staticcheck // Why: old archives still use TypeRegA
		h.Type = HeaderTypeFile
	case tar.TypeDir:
		h.Type = HeaderTypeDirectory
	}

	return h, nil
}

// Open returns the contents of the current entry.
func (t *tarArchive) Open() (io.ReadCloser, error) {
	return io.NopCloser(t.r), nil
}
