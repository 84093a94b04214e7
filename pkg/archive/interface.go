// Copyright 2025 Outreach Corporation. All Rights Reserved.

// Description: This file contains the interfaces implemented by each
// supported archive container.

package archive

import (
	"context"
	"io"
	"os"
)

// Extractor opens an archive stored on disk and walks its entries.
type Extractor interface {
	// Open returns an Archive positioned before the first entry.
	Open(ctx context.Context, archivePath string) (Archive, error)

	// Close releases every handle acquired by Open. It is safe to call
	// when Open was never called or failed.
	Close() error
}

// Header is a generic struct containing information about an entry
// in an archive.
type Header struct {
	// Name is the raw, slash separated path of the entry
	Name string

	// Mode is the mode of the entry
	Mode os.FileMode

	// Size is the uncompressed size of the entry
	Size int64

	// Type is the type of entry this is
	// (file, directory, etc)
	Type HeaderType
}

// HeaderType is the type of entry a Header is for in an archive
type HeaderType string

const (
	// HeaderTypeFile is a regular file entry
	HeaderTypeFile HeaderType = "file"

	// HeaderTypeDirectory is a directory entry
	HeaderTypeDirectory HeaderType = "directory"

	// HeaderTypeOther covers links, devices, fifos and anything else
	// that is never written to disk.
	HeaderTypeOther HeaderType = "other"
)

// Archive is a forward only iterator over the entries of an archive.
type Archive interface {
	// Next advances to the next entry in the archive, or returns
	// io.EOF if there are no more entries.
	Next() (*Header, error)

	// Open returns the contents of the entry returned by the last call
	// to Next. The reader is only valid until Next is called again.
	Open() (io.ReadCloser, error)
}
