// Copyright 2025 Outreach Corporation. All Rights Reserved.

// Description: This file contains an implementation of the CompressedReader interface
// for decompressing a gzip file.

package archive

import (
	"context"
	"io"

	"github.com/klauspost/compress/gzip"
)

// _ ensures that the gzipCompressedReader type implements the CompressedReader interface
var _ CompressedReader = &gzipCompressedReader{}

// gzipCompressedReader is a CompressedReader for gzip compressed file(s)
type gzipCompressedReader struct{}

// Open returns a reader for a gzip file
func (g *gzipCompressedReader) Open(_ context.Context, r io.Reader) (io.ReadCloser, error) {
	gzr, err := gzip.NewReader(r)
	if err != nil {
		return nil, err
	}

	return gzr, nil
}
