// Copyright 2025 Outreach Corporation. All Rights Reserved.

// Description: This file contains io related helpers for the archive package.

package archive

import "io"

// sequencedCloser closes every contained closer in the order they were
// added. All closers are closed even if one fails, the first error is
// returned.
type sequencedCloser []io.Closer

// Close implements io.Closer.
func (s sequencedCloser) Close() error {
	var first error
	for _, c := range s {
		if c == nil {
			continue
		}

		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}

	return first
}

// newSequencedCloser returns a closer for the provided closers, in order.
func newSequencedCloser(cs ...io.Closer) io.Closer {
	return sequencedCloser(cs)
}
