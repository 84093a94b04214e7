// Copyright 2025 Outreach Corporation. All Rights Reserved.

// Description: This file contains options for the archive package.

package archive

import (
	"fmt"
	"os"
	"strings"
)

// defaultFileMode is used for entries that carry no permission bits.
const defaultFileMode os.FileMode = 0o644

// ExtractOptions are the options for the Extract function.
type ExtractOptions struct {
	// Filter selects which entries are written, see Filter.
	Filter Filter

	// StripComponents is the number of leading path components removed
	// from every entry name.
	StripComponents int

	// FileMode is used for entries whose mode has no permission bits.
	FileMode os.FileMode
}

// ExtractOptionFunc is an option function that mutates an ExtractOptions struct.
type ExtractOptionFunc func(*ExtractOptions) error

// WithFilter is an ExtractOptionFunc that sets the entry filter.
func WithFilter(fn Filter) ExtractOptionFunc {
	return func(opts *ExtractOptions) error {
		opts.Filter = fn
		return nil
	}
}

// WithPrefix is an ExtractOptionFunc that only writes entries whose base
// name starts with prefix.
func WithPrefix(prefix string) ExtractOptionFunc {
	return WithFilter(func(name, _ string) bool {
		return strings.HasPrefix(name, prefix)
	})
}

// WithStripComponents is an ExtractOptionFunc that removes n leading path
// components from every entry.
func WithStripComponents(n int) ExtractOptionFunc {
	return func(opts *ExtractOptions) error {
		if n < 0 {
			return fmt.Errorf("strip components must not be negative, got %d", n)
		}
		opts.StripComponents = n
		return nil
	}
}

// WithFileMode is an ExtractOptionFunc that sets the mode used for entries
// that do not carry permission bits. Defaults to 0644.
func WithFileMode(mode os.FileMode) ExtractOptionFunc {
	return func(opts *ExtractOptions) error {
		opts.FileMode = mode.Perm()
		return nil
	}
}
