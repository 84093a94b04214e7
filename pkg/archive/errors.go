// Copyright 2025 Outreach Corporation. All Rights Reserved.

// Description: This file contains the errors returned by the archive package.

package archive

import "fmt"

// SentinelError is a constant which ought to be compared using errors.Is.
type SentinelError string

// Error returns s as a string.
func (s SentinelError) Error() string {
	return string(s)
}

const (
	// ErrUnsupportedFormat matches every UnsupportedFormatError.
	ErrUnsupportedFormat SentinelError = "unsupported archive format"

	// ErrArchiveCorrupt matches every ArchiveCorruptError.
	ErrArchiveCorrupt SentinelError = "archive is corrupt"

	// ErrFilesystem matches every FilesystemError.
	ErrFilesystem SentinelError = "filesystem operation failed"

	// errInvalidPath is wrapped by an ArchiveCorruptError when an entry
	// would resolve outside of the destination.
	errInvalidPath SentinelError = "entry path escapes the destination"
)

// UnsupportedFormatError is returned when the content of a file does not
// match any supported archive format. Detected is set when the content was
// recognized as something we cannot extract, e.g. "bz2".
type UnsupportedFormatError struct {
	Detected string
}

// Error implements the err interface.
func (e *UnsupportedFormatError) Error() string {
	if e.Detected == "" {
		return string(ErrUnsupportedFormat)
	}
	return fmt.Sprintf("%s: %s", ErrUnsupportedFormat, e.Detected)
}

// Is reports whether target is ErrUnsupportedFormat.
func (e *UnsupportedFormatError) Is(target error) bool {
	return target == ErrUnsupportedFormat
}

// ArchiveCorruptError indicates the archive could not be decoded. Entry is
// the entry being processed when decoding failed, empty when the failure
// happened before the first entry.
type ArchiveCorruptError struct {
	Entry string
	Err   error
}

// Error implements the err interface.
func (e *ArchiveCorruptError) Error() string {
	if e.Entry == "" {
		return fmt.Sprintf("%s: %v", ErrArchiveCorrupt, e.Err)
	}
	return fmt.Sprintf("%s: entry %q: %v", ErrArchiveCorrupt, e.Entry, e.Err)
}

// Unwrap returns the inner error.
func (e *ArchiveCorruptError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrArchiveCorrupt.
func (e *ArchiveCorruptError) Is(target error) bool {
	return target == ErrArchiveCorrupt
}

// FilesystemError indicates that writing to the destination failed.
type FilesystemError struct {
	// Op is the operation that failed, e.g. "mkdir" or "write"
	Op   string
	Path string
	Err  error
}

// Error implements the err interface.
func (e *FilesystemError) Error() string {
	return fmt.Sprintf("%s: %s %s: %v", ErrFilesystem, e.Op, e.Path, e.Err)
}

// Unwrap returns the inner error.
func (e *FilesystemError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrFilesystem.
func (e *FilesystemError) Is(target error) bool {
	return target == ErrFilesystem
}
