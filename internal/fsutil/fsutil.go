// Copyright 2025 Outreach Corporation. All Rights Reserved.

// Description: This file contains scoped file writes.

// Package fsutil contains filesystem helpers shared by the archive and
// binwrap packages.
package fsutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Error is returned by WriteFile. Source is true when the failure came from
// reading r rather than from the filesystem.
type Error struct {
	Op     string
	Path   string
	Err    error
	Source bool
}

// Error implements the err interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the inner error.
func (e *Error) Unwrap() error {
	return e.Err
}

// sourceReader remembers the last non-EOF error returned by r.
type sourceReader struct {
	r   io.Reader
	err error
}

// Read implements io.Reader.
func (s *sourceReader) Read(p []byte) (int, error) {
	n, err := s.r.Read(p)
	if err != nil && !errors.Is(err, io.EOF) {
		s.err = err
	}
	return n, err
}

// WriteFile writes the contents of r to path with the provided permission
// bits. Parent directories are created as needed.
//
// The data is written to a temporary file next to path which is then
// renamed over it, so path either keeps its previous content or holds
// all of r. The temporary file is removed on failure.
func WriteFile(path string, r io.Reader, perm os.FileMode) (n int64, err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return 0, &Error{Op: "mkdir", Path: dir, Err: err}
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return 0, &Error{Op: "create", Path: path, Err: err}
	}
	defer func() {
		if err != nil {
			tmp.Close()           //nolint:errcheck // Why: Best effort
			os.Remove(tmp.Name()) //nolint:errcheck // Why: Best effort
		}
	}()

	src := &sourceReader{r: r}
	n, err = io.Copy(tmp, src)
	if err != nil {
		if src.err != nil {
			return n, &Error{Op: "read", Path: path, Err: src.err, Source: true}
		}
		return n, &Error{Op: "write", Path: path, Err: err}
	}

	if err = tmp.Sync(); err != nil {
		return n, &Error{Op: "sync", Path: path, Err: err}
	}

	if err = tmp.Chmod(perm); err != nil {
		return n, &Error{Op: "chmod", Path: path, Err: err}
	}

	if err = tmp.Close(); err != nil {
		return n, &Error{Op: "close", Path: path, Err: err}
	}

	if err = os.Rename(tmp.Name(), path); err != nil {
		return n, &Error{Op: "rename", Path: path, Err: err}
	}

	return n, nil
}
