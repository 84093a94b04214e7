// Copyright 2025 Outreach Corporation. All Rights Reserved.

package fsutil

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"gotest.tools/v3/assert"
)

// failingReader returns some data and then err.
type failingReader struct {
	data string
	err  error
}

func (f *failingReader) Read(p []byte) (int, error) {
	if f.data == "" {
		return 0, f.err
	}
	n := copy(p, f.data)
	f.data = f.data[n:]
	return n, nil
}

// listDir returns the names of the entries in dir.
func listDir(t *testing.T, dir string) []string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	assert.NilError(t, err)

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "a", "b", "tool")

	n, err := WriteFile(p, strings.NewReader("contents"), 0o755)
	assert.NilError(t, err)
	assert.Equal(t, n, int64(len("contents")))

	b, err := os.ReadFile(p)
	assert.NilError(t, err)
	assert.Equal(t, string(b), "contents")

	if runtime.GOOS != "windows" {
		inf, err := os.Stat(p)
		assert.NilError(t, err)
		assert.Equal(t, inf.Mode().Perm(), os.FileMode(0o755))
	}

	// overwriting replaces the content and leaves no temp files behind
	_, err = WriteFile(p, strings.NewReader("new"), 0o644)
	assert.NilError(t, err)
	b, err = os.ReadFile(p)
	assert.NilError(t, err)
	assert.Equal(t, string(b), "new")
	assert.DeepEqual(t, listDir(t, filepath.Dir(p)), []string{"tool"})
}

func TestWriteFileSourceError(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "tool")
	assert.NilError(t, os.WriteFile(p, []byte("previous"), 0o600))

	readErr := errors.New("stream broke")
	_, err := WriteFile(p, &failingReader{data: "partial", err: readErr}, 0o644)

	var ferr *Error
	assert.Assert(t, errors.As(err, &ferr))
	assert.Assert(t, ferr.Source)
	assert.Equal(t, ferr.Op, "read")
	assert.ErrorIs(t, err, readErr)

	// the previous content is untouched and the temp file is removed
	b, err := os.ReadFile(p)
	assert.NilError(t, err)
	assert.Equal(t, string(b), "previous")
	assert.DeepEqual(t, listDir(t, dir), []string{"tool"})
}

func TestWriteFileMkdirError(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	assert.NilError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	_, err := WriteFile(filepath.Join(blocker, "tool"), io.LimitReader(strings.NewReader("x"), 1), 0o644)

	var ferr *Error
	assert.Assert(t, errors.As(err, &ferr))
	assert.Assert(t, !ferr.Source)
	assert.Equal(t, ferr.Op, "mkdir")
}
