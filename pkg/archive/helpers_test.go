// Copyright 2025 Outreach Corporation. All Rights Reserved.

package archive

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"compress/gzip"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/ulikunitz/xz"
	"gotest.tools/v3/assert"
)

// testEntry is an entry written into a generated test archive.
type testEntry struct {
	name string
	body string
	mode int64

	// typ defaults to tar.TypeReg, zip archives only support regular
	// files and directories
	typ      byte
	linkname string
}

// tarBytes returns a tar stream containing entries.
func tarBytes(t *testing.T, entries []testEntry) []byte {
	t.Helper()

	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	for _, e := range entries {
		h := &tar.Header{
			Name:     e.name,
			Mode:     e.mode,
			Typeflag: e.typ,
			Linkname: e.linkname,
		}
		if h.Typeflag == 0 {
			h.Typeflag = tar.TypeReg
		}
		if h.Mode == 0 && h.Typeflag == tar.TypeReg {
			h.Mode = 0o644
		}
		if h.Typeflag == tar.TypeReg {
			h.Size = int64(len(e.body))
		}

		assert.NilError(t, tw.WriteHeader(h))
		if h.Typeflag == tar.TypeReg {
			_, err := tw.Write([]byte(e.body))
			assert.NilError(t, err)
		}
	}
	assert.NilError(t, tw.Close())

	return buf.Bytes()
}

// gzipBytes compresses b with gzip.
func gzipBytes(t *testing.T, b []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	_, err := gw.Write(b)
	assert.NilError(t, err)
	assert.NilError(t, gw.Close())

	return buf.Bytes()
}

// xzBytes compresses b with xz.
func xzBytes(t *testing.T, b []byte) []byte {
	t.Helper()

	var buf bytes.Buffer
	xw, err := xz.NewWriter(&buf)
	assert.NilError(t, err)
	_, err = xw.Write(b)
	assert.NilError(t, err)
	assert.NilError(t, xw.Close())

	return buf.Bytes()
}

// zipBytes returns a zip archive containing entries.
func zipBytes(t *testing.T, entries []testEntry) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		h := &zip.FileHeader{Name: e.name, Method: zip.Deflate}
		mode := fs.FileMode(e.mode)
		if mode == 0 {
			mode = 0o644
		}
		if e.typ == tar.TypeDir {
			mode |= fs.ModeDir
		}
		h.SetMode(mode)

		w, err := zw.CreateHeader(h)
		assert.NilError(t, err)
		if e.typ != tar.TypeDir {
			_, err = w.Write([]byte(e.body))
			assert.NilError(t, err)
		}
	}
	assert.NilError(t, zw.Close())

	return buf.Bytes()
}

// archiveBytes builds an archive of the given format from entries.
func archiveBytes(t *testing.T, format Format, entries []testEntry) []byte {
	t.Helper()

	switch format {
	case FormatTar:
		return tarBytes(t, entries)
	case FormatGzipTar:
		return gzipBytes(t, tarBytes(t, entries))
	case FormatXzTar:
		return xzBytes(t, tarBytes(t, entries))
	case FormatZip:
		return zipBytes(t, entries)
	}

	t.Fatalf("unsupported test format %v", format)
	return nil
}

// writeTestFile writes b to a file named name in a new temporary directory
// and returns its path.
func writeTestFile(t *testing.T, name string, b []byte) string {
	t.Helper()

	p := filepath.Join(t.TempDir(), name)
	assert.NilError(t, os.WriteFile(p, b, 0o600))
	return p
}

// readTree returns the regular files under root keyed by their slash
// separated path relative to root.
func readTree(t *testing.T, root string) map[string]string {
	t.Helper()

	tree := map[string]string{}
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}

		b, err := os.ReadFile(p)
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		tree[filepath.ToSlash(rel)] = string(b)
		return nil
	})
	assert.NilError(t, err)

	return tree
}
