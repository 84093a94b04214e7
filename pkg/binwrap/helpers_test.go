// Copyright 2025 Outreach Corporation. All Rights Reserved.

package binwrap

import (
	"archive/tar"
	"bytes"
	"compress/gzip"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"gotest.tools/v3/assert"
)

// fileServer serves fixed content per path and counts requests.
type fileServer struct {
	*httptest.Server
	files map[string][]byte
	hits  atomic.Int32
}

// newFileServer starts a server for files, closed when the test ends.
func newFileServer(t *testing.T, files map[string][]byte) *fileServer {
	t.Helper()

	fs := &fileServer{files: files}
	fs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fs.hits.Add(1)

		b, ok := fs.files[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Write(b) //nolint:errcheck // Why: test server
	}))
	t.Cleanup(fs.Close)

	return fs
}

// url returns the full url for path.
func (fs *fileServer) url(path string) string {
	return fs.URL + path
}

// tarGz returns a tar.gz archive holding files, keyed by entry name.
func tarGz(t *testing.T, files map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	tw := tar.NewWriter(gw)
	for name, body := range files {
		assert.NilError(t, tw.WriteHeader(&tar.Header{
			Name:     name,
			Mode:     0o644,
			Size:     int64(len(body)),
			Typeflag: tar.TypeReg,
		}))
		_, err := tw.Write([]byte(body))
		assert.NilError(t, err)
	}
	assert.NilError(t, tw.Close())
	assert.NilError(t, gw.Close())

	return buf.Bytes()
}

// testOptions are the options every test wrapper is created with.
func testOptions(t *testing.T, opts ...Option) []Option {
	return append([]Option{
		WithBinary("tool"),
		WithDestination(t.TempDir()),
		WithPlatform("linux", "amd64"),
		WithNoProgressBar(true),
		WithRetries(0, time.Millisecond),
	}, opts...)
}
