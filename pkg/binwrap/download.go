// Copyright 2025 Outreach Corporation. All Rights Reserved.

// Description: This file contains the logic for downloading and installing
// the binary from its sources.

package binwrap

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/getoutreach/binwrap/internal/fsutil"
	"github.com/getoutreach/binwrap/pkg/archive"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

// userAgent is sent with every download request.
const userAgent = "binwrap"

// ErrChecksumMismatch is returned when a download does not match the
// digest pinned on its source.
var ErrChecksumMismatch = errors.New("checksum mismatch")

// newHTTPClient returns the retrying client downloads are made with.
func newHTTPClient(w *Wrapper) *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.Logger = newRetryableHTTPLogger(w.log)
	client.RetryMax = w.retryMax
	client.RetryWaitMin = w.retryWaitMin
	if client.RetryWaitMax < w.retryWaitMin {
		client.RetryWaitMax = w.retryWaitMin
	}
	if w.httpClient != nil {
		client.HTTPClient = w.httpClient
	}
	return client
}

// showProgress reports whether progress should be rendered.
func (w *Wrapper) showProgress() bool {
	return !w.noProgressBar && term.IsTerminal(int(os.Stdout.Fd()))
}

// download installs every source matching the current platform
// concurrently. The first failure cancels the remaining downloads.
func (w *Wrapper) download(ctx context.Context) error {
	srcs := w.matchingSources()
	if len(srcs) == 0 {
		return errors.Wrapf(ErrNoMatchingSource, "%s/%s", w.goos, w.goarch)
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, src := range srcs {
		g.Go(func() error {
			return w.install(ctx, src)
		})
	}
	return g.Wait()
}

// install downloads src and installs it into the destination.
func (w *Wrapper) install(ctx context.Context, src *Source) error {
	log := w.log.WithField("url", src.URL)

	tmp, err := w.fetch(ctx, src)
	if err != nil {
		return err
	}
	defer os.Remove(tmp) //nolint:errcheck // Why: Best effort

	if src.Compressed {
		log.WithField("prefix", src.Prefix).WithField("strip", src.Strip).Debug("Extracting archive")

		if w.showProgress() {
			spin := spinner.New(spinner.CharSets[9], 100*time.Millisecond,
				spinner.WithSuffix(" Extracting "+w.name), spinner.WithWriter(os.Stderr))
			spin.Start()
			defer spin.Stop()
		}

		err := archive.Extract(ctx, tmp, w.dest,
			archive.WithPrefix(src.Prefix),
			archive.WithStripComponents(src.Strip),
		)
		return errors.Wrapf(err, "failed to extract %q", src.URL)
	}

	f, err := os.Open(tmp)
	if err != nil {
		return errors.Wrap(err, "failed to open downloaded file")
	}
	defer f.Close()

	log.WithField("path", w.Path()).Debug("Installing binary")
	if _, err := fsutil.WriteFile(w.Path(), f, 0o755); err != nil {
		return errors.Wrapf(err, "failed to install %q", w.Path())
	}

	return nil
}

// fetch downloads src into a temporary file and returns its path. The
// caller is responsible for removing it.
func (w *Wrapper) fetch(ctx context.Context, src *Source) (path string, err error) {
	w.log.WithField("url", src.URL).Debug("Downloading")

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return "", errors.Wrapf(err, "failed to create request for %q", src.URL)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := w.client.Do(req)
	if err != nil {
		return "", errors.Wrapf(err, "failed to download %q", src.URL)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("failed to download %q: %s", src.URL, resp.Status)
	}

	tmpF, err := os.CreateTemp("", "binwrap-*")
	if err != nil {
		return "", errors.Wrap(err, "failed to create temp file")
	}
	defer func() {
		tmpF.Close() //nolint:errcheck // Why: Best effort
		if err != nil {
			os.Remove(tmpF.Name()) //nolint:errcheck // Why: Best effort
		}
	}()

	h := sha256.New()
	wr := io.MultiWriter(tmpF, h)
	if w.showProgress() {
		pb := progressbar.DefaultBytes(resp.ContentLength, "Downloading "+w.name)
		defer pb.Close()

		wr = io.MultiWriter(tmpF, h, pb)
	}

	if _, err := io.Copy(wr, resp.Body); err != nil {
		return "", errors.Wrapf(err, "failed to download %q", src.URL)
	}

	if src.SHA256 != "" {
		got := hex.EncodeToString(h.Sum(nil))
		if !strings.EqualFold(got, strings.TrimSpace(src.SHA256)) {
			return "", errors.Wrapf(ErrChecksumMismatch, "%q: expected %s, got %s", src.URL, src.SHA256, got)
		}
	}

	if err := tmpF.Close(); err != nil {
		return "", errors.Wrap(err, "failed to write temp file")
	}

	return tmpF.Name(), nil
}
