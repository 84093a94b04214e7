// Copyright 2025 Outreach Corporation. All Rights Reserved.

// Description: This file defines the functional arguments to the wrapper.

package binwrap

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// Option configures a Wrapper
type Option func(*Wrapper)

// WithSource adds a location serving the raw executable for the given
// platform.
func WithSource(url, goos, goarch string) Option {
	return func(w *Wrapper) {
		w.sources = append(w.sources, &Source{URL: url, OS: goos, Arch: goarch})
	}
}

// WithCompressedSource adds a location serving an archive for the given
// platform. Entries whose base name starts with prefix are extracted into
// the destination after removing strip leading path components.
func WithCompressedSource(url, goos, goarch, prefix string, strip int) Option {
	return func(w *Wrapper) {
		w.sources = append(w.sources, &Source{
			URL:        url,
			OS:         goos,
			Arch:       goarch,
			Compressed: true,
			Prefix:     prefix,
			Strip:      strip,
		})
	}
}

// WithChecksum pins the hex encoded SHA-256 digest of the download added
// by the preceding WithSource or WithCompressedSource.
func WithChecksum(sha256 string) Option {
	return func(w *Wrapper) {
		if len(w.sources) == 0 {
			return
		}
		w.sources[len(w.sources)-1].SHA256 = sha256
	}
}

// WithDestination sets the directory the binary is installed into.
// Defaults to ~/.cache/binwrap/<name>.
func WithDestination(dir string) Option {
	return func(w *Wrapper) {
		w.dest = dir
	}
}

// WithBinary sets the file name of the binary inside of the destination.
func WithBinary(name string) Option {
	return func(w *Wrapper) {
		w.name = name
	}
}

// WithPlatform overrides the platform used to select sources. Defaults to
// runtime.GOOS and runtime.GOARCH.
func WithPlatform(goos, goarch string) Option {
	return func(w *Wrapper) {
		w.goos = goos
		w.goarch = goarch
	}
}

// WithLogger sets the logger to use for logging. If not set
// a io.Discard logger is created.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(w *Wrapper) {
		w.log = logger
	}
}

// WithHTTPClient sets the http.Client downloads are made with.
func WithHTTPClient(client *http.Client) Option {
	return func(w *Wrapper) {
		w.httpClient = client
	}
}

// WithRetries sets how many times a failed download is retried and the
// minimum wait between attempts.
func WithRetries(maxRetries int, minWait time.Duration) Option {
	return func(w *Wrapper) {
		w.retryMax = maxRetries
		w.retryWaitMin = minWait
	}
}

// WithNoProgressBar sets whether or not to show the progress bar.
func WithNoProgressBar(noProgressBar bool) Option {
	return func(w *Wrapper) {
		w.noProgressBar = noProgressBar
	}
}

// WithVersionConstraint requires the installed binary to report a version
// satisfying constraint, e.g. ">= 1.2.0, < 2". See Wrapper.Validate.
func WithVersionConstraint(constraint string) Option {
	return func(w *Wrapper) {
		w.versionConstraint = constraint
	}
}

// WithVersionArgs sets the arguments used to make the binary print its
// version. Defaults to --version.
func WithVersionArgs(args ...string) Option {
	return func(w *Wrapper) {
		w.versionArgs = args
	}
}
