// Copyright 2025 Outreach Corporation. All Rights Reserved.

// Description: Implements a wrapper that provisions a platform specific
// binary on first use

// Package binwrap downloads a platform specific binary into a local
// directory the first time it is needed, optionally from inside of an
// archive, and runs it.
package binwrap

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/getoutreach/binwrap/pkg/exec"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var (
	// ErrNoMatchingSource is returned when no source was added for the
	// current platform.
	ErrNoMatchingSource = errors.New("no binary found for your platform")

	// ErrBinaryNotFound is returned when every source was installed but
	// the binary is still missing from the destination, e.g. because the
	// archive prefix did not match it.
	ErrBinaryNotFound = errors.New("binary not found after download")
)

// defaultVersionArgs make most binaries print their version.
var defaultVersionArgs = []string{"--version"}

// versionRegexp finds the first semver looking token in a version banner.
var versionRegexp = regexp.MustCompile(`v?\d+\.\d+(\.\d+)?(-[0-9A-Za-z.-]+)?(\+[0-9A-Za-z.-]+)?`)

// Wrapper provisions and runs a single binary.
type Wrapper struct {
	sources []*Source
	dest    string
	name    string

	goos   string
	goarch string

	log           logrus.FieldLogger
	httpClient    *http.Client
	retryMax      int
	retryWaitMin  time.Duration
	client        *retryablehttp.Client
	noProgressBar bool

	versionConstraint string
	constraint        *semver.Constraints
	versionArgs       []string
}

// New creates a Wrapper from the provided options. The destination is
// created when it does not exist yet.
func New(opts ...Option) (*Wrapper, error) {
	w := &Wrapper{retryMax: 3, retryWaitMin: time.Second}

	// parse the provided options
	for _, opt := range opts {
		opt(w)
	}

	// set the default options as needed
	if err := w.defaultOptions(); err != nil {
		return nil, err
	}

	return w, nil
}

// defaultOptions validates the options and fills in defaults for the
// ones that were not set.
func (w *Wrapper) defaultOptions() error {
	if w.name == "" {
		return errors.New("a binary name must be provided via WithBinary")
	}
	if strings.ContainsAny(w.name, `/\`) {
		return errors.Errorf("binary name %q must not contain a path separator", w.name)
	}

	if w.log == nil {
		// create a null output logger, we're not going to use it
		// if a logger wasn't passed in. This is to prevent panics.
		log := logrus.New()
		log.Out = io.Discard
		w.log = log
	}

	if w.goos == "" {
		w.goos = runtime.GOOS
	}
	if w.goarch == "" {
		w.goarch = runtime.GOARCH
	}

	if len(w.versionArgs) == 0 {
		w.versionArgs = defaultVersionArgs
	}

	if w.versionConstraint != "" {
		c, err := semver.NewConstraint(w.versionConstraint)
		if err != nil {
			return errors.Wrapf(err, "failed to parse version constraint %q", w.versionConstraint)
		}
		w.constraint = c
	}

	for _, s := range w.sources {
		if s.Strip < 0 {
			return errors.Errorf("source %q: strip must not be negative", s.URL)
		}
	}

	if w.dest == "" {
		dir, err := defaultDestination(w.name)
		if err != nil {
			return err
		}
		w.dest = dir
	}

	dest, err := homedir.Expand(w.dest)
	if err != nil {
		return errors.Wrapf(err, "failed to expand destination %q", w.dest)
	}
	w.dest = dest

	// ensure the destination exists and is a directory
	if inf, err := os.Stat(w.dest); os.IsNotExist(err) {
		if err := os.MkdirAll(w.dest, 0o755); err != nil {
			return errors.Wrapf(err, "failed to create destination %q", w.dest)
		}
	} else if err != nil {
		return errors.Wrapf(err, "failed to stat destination %q", w.dest)
	} else if !inf.IsDir() {
		return fmt.Errorf("the destination %q is not a directory", w.dest)
	}

	w.client = newHTTPClient(w)

	return nil
}

// defaultDestination returns ~/.cache/binwrap/<name>.
func defaultDestination(name string) (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", errors.Wrap(err, "failed to determine the home directory")
	}
	return filepath.Join(home, ".cache", "binwrap", name), nil
}

// Destination returns the directory the binary is installed into.
func (w *Wrapper) Destination() string {
	return w.dest
}

// Name returns the file name of the binary.
func (w *Wrapper) Name() string {
	return w.name
}

// Path returns the full path to the binary.
func (w *Wrapper) Path() string {
	return filepath.Join(w.dest, w.name)
}

// EnsureExist downloads the binary unless it already exists, then makes
// sure it is executable.
func (w *Wrapper) EnsureExist(ctx context.Context) error {
	if _, err := os.Stat(w.Path()); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return errors.Wrapf(err, "failed to stat %q", w.Path())
	}

	if err := w.download(ctx); err != nil {
		return err
	}

	if _, err := os.Stat(w.Path()); os.IsNotExist(err) {
		return errors.Wrapf(ErrBinaryNotFound, "expected %q", w.Path())
	}

	return w.grantExecutable()
}

// grantExecutable sets the executable bits on the binary when none are set.
func (w *Wrapper) grantExecutable() error {
	if runtime.GOOS == "windows" {
		return nil
	}

	ok, err := exec.IsExecutable(w.Path())
	if err != nil {
		return errors.Wrapf(err, "failed to check if %q is executable", w.Path())
	}
	if ok {
		return nil
	}

	w.log.WithField("path", w.Path()).Debug("Marking binary as executable")
	return errors.Wrapf(os.Chmod(w.Path(), 0o755), "failed to mark %q as executable", w.Path())
}

// checkExecutable returns an error when the binary cannot be executed.
func (w *Wrapper) checkExecutable() error {
	ok, err := exec.IsExecutable(w.Path())
	if err != nil {
		return errors.Wrapf(err, "failed to check if %q is executable", w.Path())
	}
	if !ok {
		return fmt.Errorf("the binary %q is not executable", w.Path())
	}
	return nil
}

// Run ensures the binary exists and runs it with args, returning its
// combined output. Without args the binary is run with --version. When a
// version constraint is set the binary is validated first.
func (w *Wrapper) Run(ctx context.Context, args ...string) ([]byte, error) {
	if err := w.EnsureExist(ctx); err != nil {
		return nil, err
	}

	if err := w.checkExecutable(); err != nil {
		return nil, err
	}

	if w.constraint != nil {
		if _, err := w.Validate(ctx); err != nil {
			return nil, err
		}
	}

	if len(args) == 0 {
		args = defaultVersionArgs
	}

	w.log.WithField("args", args).Debug("Running binary")
	out, err := exec.CommandContext(ctx, w.Path(), args...).CombinedOutput()
	if err != nil {
		return out, errors.Wrapf(err, "failed to run %q", w.Path())
	}

	return out, nil
}

// Validate runs the installed binary with the version arguments and
// returns the version it reports. When a version constraint is set, a
// version not satisfying it is an error.
func (w *Wrapper) Validate(ctx context.Context) (*semver.Version, error) {
	out, err := exec.CommandContext(ctx, w.Path(), w.versionArgs...).CombinedOutput()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get version of %q", w.Path())
	}

	raw := versionRegexp.FindString(string(out))
	if raw == "" {
		return nil, errors.Errorf("no version found in output of %q: %q", w.Path(), strings.TrimSpace(string(out)))
	}

	v, err := semver.NewVersion(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse version %q", raw)
	}

	if w.constraint != nil {
		if ok, errs := w.constraint.Validate(v); !ok {
			return v, errors.Errorf("binary version %s does not satisfy %q: %v", v, w.versionConstraint, errs)
		}
	}

	return v, nil
}
