// Copyright 2025 Outreach Corporation. All Rights Reserved.

// Description: This file contains download sources and how they are
// matched against the current platform.

package binwrap

import "strings"

// Source is a download location for a single platform.
type Source struct {
	// URL is where the binary, or an archive containing it, is served
	URL string

	// OS and Arch are the platform this source is for, using GOOS and
	// GOARCH names. Common aliases are accepted, see NormalizeOS and
	// NormalizeArch.
	OS   string
	Arch string

	// Compressed marks URL as an archive that is extracted into the
	// destination rather than the binary itself.
	Compressed bool

	// Prefix selects which archive entries are extracted by base name.
	Prefix string

	// Strip is the number of leading path components removed from every
	// archive entry.
	Strip int

	// SHA256 is the optional hex encoded digest of the download.
	SHA256 string
}

// osAliases maps alternative operating system names to GOOS.
var osAliases = map[string]string{
	"win32":  "windows",
	"win":    "windows",
	"macos":  "darwin",
	"osx":    "darwin",
	"mac":    "darwin",
	"sunos":  "solaris",
	"cygwin": "windows",
}

// archAliases maps alternative architecture names to GOARCH.
var archAliases = map[string]string{
	"x64":     "amd64",
	"x86_64":  "amd64",
	"x86-64":  "amd64",
	"ia32":    "386",
	"x86":     "386",
	"i386":    "386",
	"i686":    "386",
	"aarch64": "arm64",
	"armv7":   "arm",
	"armv7l":  "arm",
	"armhf":   "arm",
	"ppc64el": "ppc64le",
}

// NormalizeOS returns the GOOS name for goos.
func NormalizeOS(goos string) string {
	goos = strings.ToLower(strings.TrimSpace(goos))
	if v, ok := osAliases[goos]; ok {
		return v
	}
	return goos
}

// NormalizeArch returns the GOARCH name for goarch.
func NormalizeArch(goarch string) string {
	goarch = strings.ToLower(strings.TrimSpace(goarch))
	if v, ok := archAliases[goarch]; ok {
		return v
	}
	return goarch
}

// Matches reports whether s is for the provided platform.
func (s *Source) Matches(goos, goarch string) bool {
	return NormalizeOS(s.OS) == NormalizeOS(goos) && NormalizeArch(s.Arch) == NormalizeArch(goarch)
}

// matchingSources returns the sources for the wrapper's platform, in the
// order they were added.
func (w *Wrapper) matchingSources() []*Source {
	var out []*Source
	for _, s := range w.sources {
		if s.Matches(w.goos, w.goarch) {
			out = append(out, s)
		}
	}
	return out
}
