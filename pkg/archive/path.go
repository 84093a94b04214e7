// Copyright 2025 Outreach Corporation. All Rights Reserved.

// Description: This file contains the path transformation applied to every
// archive entry before it is written.

package archive

import (
	"path"
	"path/filepath"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"
)

// Filter decides whether an entry is written. name is the base name of the
// entry and relPath is its path after stripping, relative to the
// destination.
type Filter func(name, relPath string) bool

// Transform computes the destination relative path of an archive entry.
//
// The first strip components of name are removed. When that leaves
// nothing, the entry's base name is used instead. The result is then
// passed through filter, a false return (or an entry without any path
// components) reports the entry as skipped. A nil filter accepts every
// entry.
func Transform(name string, strip int, filter Filter) (string, bool) {
	parts := splitPath(name)
	if len(parts) == 0 {
		return "", false
	}

	rel := parts[len(parts)-1]
	if strip < 0 {
		strip = 0
	}
	if strip < len(parts) {
		rel = strings.Join(parts[strip:], "/")
	}

	if filter != nil && !filter(path.Base(rel), rel) {
		return "", false
	}

	return rel, true
}

// splitPath splits an archive entry name into its components. Empty
// components, from leading, trailing or repeated slashes, are dropped.
// "." is kept and counts as a component.
func splitPath(name string) []string {
	raw := strings.Split(name, "/")
	parts := raw[:0]
	for _, p := range raw {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// resolve joins rel onto root. rel must stay inside root lexically, and
// symlinks that already exist under root are resolved as if root were the
// filesystem root so they cannot redirect a write outside of it.
func resolve(root, rel string) (string, error) {
	clean := path.Clean(rel)
	if clean == "." || clean == ".." || strings.HasPrefix(clean, "../") {
		return "", errInvalidPath
	}

	return securejoin.SecureJoin(root, filepath.FromSlash(clean))
}
