// Copyright 2025 Outreach Corporation. All Rights Reserved.

// Description: Provides helpers for locating and inspecting executables

// Package exec runs installed binaries through a swappable executor so
// callers can be tested without spawning processes.
package exec

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// ResolveExecutable finds the absolute path to a given binary. Bare names
// are looked up in PATH, anything else is made absolute.
func ResolveExecutable(path string) (string, error) {
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}

	// if we're not a path, e.g. terraform then look it up
	// in PATH
	if dir, _ := filepath.Split(path); dir == "" {
		return exec.LookPath(path)
	}

	// otherwise we should just return the absolute path (resolve it)
	return filepath.Abs(path)
}

// windowsExecutableExts are the extensions windows will execute.
var windowsExecutableExts = []string{".exe", ".bat", ".cmd", ".com"}

// IsExecutable reports whether path is a regular file that can be
// executed. On windows this is decided by the file extension, everywhere
// else by the permission bits.
func IsExecutable(path string) (bool, error) {
	inf, err := os.Stat(path)
	if err != nil {
		return false, err
	}

	if !inf.Mode().IsRegular() {
		return false, nil
	}

	if runtime.GOOS == "windows" {
		ext := strings.ToLower(filepath.Ext(path))
		for _, e := range windowsExecutableExts {
			if ext == e {
				return true, nil
			}
		}
		return false, nil
	}

	return inf.Mode().Perm()&0o111 != 0, nil
}
