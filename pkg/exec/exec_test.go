// Copyright 2025 Outreach Corporation. All Rights Reserved.

package exec

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"gotest.tools/v3/assert"
)

func getCwd(t *testing.T) string {
	dir, err := os.Getwd()
	assert.NilError(t, err)
	return dir
}

func TestResolveExecutable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("paths below are unix paths")
	}

	tests := []struct {
		name string
		path string
		want string
	}{
		{
			name: "should return abs path",
			path: "/hello/world/tool",
			want: "/hello/world/tool",
		},
		{
			name: "should clean abs path",
			path: "/hello/world/../tool",
			want: "/hello/tool",
		},
		{
			name: "should make abs path",
			path: "./tool",
			want: filepath.Join(getCwd(t), "tool"),
		},
		{
			name: "should make nested abs path",
			path: "./hello/world/tool",
			want: filepath.Join(getCwd(t), "hello", "world", "tool"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveExecutable(tt.path)
			assert.NilError(t, err)
			assert.Equal(t, got, tt.want)
		})
	}
}

func TestResolveExecutableLooksUpPath(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("PATH lookup requires an executable extension on windows")
	}

	dir := t.TempDir()
	assert.NilError(t, os.WriteFile(filepath.Join(dir, "binwrap-test-tool"), []byte("#!/bin/sh\n"), 0o755))
	t.Setenv("PATH", dir)

	got, err := ResolveExecutable("binwrap-test-tool")
	assert.NilError(t, err)
	assert.Equal(t, got, filepath.Join(dir, "binwrap-test-tool"))
}

func TestIsExecutable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("windows decides by extension")
	}

	dir := t.TempDir()
	exe := filepath.Join(dir, "tool")
	assert.NilError(t, os.WriteFile(exe, []byte("x"), 0o755))
	plain := filepath.Join(dir, "data")
	assert.NilError(t, os.WriteFile(plain, []byte("x"), 0o644))

	ok, err := IsExecutable(exe)
	assert.NilError(t, err)
	assert.Assert(t, ok)

	ok, err = IsExecutable(plain)
	assert.NilError(t, err)
	assert.Assert(t, !ok)

	ok, err = IsExecutable(dir)
	assert.NilError(t, err)
	assert.Assert(t, !ok, "directories are not executable")

	_, err = IsExecutable(filepath.Join(dir, "missing"))
	assert.Assert(t, os.IsNotExist(err))
}
