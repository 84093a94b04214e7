// Copyright 2025 Outreach Corporation. All Rights Reserved.

// Description: This file defines the manifest describing a binary and
// where to download it from.

package binwrap

import (
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the manifest read by the CLI when none is given.
const DefaultConfigFile = "binwrap.yaml"

// Config is a manifest for a single binary, e.g.
//
//	name: shfmt
//	destination: ~/.local/share/shfmt
//	version: ">= 3.7.0"
//	sources:
//	  - url: https://example.com/shfmt_linux_amd64
//	    os: linux
//	    arch: x64
//	  - url: https://example.com/shfmt_darwin_arm64.tar.gz
//	    os: darwin
//	    arch: arm64
//	    prefix: shfmt
//	    strip: 1
type Config struct {
	// Name is the file name of the binary
	Name string `yaml:"name"`

	// Destination is the directory the binary is installed into,
	// ~ is expanded.
	Destination string `yaml:"destination,omitempty"`

	// Version is an optional semver constraint the binary must satisfy
	Version string `yaml:"version,omitempty"`

	// VersionArgs are the arguments that make the binary print its version
	VersionArgs []string `yaml:"versionArgs,omitempty"`

	// Sources are the download locations, one per platform
	Sources []SourceConfig `yaml:"sources"`
}

// SourceConfig is a single download location in a Config.
type SourceConfig struct {
	URL  string `yaml:"url"`
	OS   string `yaml:"os"`
	Arch string `yaml:"arch"`

	// Archive marks the download as an archive. It is implied when
	// Prefix or Strip are set.
	Archive bool   `yaml:"archive,omitempty"`
	Prefix  string `yaml:"prefix,omitempty"`
	Strip   int    `yaml:"strip,omitempty"`

	// SHA256 is the optional hex encoded digest of the download
	SHA256 string `yaml:"sha256,omitempty"`
}

// LoadConfig reads the manifest at path. A leading ~ in path is expanded.
func LoadConfig(path string) (*Config, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to expand %q", path)
	}
	path = expanded

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open config")
	}
	defer f.Close()

	var conf Config
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&conf); err != nil {
		return nil, errors.Wrapf(err, "failed to parse config %q", path)
	}

	if err := conf.validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config %q", path)
	}

	return &conf, nil
}

// validate checks the fields that New cannot check on its own.
func (c *Config) validate() error {
	if c.Name == "" {
		return errors.New("name is required")
	}

	for i, s := range c.Sources {
		if s.URL == "" {
			return errors.Errorf("sources[%d]: url is required", i)
		}
		if s.OS == "" || s.Arch == "" {
			return errors.Errorf("sources[%d]: os and arch are required", i)
		}
		if s.Strip < 0 {
			return errors.Errorf("sources[%d]: strip must not be negative", i)
		}
	}

	return nil
}

// Options returns the options that configure a Wrapper as described by c.
func (c *Config) Options() []Option {
	opts := []Option{WithBinary(c.Name)}

	if c.Destination != "" {
		opts = append(opts, WithDestination(c.Destination))
	}
	if c.Version != "" {
		opts = append(opts, WithVersionConstraint(c.Version))
	}
	if len(c.VersionArgs) > 0 {
		opts = append(opts, WithVersionArgs(c.VersionArgs...))
	}

	for _, s := range c.Sources {
		if s.Archive || s.Prefix != "" || s.Strip > 0 {
			opts = append(opts, WithCompressedSource(s.URL, s.OS, s.Arch, s.Prefix, s.Strip))
		} else {
			opts = append(opts, WithSource(s.URL, s.OS, s.Arch))
		}

		if s.SHA256 != "" {
			opts = append(opts, WithChecksum(s.SHA256))
		}
	}

	return opts
}
