// Copyright 2025 Outreach Corporation. All Rights Reserved.

// Description: This file contains the commands of the binwrap CLI.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/getoutreach/binwrap/pkg/archive"
	"github.com/getoutreach/binwrap/pkg/binwrap"
	"github.com/getoutreach/binwrap/pkg/exec"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
)

// Exit codes for the failure classes a caller may want to tell apart.
const (
	exitCodeError       = 1
	exitCodeUnsupported = 3
	exitCodeCorrupt     = 4
	exitCodeFilesystem  = 5
)

// exitCodeFor maps err to the process exit code. A failing wrapped binary
// passes its own exit code through.
func exitCodeFor(err error) int {
	var exitErr *exec.ExitError
	switch {
	case errors.As(err, &exitErr):
		return exitErr.ExitCode
	case errors.Is(err, archive.ErrUnsupportedFormat):
		return exitCodeUnsupported
	case errors.Is(err, archive.ErrArchiveCorrupt):
		return exitCodeCorrupt
	case errors.Is(err, archive.ErrFilesystem):
		return exitCodeFilesystem
	default:
		return exitCodeError
	}
}

// newApp returns the root command, writing command output to out and
// logs to errOut.
func newApp(out, errOut io.Writer) *cli.Command {
	log := logrus.New()
	log.Out = errOut

	return &cli.Command{
		Name:      "binwrap",
		Usage:     "Install and run platform specific binaries",
		Version:   Version,
		Writer:    out,
		ErrWriter: errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the binary manifest",
				Value:   binwrap.DefaultConfigFile,
				Sources: cli.EnvVars("BINWRAP_CONFIG"),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
			&cli.BoolFlag{
				Name:  "no-progress",
				Usage: "Disable progress output",
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			if c.Bool("debug") {
				log.SetLevel(logrus.DebugLevel)
			}
			return ctx, nil
		},
		Commands: []*cli.Command{
			newInstallCommand(log),
			newRunCommand(log),
			newPathCommand(log),
			newExtractCommand(),
		},
	}
}

// newWrapper creates a Wrapper from the manifest named by the --config flag.
func newWrapper(c *cli.Command, log logrus.FieldLogger) (*binwrap.Wrapper, error) {
	conf, err := binwrap.LoadConfig(c.String("config"))
	if err != nil {
		return nil, err
	}

	opts := append(conf.Options(),
		binwrap.WithLogger(log),
		binwrap.WithNoProgressBar(c.Bool("no-progress")),
	)
	return binwrap.New(opts...)
}

// newInstallCommand returns the install command.
func newInstallCommand(log logrus.FieldLogger) *cli.Command {
	return &cli.Command{
		Name:  "install",
		Usage: "Download the binary unless it is already installed",
		Action: func(ctx context.Context, c *cli.Command) error {
			w, err := newWrapper(c, log)
			if err != nil {
				return err
			}

			if err := w.EnsureExist(ctx); err != nil {
				return err
			}

			log.WithField("path", w.Path()).Info("Binary is installed")
			return nil
		},
	}
}

// newRunCommand returns the run command.
func newRunCommand(log logrus.FieldLogger) *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "Install the binary if needed and run it",
		ArgsUsage: "[-- args...]",
		Action: func(ctx context.Context, c *cli.Command) error {
			w, err := newWrapper(c, log)
			if err != nil {
				return err
			}

			out, err := w.Run(ctx, c.Args().Slice()...)
			if _, werr := c.Root().Writer.Write(out); werr != nil && err == nil {
				err = werr
			}
			return err
		},
	}
}

// newPathCommand returns the path command.
func newPathCommand(log logrus.FieldLogger) *cli.Command {
	return &cli.Command{
		Name:  "path",
		Usage: "Print the path the binary is installed at",
		Action: func(_ context.Context, c *cli.Command) error {
			w, err := newWrapper(c, log)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(c.Root().Writer, w.Path())
			return err
		},
	}
}

// newExtractCommand returns the extract command.
func newExtractCommand() *cli.Command {
	return &cli.Command{
		Name:      "extract",
		Usage:     "Extract an archive into a directory",
		ArgsUsage: "<archive> <destination>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "strip",
				Usage: "Number of leading path components to remove from every entry",
			},
			&cli.StringFlag{
				Name:  "prefix",
				Usage: "Only extract entries whose base name starts with this prefix",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.NArg() != 2 {
				return fmt.Errorf("expected <archive> <destination>, got %d argument(s)", c.NArg())
			}

			return archive.Extract(ctx, c.Args().Get(0), c.Args().Get(1),
				archive.WithPrefix(c.String("prefix")),
				archive.WithStripComponents(c.Int("strip")),
			)
		},
	}
}
