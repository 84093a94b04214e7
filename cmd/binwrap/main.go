// Copyright 2025 Outreach Corporation. All Rights Reserved.

// Description: This file is the entrypoint for the binwrap CLI.

// Package main implements the binwrap CLI, which installs and runs
// binaries described by a binwrap.yaml manifest.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/fatih/color"
)

// Version is set via ldflags at build time.
var Version = "v0.0.0-dev"

func main() {
	exitCode := 0
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "stacktrace from panic: %s\n%s\n", r, string(debug.Stack()))

			// Go sets panic exit codes to 2
			exitCode = 2
		}
		os.Exit(exitCode)
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	registerShutdownHandler(cancel)

	if err := newApp(os.Stdout, os.Stderr).Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, color.New(color.FgRed).Sprintf("Error: %v", err))
		exitCode = exitCodeFor(err)
	}
}

// registerShutdownHandler registers a signal notifier that translates various term
// signals into context cancel
func registerShutdownHandler(cancel context.CancelFunc) {
	// handle ^C gracefully
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		signal.Reset()
		cancel()
	}()
}
