// Copyright 2025 Outreach Corporation. All Rights Reserved.

// Description: Wraps os/exec commands with a mockable executor

package exec

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sync"
	"testing"
)

// ExitError represents a command that ran but exited with a non-zero
// status. This is used to wrap exec.ExitError in a mockable way.
type ExitError struct {
	// ExitCode is the exit code from the underlying process.
	ExitCode int
	// Stderr holds a subset of the standard error output from the
	// Command.Output method if standard error was not otherwise being
	// collected.
	Stderr []byte
}

// Error implements the err interface.
func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.ExitCode)
}

// wrapOsError wraps the given error in ExitError if it is an exec.ExitError;
// else, it returns the given error unchanged.
func wrapOsError(err error) error {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{
			ExitCode: exitErr.ExitCode(),
			Stderr:   exitErr.Stderr,
		}
	}
	return err
}

// CommandExecutor is an interface responsible for executing commands.
type CommandExecutor interface {
	// Run starts the specified command and waits for it to complete.
	Run(cmd *exec.Cmd) error
	// Output runs the command and returns its standard output.
	Output(cmd *exec.Cmd) ([]byte, error)
	// CombinedOutput runs the command and returns its combined standard output
	// and standard error.
	CombinedOutput(cmd *exec.Cmd) ([]byte, error)
}

// OsExecutor is an executor that delegates to os/exec.
type OsExecutor struct{}

// Run starts the specified command and waits for it to complete. A
// command that starts but exits non-zero returns an *ExitError.
func (OsExecutor) Run(cmd *exec.Cmd) error {
	return wrapOsError(cmd.Run())
}

// Output runs the command and returns its standard output.
// If c.Stderr was nil, Output populates ExitError.Stderr.
func (OsExecutor) Output(cmd *exec.Cmd) ([]byte, error) {
	output, err := cmd.Output()
	return output, wrapOsError(err)
}

// CombinedOutput runs the command and returns its combined standard
// output and standard error.
func (OsExecutor) CombinedOutput(cmd *exec.Cmd) ([]byte, error) {
	output, err := cmd.CombinedOutput()
	return output, wrapOsError(err)
}

// MockExecutor is an executor that will return its internal data instead of
// running a command.
type MockExecutor struct {
	// Stdout is the value to return for stdout from fake execution.
	Stdout []byte
	// Stderr is the value to return for stderr from fake execution.
	Stderr []byte
	// Error, if set, is returned from every execution. Like with the exec
	// package, an error may be returned alongside output.
	Error error

	mu sync.Mutex
	// cmds are the commands passed in for execution, in order.
	cmds []*exec.Cmd
}

// record notes that cmd was executed.
func (m *MockExecutor) record(cmd *exec.Cmd) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cmds = append(m.cmds, cmd)
}

// Cmd returns the last command passed in for execution, or nil.
func (m *MockExecutor) Cmd() *exec.Cmd {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.cmds) == 0 {
		return nil
	}
	return m.cmds[len(m.cmds)-1]
}

// Calls returns the number of executions.
func (m *MockExecutor) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.cmds)
}

// Run writes Stdout and Stderr to the respective writers on cmd and
// returns the executor's Error field.
func (m *MockExecutor) Run(cmd *exec.Cmd) error {
	m.record(cmd)

	if cmd.Stdout != nil {
		if _, err := cmd.Stdout.Write(m.Stdout); err != nil {
			return err
		}
	}
	if cmd.Stderr != nil {
		if _, err := cmd.Stderr.Write(m.Stderr); err != nil {
			return err
		}
	}

	return m.Error
}

// Output returns the executor's Stdout field and Error field. Stderr is
// written to cmd.Stderr when it is set.
func (m *MockExecutor) Output(cmd *exec.Cmd) ([]byte, error) {
	if cmd.Stdout != nil {
		return nil, errors.New("exec: Stdout already set")
	}
	m.record(cmd)

	if cmd.Stderr != nil {
		if _, err := cmd.Stderr.Write(m.Stderr); err != nil {
			return nil, err
		}
	}

	return append([]byte{}, m.Stdout...), m.Error
}

// CombinedOutput returns the executor's Stdout followed by its Stderr, and
// the Error field.
func (m *MockExecutor) CombinedOutput(cmd *exec.Cmd) ([]byte, error) {
	if cmd.Stdout != nil {
		return nil, errors.New("exec: Stdout already set")
	}
	if cmd.Stderr != nil {
		return nil, errors.New("exec: Stderr already set")
	}
	m.record(cmd)

	return bytes.Join([][]byte{m.Stdout, m.Stderr}, nil), m.Error
}

// Ensure MockExecutor implements CommandExecutor.
var _ CommandExecutor = &MockExecutor{}

// defaultExecutor is the executor used when running commands. Note that
// this line also ensures OsExecutor implements CommandExecutor.
var defaultExecutor CommandExecutor = OsExecutor{}

// executorMu guards getExecutor.
var executorMu sync.Mutex

// getExecutor looks up the executor for a new command.
var getExecutor = func() CommandExecutor {
	return defaultExecutor
}

// SetExecutors sets the executor(s) for a single test run. The executors
// are handed out in the given order as CommandContext is called, the last
// one is reused once the others are exhausted. The prior executor is
// restored in a Cleanup job on t.
func SetExecutors(t testing.TB, first CommandExecutor, rest ...CommandExecutor) {
	all := append([]CommandExecutor{first}, rest...)
	index := 0

	executorMu.Lock()
	prev := getExecutor
	getExecutor = func() CommandExecutor {
		next := all[index]
		if index < len(all)-1 {
			index++
		}
		return next
	}
	executorMu.Unlock()

	t.Cleanup(func() {
		executorMu.Lock()
		defer executorMu.Unlock()
		getExecutor = prev
	})
}

// Command is a wrapper around exec.Cmd that incorporates an executor to run it.
// Clients should create commands to execute using CommandContext, then run with
// the desired Command method.
type Command struct {
	cmd      *exec.Cmd
	executor CommandExecutor
}

// CommandContext returns a Command that executes the named program with
// the given arguments, killed when ctx is done, using the current executor.
func CommandContext(ctx context.Context, name string, args ...string) *Command {
	executorMu.Lock()
	executor := getExecutor()
	executorMu.Unlock()

	return &Command{cmd: exec.CommandContext(ctx, name, args...), executor: executor}
}

// Cmd returns the underlying exec.Cmd so its streams, environment or
// working directory can be set before running.
func (c *Command) Cmd() *exec.Cmd {
	return c.cmd
}

// Run starts the command and waits for it to complete.
func (c *Command) Run() error {
	return c.executor.Run(c.cmd)
}

// Output runs the command and returns its standard output.
func (c *Command) Output() ([]byte, error) {
	return c.executor.Output(c.cmd)
}

// CombinedOutput runs the command and returns its combined standard output
// and standard error.
func (c *Command) CombinedOutput() ([]byte, error) {
	return c.executor.CombinedOutput(c.cmd)
}
