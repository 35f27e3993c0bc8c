// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"foundry-cli/pkg/types"

	"github.com/charmbracelet/log"
)

// Result is the outcome of an external tool invocation.
type Result struct {
	// ExitCode is the process exit status (0 on success).
	ExitCode types.ExitCode
	// Output is captured stdout (Capture only).
	Output string
	// ErrOutput is captured stderr (Capture only).
	ErrOutput string
	// Error is set only for infrastructure failures (binary missing,
	// process could not start), never for ordinary non-zero exits.
	Error error
}

// Success reports whether the invocation ran and exited zero.
func (r *Result) Success() bool {
	return r.Error == nil && r.ExitCode.IsSuccess()
}

// Command describes a single external tool invocation.
type Command struct {
	// Name is the binary name or an explicit path.
	Name string
	// Args are the command arguments.
	Args []string
	// Dir is the working directory ("" means inherit).
	Dir string
	// Env appends to the inherited environment.
	Env []string
	// Stdin, Stdout, Stderr wire process I/O for Run. Nil values default
	// to the foundry process's own streams.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// ErrToolNotFound is the sentinel error wrapped by ToolNotFoundError.
var ErrToolNotFound = errors.New("tool not found")

// ToolNotFoundError is returned when a required external binary is not on
// PATH (and no explicit path was configured).
type ToolNotFoundError struct {
	Tool string
}

// Error implements the error interface.
func (e *ToolNotFoundError) Error() string {
	return fmt.Sprintf("required tool %q not found in PATH", e.Tool)
}

// Unwrap returns ErrToolNotFound for errors.Is.
func (e *ToolNotFoundError) Unwrap() error { return ErrToolNotFound }

// Look resolves a tool to an executable path. An explicit override (from
// tools config) wins; otherwise PATH is searched.
func Look(tool, override string) (string, error) {
	if override != "" {
		if _, err := os.Stat(override); err != nil {
			return "", fmt.Errorf("configured path for %s: %w", tool, err)
		}
		return override, nil
	}

	path, err := exec.LookPath(tool)
	if err != nil {
		return "", &ToolNotFoundError{Tool: tool}
	}
	return path, nil
}

// Run executes the command, streaming output to the configured writers.
func Run(ctx context.Context, c Command) *Result {
	cmd := build(ctx, c)

	cmd.Stdin = c.Stdin
	if cmd.Stdin == nil {
		cmd.Stdin = os.Stdin
	}
	cmd.Stdout = c.Stdout
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	cmd.Stderr = c.Stderr
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	return wait(cmd.Run(), &Result{})
}

// Capture executes the command and buffers its stdout/stderr.
func Capture(ctx context.Context, c Command) *Result {
	cmd := build(ctx, c)

	var stdout, stderr bytes.Buffer
	cmd.Stdin = c.Stdin
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	result := &Result{}
	wait(cmd.Run(), result)
	result.Output = stdout.String()
	result.ErrOutput = stderr.String()
	return result
}

func build(ctx context.Context, c Command) *exec.Cmd {
	log.Debug("exec", "name", c.Name, "args", c.Args, "dir", c.Dir)

	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	if c.Dir != "" {
		cmd.Dir = c.Dir
	}
	if len(c.Env) > 0 {
		cmd.Env = append(os.Environ(), c.Env...)
	}
	return cmd
}

// wait translates exec errors into the Result convention: non-zero exits are
// recorded as exit codes, anything else is an infrastructure error.
func wait(err error, result *Result) *Result {
	if err == nil {
		return result
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		result.ExitCode = types.ExitCode(exitErr.ExitCode())
		return result
	}

	result.ExitCode = 1
	result.Error = fmt.Errorf("failed to execute command: %w", err)
	return result
}
