//go:build !windows

// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"context"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/creack/pty"
)

// RunInteractive executes the command attached to a pseudo-terminal so
// long-running children (mkdocs serve) keep their colorized, interactive
// output. Falls back to Run when a pty cannot be allocated.
func RunInteractive(ctx context.Context, c Command) *Result {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	if c.Dir != "" {
		cmd.Dir = c.Dir
	}
	if len(c.Env) > 0 {
		cmd.Env = append(os.Environ(), c.Env...)
	}

	ptmx, err := pty.Start(cmd)
	if err != nil {
		log.Debug("pty unavailable, falling back to plain exec", "err", err)
		return Run(ctx, c)
	}
	defer func() { _ = ptmx.Close() }()

	// Track terminal resizes for the child.
	winch := make(chan os.Signal, 1)
	signal.Notify(winch, syscall.SIGWINCH)
	defer signal.Stop(winch)
	go func() {
		for range winch {
			_ = pty.InheritSize(os.Stdin, ptmx)
		}
	}()
	winch <- syscall.SIGWINCH // initial size

	go func() { _, _ = io.Copy(ptmx, os.Stdin) }()

	out := c.Stdout
	if out == nil {
		out = os.Stdout
	}
	_, _ = io.Copy(out, ptmx)

	return wait(cmd.Wait(), &Result{})
}
