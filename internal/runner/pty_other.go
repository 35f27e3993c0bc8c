//go:build windows

// SPDX-License-Identifier: MPL-2.0

package runner

import "context"

// RunInteractive has no pty support on Windows; it degrades to Run.
func RunInteractive(ctx context.Context, c Command) *Result {
	return Run(ctx, c)
}
