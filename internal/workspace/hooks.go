// SPDX-License-Identifier: MPL-2.0

package workspace

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// ValidateHooks parses every hook without running it, so manifest problems
// surface before any repository is touched.
func ValidateHooks(hooks []string) error {
	parser := syntax.NewParser()
	for i, hook := range hooks {
		if _, err := parser.Parse(strings.NewReader(hook), fmt.Sprintf("post_sync[%d]", i)); err != nil {
			return fmt.Errorf("hook %d does not parse: %w", i, err)
		}
	}
	return nil
}

// RunHooks executes the post_sync hooks in the workspace root with the
// embedded shell interpreter. Each hook runs even when an earlier one
// failed; all failures are returned.
func RunHooks(ctx context.Context, root string, hooks []string, stdout, stderr io.Writer) []error {
	parser := syntax.NewParser()

	var failures []error
	for i, hook := range hooks {
		prog, err := parser.Parse(strings.NewReader(hook), fmt.Sprintf("post_sync[%d]", i))
		if err != nil {
			failures = append(failures, fmt.Errorf("hook %d does not parse: %w", i, err))
			continue
		}

		shell, err := interp.New(
			interp.Dir(root),
			interp.Env(expand.ListEnviron(os.Environ()...)),
			interp.StdIO(nil, stdout, stderr),
		)
		if err != nil {
			failures = append(failures, fmt.Errorf("hook %d: create interpreter: %w", i, err))
			continue
		}

		if err := shell.Run(ctx, prog); err != nil {
			var exitStatus interp.ExitStatus
			if errors.As(err, &exitStatus) {
				failures = append(failures, fmt.Errorf("hook %d (%s) exited with status %d", i, hook, int(exitStatus)))
				continue
			}
			failures = append(failures, fmt.Errorf("hook %d (%s): %w", i, hook, err))
		}
	}
	return failures
}
