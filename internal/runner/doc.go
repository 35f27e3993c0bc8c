// SPDX-License-Identifier: MPL-2.0

// Package runner invokes external tools (mkdocs, terraform, git) and reports
// their outcome as a Result carrying the exit code and captured output.
//
// Validation commands distinguish two failure classes: a tool that runs and
// exits non-zero is a validation result, while a tool that cannot be found or
// started is an infrastructure error surfaced through Result.Error.
package runner
