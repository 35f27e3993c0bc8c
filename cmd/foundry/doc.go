// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for foundry.
//
// This package implements the Cobra command hierarchy for the foundry CLI,
// including the root command and subcommands for docs validation, terraform
// example validation, artifact cleanup, workspace synchronization, and
// shared asset extraction.
package cmd
