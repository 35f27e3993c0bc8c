// SPDX-License-Identifier: MPL-2.0

// Package config loads and validates the foundry configuration.
//
// Configuration lives in a CUE file (config.cue) under the platform config
// directory and is validated against an embedded CUE schema before being
// merged into Viper, where FOUNDRY_* environment variables can override
// individual values. A missing config file is not an error; defaults apply.
package config
