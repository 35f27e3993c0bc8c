// SPDX-License-Identifier: MPL-2.0

// Package platform centralizes operating-system specific knowledge such as
// GOOS name constants so the rest of the codebase never compares against raw
// string literals.
package platform
