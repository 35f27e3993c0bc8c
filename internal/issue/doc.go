// SPDX-License-Identifier: MPL-2.0

// Package issue provides user-facing guidance for well-known failure classes.
//
// Each Issue pairs a stable identifier with a markdown help card that is
// rendered with glamour when the failure occurs, plus optional documentation
// links. Infrastructure failures (a missing external tool, an unreadable
// workspace) get an issue card; ordinary validation findings do not.
package issue
