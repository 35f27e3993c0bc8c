// SPDX-License-Identifier: MPL-2.0

// Package examples validates the terraform examples shipped with a provider's
// documentation. Every *.tf file must survive `terraform fmt -check`, every
// example directory must pass `terraform validate`, and placeholder text left
// over from templates is reported as a warning.
package examples
