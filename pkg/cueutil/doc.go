// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared helpers for CUE schema validation and
// error formatting. Configuration files are validated against an embedded
// CUE schema before use; this package turns CUE's error values into
// user-facing messages with JSON-path locations.
package cueutil
