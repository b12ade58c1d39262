// SPDX-License-Identifier: MPL-2.0

// Package platform provides cross-platform compatibility utilities.
//
// This package centralizes OS name constants and the path-shape checks the
// toolchain probe relies on when filtering compiler output: compilers built
// for a foreign environment (e.g. a cross MinGW gcc on Linux) report include
// directories in that environment's path syntax, and those entries must be
// rejected rather than handed to the parser.
package platform
