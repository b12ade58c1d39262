// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper.
//
// Configuration is read from a CUE file in the platform config directory
// (or the current directory) and validated against an embedded schema.
// The package also owns the trust store: the on-disk list of directories
// the user has approved for project types whose marker files can execute
// code when loaded.
package config
