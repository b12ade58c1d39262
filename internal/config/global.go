// SPDX-License-Identifier: MPL-2.0

package config

// configDirOverride redirects config directory resolution away from the
// user's home. The --config-dir flag sets it for the whole process; tests
// set it to a temp dir because os.UserHomeDir() does not reliably honor
// HOME on every platform.
var configDirOverride string

// SetConfigDirOverride pins the directory that holds cedet's config file
// and trust store. An empty string restores home-relative resolution.
func SetConfigDirOverride(dir string) {
	configDirOverride = dir
}

// Reset clears the config directory override. Tests register it as a
// cleanup so one test's override never leaks into the next.
func Reset() {
	configDirOverride = ""
}
