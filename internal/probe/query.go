// SPDX-License-Identifier: MPL-2.0

// Package probe interrogates the host C/C++ toolchain: it spawns the
// compiler with fixed flag sets and scrapes version, target, configure
// options, default include search paths, and predefined macros out of
// the combined output.
//
// All scraping is heuristic text matching over an unstable external
// format. Unmatched lines are skipped, never fatal; a nonzero compiler
// exit is a reportable value, not an error. The only hard failure is a
// process that could not be launched at all.
package probe

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ErrLaunch is the sentinel error wrapped by LaunchError.
var ErrLaunch = errors.New("probe executable could not be launched")

type (
	// LaunchError reports that the probe subprocess never started, even
	// after the home-directory retry. Distinct from a nonzero exit,
	// which Query reports as a Result.
	LaunchError struct {
		Executable string
		Err        error
	}

	// Result is one probe invocation's outcome. ExitCode zero means
	// success; nonzero is a valid, reportable outcome whose Output may
	// still carry usable text (compilers print diagnostics and then
	// fail on the empty input).
	Result struct {
		Output   string
		ExitCode int
	}
)

// Error implements the error interface.
func (e *LaunchError) Error() string {
	return fmt.Sprintf("probe executable %q could not be launched: %v", e.Executable, e.Err)
}

// Unwrap returns ErrLaunch so callers can use errors.Is for programmatic detection.
func (e *LaunchError) Unwrap() error { return ErrLaunch }

// Success reports whether the probe exited zero.
func (r *Result) Success() bool { return r.ExitCode == 0 }

// runCommand executes the probe subprocess. Tests substitute this to
// supply canned compiler output without spawning anything.
var runCommand = func(ctx context.Context, dir, exe string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, exe, args...)
	cmd.Dir = dir
	cmd.Env = neutralLocaleEnv(os.Environ())
	return cmd.CombinedOutput()
}

// Query runs the executable with the given arguments and captures
// combined output. The child runs with a neutral locale so message text
// is parseable regardless of the user's locale. A launch failure in the
// current working directory is retried once from the user's home
// directory — probes fail in directories that have been deleted or are
// unreadable — before being reported as a LaunchError.
func Query(ctx context.Context, exe string, args ...string) (*Result, error) {
	res, err := runOnce(ctx, "", exe, args...)
	if err == nil {
		return res, nil
	}

	if home, herr := os.UserHomeDir(); herr == nil {
		if res, rerr := runOnce(ctx, home, exe, args...); rerr == nil {
			return res, nil
		}
	}
	return nil, &LaunchError{Executable: exe, Err: err}
}

func runOnce(ctx context.Context, dir, exe string, args ...string) (*Result, error) {
	out, err := runCommand(ctx, dir, exe, args...)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &Result{Output: string(out), ExitCode: exitErr.ExitCode()}, nil
		}
		return nil, err
	}
	return &Result{Output: string(out)}, nil
}

// neutralLocaleEnv strips the caller's locale settings and pins LC_ALL=C
// for the child only; the parent environment is never touched.
func neutralLocaleEnv(env []string) []string {
	out := make([]string, 0, len(env)+1)
	for _, kv := range env {
		if strings.HasPrefix(kv, "LC_ALL=") ||
			strings.HasPrefix(kv, "LC_MESSAGES=") ||
			strings.HasPrefix(kv, "LANG=") {
			continue
		}
		out = append(out, kv)
	}
	return append(out, "LC_ALL=C")
}
