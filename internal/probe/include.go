// SPDX-License-Identifier: MPL-2.0

package probe

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/yyr/cedet/internal/config"
	"github.com/yyr/cedet/pkg/platform"
)

const (
	systemSearchStart = "#include <...> search starts here:"
	quotedSearchStart = `#include "..." search starts here:`
	searchListEnd     = "End of search list."
)

// ParseSearchList extracts the default system include directories from
// verbose preprocessor output. The toolchain brackets its search list
// between fixed marker lines; within the bracket, entries carry exactly
// one leading space. Anything else (deeper indentation, "#" framing
// lines, the end marker) terminates or is skipped. Line order is
// preserved — it is the toolchain's search priority.
func ParseSearchList(output string) []string {
	var (
		paths []string
		in    bool
	)
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSuffix(line, "\r")

		switch {
		case line == systemSearchStart:
			in = true
		case !in:
			// Skip everything before the system bracket, including the
			// quoted-form list, which duplicates into the system list.
		case line == searchListEnd || strings.HasPrefix(line, "#"):
			return paths
		case strings.HasPrefix(line, " ") && !strings.HasPrefix(line, "  "):
			paths = append(paths, strings.TrimSpace(line))
		}
	}
	return paths
}

// GetIncludePaths probes exe for the default include search list of the
// given language. Entries that are not native absolute paths for this
// platform, or that do not exist as directories, are dropped; the
// surviving order is the probe's. Output from a nonzero exit is still
// parsed — compilers print the search list before failing on the empty
// input.
func GetIncludePaths(ctx context.Context, exe string, lang config.Language) ([]string, error) {
	res, err := Query(ctx, exe, "-v", "-E", "-x", string(lang), os.DevNull)
	if err != nil {
		return nil, err
	}
	return filterIncludeDirs(ParseSearchList(res.Output)), nil
}

func filterIncludeDirs(paths []string) []string {
	var out []string
	for _, p := range paths {
		if !platform.NativePath(p) {
			continue
		}
		if info, err := os.Stat(p); err != nil || !info.IsDir() {
			continue
		}
		out = append(out, filepath.Clean(p))
	}
	return out
}

// GuessIncludes derives a best-guess include tree from the executable's
// install root when the probe yielded nothing: <root>/include, plus the
// versioned C++ tree and its target subdirectory when version and target
// are known. Never fails — if nothing exists, it contributes no paths.
func GuessIncludes(exe, version, target string) []string {
	path, err := exec.LookPath(exe)
	if err != nil {
		return nil
	}
	root := filepath.Dir(filepath.Dir(path))

	candidates := []string{filepath.Join(root, "include")}
	if version != "" {
		cxx := filepath.Join(root, "include", "c++", version)
		candidates = append(candidates, cxx)
		if target != "" {
			candidates = append(candidates, filepath.Join(cxx, target))
		}
	}

	var out []string
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && info.IsDir() {
			out = append(out, c)
		}
	}
	return out
}
