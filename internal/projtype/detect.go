// SPDX-License-Identifier: MPL-2.0

package projtype

import (
	"os"
	"path/filepath"
	"strings"
)

// matchesDir reports whether the descriptor claims dir. The directory
// matcher is consulted first when present and installed; a matcher hit
// skips the marker probe entirely. A custom Detect hook replaces the
// marker probe for types that need more than one file name.
func (d *Descriptor) matchesDir(dir string) bool {
	if d.RootDirMatcher != nil && d.RootDirMatcher.Installed() {
		if d.RootDirMatcher.Matches(dir) {
			return true
		}
	}
	if d.Detect != nil {
		return d.Detect(dir)
	}
	if d.MarkerFile == "" {
		return false
	}
	info, err := os.Stat(filepath.Join(dir, filepath.FromSlash(d.MarkerFile)))
	return err == nil && !info.IsDir()
}

// Detect returns the first registered descriptor claiming dir, or nil if
// no type matches. A trailing path separator on dir is ignored.
func (r *Registry) Detect(dir string) *Descriptor {
	dir = normalizeDir(dir)
	for _, d := range r.All() {
		if d.matchesDir(dir) {
			return d
		}
	}
	return nil
}

// RootForFile walks upward from file's directory and returns the project
// root and the descriptor that claims it. For RootOnly types the nearest
// claiming ancestor is the root; otherwise the walk continues and the
// topmost claiming ancestor wins, so nested markers resolve to the
// outermost project. Returns ("", nil) when no ancestor matches.
func (r *Registry) RootForFile(file string) (string, *Descriptor) {
	dir := filepath.Dir(filepath.Clean(file))

	// A descriptor with its own root finder answers directly.
	for _, d := range r.All() {
		if d.RootFinder == nil {
			continue
		}
		if root, ok := d.RootFinder(file); ok {
			return root, d
		}
	}

	var (
		root  string
		found *Descriptor
	)
	for {
		if d := r.Detect(dir); d != nil {
			root, found = dir, d
			if d.RootOnly {
				break
			}
		} else if found != nil {
			// The contiguous run of claiming ancestors ended.
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return root, found
}

func normalizeDir(dir string) string {
	trimmed := strings.TrimRight(dir, "/\\")
	if trimmed == "" {
		return dir
	}
	return trimmed
}
