// SPDX-License-Identifier: MPL-2.0

package project

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

// EDEMarkerFile is the marker for ede projects. The file is Emacs Lisp and
// may contain arbitrary expressions, which is why the ede project type is
// classified unsafe and gated behind the trust store.
const EDEMarkerFile = "Project.ede"

// Declaration extraction from Project.ede. The file is code, but the loader
// never evaluates it: it scrapes the declarative fields it understands and
// ignores the rest. Quoted-list fields follow the :keyword '("a" "b") shape.
var (
	edeNameRe     = regexp.MustCompile(`:name\s+"([^"]*)"`)
	edeIncludeRe  = regexp.MustCompile(`:include-path\s+'\(([^)]*)\)`)
	edeSysIncRe   = regexp.MustCompile(`:system-include-path\s+'\(([^)]*)\)`)
	edeSppEntryRe = regexp.MustCompile(`\(\s*"([^"]+)"\s*(?:\.\s*"([^"]*)")?\s*\)`)
	edeSppTableRe = regexp.MustCompile(`:spp-table\s+'\(((?s).*?\))\)`)
	edeStringRe   = regexp.MustCompile(`"([^"]*)"`)
)

// LoadEDE materializes a root-relative-include project from a Project.ede
// marker at root. Callers are responsible for the trust check; this function
// assumes the gate has already passed.
func LoadEDE(root string) (Project, error) {
	markerPath := filepath.Join(root, EDEMarkerFile)
	data, err := os.ReadFile(markerPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", markerPath, err)
	}

	text := string(data)

	name := filepath.Base(filepath.Clean(root))
	if m := edeNameRe.FindStringSubmatch(text); m != nil && m[1] != "" {
		name = m[1]
	}

	p := NewCppRootProject(name, root)

	if m := edeIncludeRe.FindStringSubmatch(text); m != nil {
		for _, s := range edeStringRe.FindAllStringSubmatch(m[1], -1) {
			p.IncludePaths = append(p.IncludePaths, rootRelative(s[1]))
		}
	}
	if m := edeSysIncRe.FindStringSubmatch(text); m != nil {
		for _, s := range edeStringRe.FindAllStringSubmatch(m[1], -1) {
			p.SystemIncludePaths = append(p.SystemIncludePaths, s[1])
		}
	}
	if m := edeSppTableRe.FindStringSubmatch(text); m != nil {
		for _, entry := range edeSppEntryRe.FindAllStringSubmatch(m[1], -1) {
			p.Macros = append(p.Macros, Macro{Name: entry[1], Value: entry[2]})
		}
	}

	return p, nil
}

// rootRelative normalizes a declared include path to start with a separator
// so <root> + path is always well-formed.
func rootRelative(path string) string {
	if path == "" {
		return "/"
	}
	if path[0] == '/' {
		return path
	}
	return "/" + path
}
