// SPDX-License-Identifier: MPL-2.0

// Package projtype holds the registry of known project types and the
// detection logic that maps directories onto them.
//
// A project type is declarative until the moment it loads: a descriptor
// names the marker file and matching rules up front, and only the Load
// hook touches the project's own declarations. Registration order is
// meaningful — detection walks the registry front to back and the first
// descriptor that matches a directory wins.
package projtype

import (
	"github.com/yyr/cedet/internal/dirmatch"
	"github.com/yyr/cedet/internal/project"
)

type (
	// LoaderFunc materializes a project object from its root directory.
	// It runs only after detection matched and the safety gate passed.
	LoaderFunc func(root string) (project.Project, error)

	// DetectFunc overrides marker-file detection for types whose identity
	// cannot be established by a single file name (e.g. a kernel source
	// tree, which shares its marker with every plain-Make project).
	DetectFunc func(dir string) bool

	// Descriptor declares one project type. Descriptors are registered
	// into a Registry and consulted, in order, by Detect.
	Descriptor struct {
		// Name identifies the type in logs, errors, and CLI output.
		Name string
		// MarkerFile is the file whose presence in a directory signals
		// this type. May contain a path separator (e.g. "src/emacs.c").
		MarkerFile string
		// RootOnly reports whether the marker appears only at the project
		// root. Root discovery for RootOnly types stops at the first
		// marker going up; otherwise the topmost marker wins.
		RootOnly bool
		// RootDirMatcher optionally short-circuits marker detection with
		// a cheap directory check. A nil matcher means marker-only.
		RootDirMatcher dirmatch.Matcher
		// Detect optionally replaces marker detection entirely.
		Detect DetectFunc
		// RootFinder optionally computes the project root for a file
		// directly, bypassing the upward marker walk. Returns false when
		// the file is outside any project of this type.
		RootFinder func(file string) (string, bool)
		// Load materializes the project object. Required.
		Load LoaderFunc
		// Safe reports whether loading evaluates nothing beyond plain
		// data. Unsafe types require the project directory to be trusted
		// before Load may run.
		Safe bool
		// NewProjectChoice reports whether interactive project creation
		// may offer this type. Fallback types typically opt out.
		NewProjectChoice bool

		// generic is set by the registry when the descriptor is
		// registered into the generic tier. It is not a caller field.
		generic bool
	}
)

// Generic reports whether the descriptor sits in the registry's generic
// (fallback) tier.
func (d *Descriptor) Generic() bool { return d.generic }
