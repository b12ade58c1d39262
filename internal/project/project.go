// SPDX-License-Identifier: MPL-2.0

// Package project defines the concrete project-object variants produced by
// project-type loaders, and the process-wide list of loaded projects.
//
// A project object is deliberately small: a root directory plus whatever
// declarations its marker file provides (include paths, macro definitions,
// build variables, sub-targets). Turning those declarations into compiler
// arguments is the flag resolver's job, not the project's.
package project

import "strings"

type (
	// Project is the minimal surface every loaded project variant provides.
	Project interface {
		// Name is the human-readable project name.
		Name() string
		// Root is the absolute project root directory.
		Root() string
	}

	// Macro is a preprocessor definition. An empty Value is a bare flag
	// definition (-DNAME); a non-empty Value expands to -DNAME=VALUE.
	Macro struct {
		Name  string
		Value string
	}

	// Target is a sub-target carrying its own configuration-variable table.
	Target struct {
		// Name identifies the target within its project.
		Name string
		// Vars maps configuration variable names to raw (unsplit) values.
		Vars map[string]string
	}

	base struct {
		name string
		root string
	}
)

func (b base) Name() string { return b.name }

// Root always ends without a trailing separator; callers append as needed.
func (b base) Root() string { return strings.TrimRight(b.root, "/\\") }
