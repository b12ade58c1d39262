// SPDX-License-Identifier: MPL-2.0

package project

type (
	// CppRootProject declares its include layout relative to the project
	// root: each include path starts at the root, system include paths are
	// absolute, and macros apply project-wide. Produced by the ede loader
	// (Project.ede) and the generic YAML loader.
	CppRootProject struct {
		base

		// IncludePaths are root-relative directories, each beginning with
		// a separator ("/include" means <root>/include).
		IncludePaths []string
		// SystemIncludePaths are absolute directories outside the tree.
		SystemIncludePaths []string
		// Macros are project-wide preprocessor definitions, in declaration order.
		Macros []Macro
		// Targets carry per-target configuration variables.
		Targets []Target
	}

	// KernelProject is an embedded-kernel-style source tree: parsing any
	// file requires the generated kernel config header, the declared
	// include directories, and the kernel platform macro.
	KernelProject struct {
		base

		// IncludePaths are absolute include directories inside the tree.
		IncludePaths []string
		// BuildRoot mirrors the source tree for out-of-tree build output
		// (O= builds). Empty when building in-tree.
		BuildRoot string
		// Version is the kernel version scraped from the top Makefile.
		Version string
	}

	// MakeProject is a generic build-description tree (Makefile or
	// Makefile.am): flag information lives in build variables whose values
	// are recovered verbatim and filtered by the resolver.
	MakeProject struct {
		base

		// Variables maps top-level build variable names to raw values.
		Variables map[string]string
		// Targets carry per-target variable tables.
		Targets []Target
	}
)

// NewCppRootProject constructs a root-relative-include project.
func NewCppRootProject(name, root string) *CppRootProject {
	return &CppRootProject{base: base{name: name, root: root}}
}

// NewKernelProject constructs an embedded-kernel-style project.
func NewKernelProject(name, root string) *KernelProject {
	return &KernelProject{base: base{name: name, root: root}}
}

// NewMakeProject constructs a generic build-description project.
func NewMakeProject(name, root string) *MakeProject {
	return &MakeProject{base: base{name: name, root: root}}
}

// TargetNamed returns the target with the given name, or nil.
func (p *MakeProject) TargetNamed(name string) *Target {
	for i := range p.Targets {
		if p.Targets[i].Name == name {
			return &p.Targets[i]
		}
	}
	return nil
}

// TargetNamed returns the target with the given name, or nil.
func (p *CppRootProject) TargetNamed(name string) *Target {
	for i := range p.Targets {
		if p.Targets[i].Name == name {
			return &p.Targets[i]
		}
	}
	return nil
}
