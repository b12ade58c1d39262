// SPDX-License-Identifier: MPL-2.0

package projtype

import (
	"fmt"
	"path/filepath"

	"github.com/yyr/cedet/internal/config"
	"github.com/yyr/cedet/internal/dirmatch"
	"github.com/yyr/cedet/internal/project"
)

// Seed installs the built-in descriptor set into r. Order within the
// default tier matters: the kernel descriptor precedes plain make, since
// every kernel tree also carries a root Makefile and would otherwise be
// claimed by the weaker type. Seed is idempotent — re-seeding replaces
// each built-in in place.
func Seed(r *Registry) error {
	r.markSeeded()

	defaults := []*Descriptor{
		{
			Name:             "ede",
			MarkerFile:       project.EDEMarkerFile,
			Load:             project.LoadEDE,
			Safe:             false,
			NewProjectChoice: true,
		},
		{
			Name:             "linux",
			MarkerFile:       project.MakeMarkerFile,
			RootOnly:         true,
			Detect:           project.DetectKernelTree,
			Load:             project.LoadLinux,
			Safe:             true,
			NewProjectChoice: false,
		},
		{
			Name:             "automake",
			MarkerFile:       project.AutomakeMarkerFile,
			Load:             project.LoadAutomake,
			Safe:             true,
			NewProjectChoice: true,
		},
		{
			Name:             "make",
			MarkerFile:       project.MakeMarkerFile,
			Load:             project.LoadMake,
			Safe:             true,
			NewProjectChoice: true,
		},
		emacsDescriptor(),
	}
	for _, d := range defaults {
		if err := r.Register(d, PriorityDefault); err != nil {
			return fmt.Errorf("seed %q: %w", d.Name, err)
		}
	}

	generic := &Descriptor{
		Name:             "generic",
		MarkerFile:       project.GenericMarkerFile,
		RootOnly:         true,
		Load:             project.LoadGeneric,
		Safe:             true,
		NewProjectChoice: false,
	}
	if err := r.Register(generic, PriorityGeneric); err != nil {
		return fmt.Errorf("seed %q: %w", generic.Name, err)
	}
	return nil
}

// emacsDescriptor recognizes an Emacs source checkout by its src/emacs.c
// layout. A user who recorded their checkout location in emacs-src.conf
// under the config directory gets matcher-based detection as well, which
// never touches the marker file.
func emacsDescriptor() *Descriptor {
	d := &Descriptor{
		Name:             "emacs",
		MarkerFile:       "src/emacs.c",
		RootOnly:         true,
		Safe:             true,
		NewProjectChoice: false,
		Load: func(root string) (project.Project, error) {
			p := project.NewCppRootProject("emacs", root)
			p.IncludePaths = []string{"/src", "/lib", "/lib-src"}
			return p, nil
		},
	}

	if dir, err := config.ConfigDir(); err == nil {
		m, err := dirmatch.Spec{
			Kind:       dirmatch.KindConfigDerived,
			ConfigFile: filepath.Join(dir, "emacs-src.conf"),
			Pattern:    `(?m)^source\s*=\s*(.+)$`,
			Capture:    1,
		}.Build()
		if err == nil {
			d.RootDirMatcher = m
		}
	}
	return d
}
