// SPDX-License-Identifier: MPL-2.0

// Package flags turns a loaded project plus probed toolchain facts into
// the compiler-argument list handed to a parser front end. Resolution
// dispatches on the project variant; a variant this package does not
// recognize simply contributes no flags, so an unconfigured project
// still parses with system-only arguments.
package flags

import (
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"mvdan.cc/sh/v3/shell"

	"github.com/yyr/cedet/internal/project"
)

// SystemProvider supplies the probed toolchain's own search list and
// predefined macros. probe.Setup satisfies it.
type SystemProvider interface {
	SystemIncludes() []string
}

// Resolver combines project-declared flag sources with the probed
// system configuration.
type Resolver struct {
	system SystemProvider
}

// New creates a Resolver. A nil provider resolves project flags only.
func New(system SystemProvider) *Resolver {
	return &Resolver{system: system}
}

// ArgsFor computes the ordered compiler-style argument list for file
// within p. The target name selects a sub-target's variable table where
// the variant has one; an empty target uses project-wide sources only.
func (r *Resolver) ArgsFor(p project.Project, file, target string) []string {
	switch v := p.(type) {
	case *project.CppRootProject:
		return r.cppRootArgs(v)
	case *project.KernelProject:
		return kernelArgs(v, file)
	case *project.MakeProject:
		return makeArgs(v, target)
	default:
		slog.Debug("no flag rule for project variant", "project", p.Name())
		return nil
	}
}

// cppRootArgs emits the declared root-relative include paths, the
// declared system include paths, the probed system list, the project
// macros, and finally the root itself as the lowest-priority include.
func (r *Resolver) cppRootArgs(p *project.CppRootProject) []string {
	root := p.Root()

	var args []string
	for _, inc := range p.IncludePaths {
		args = append(args, "-I"+root+filepath.FromSlash(inc))
	}
	for _, inc := range p.SystemIncludePaths {
		args = append(args, "-I"+inc)
	}
	if r.system != nil {
		for _, inc := range r.system.SystemIncludes() {
			args = append(args, "-I"+inc)
		}
	}
	for _, m := range p.Macros {
		args = append(args, defineArg(m))
	}
	return append(args, "-I"+root)
}

// kernelArgs forces the generated kernel config header, then the tree's
// declared include directories, then the file's own directory and its
// mirror in the build-output tree, and finally the kernel platform macro.
func kernelArgs(p *project.KernelProject, file string) []string {
	root := p.Root()

	args := []string{"-include", filepath.Join(root, "include", "linux", "autoconf.h")}
	for _, inc := range p.IncludePaths {
		args = append(args, "-I"+inc)
	}

	if file != "" {
		dir := filepath.Dir(filepath.Clean(file))
		args = append(args, "-I"+dir)
		if p.BuildRoot != "" {
			if rel, err := filepath.Rel(root, dir); err == nil && !strings.HasPrefix(rel, "..") {
				args = append(args, "-I"+filepath.Join(p.BuildRoot, rel))
			}
		}
	}
	return append(args, "-D__KERNEL__")
}

// makeArgs recovers -I and -D tokens out of the project's build
// variables, shell-splitting each raw value so quoted arguments survive
// intact, and keeps nothing else — a Makefile variable carries link
// flags, optimization levels, and arbitrary junk alongside the
// preprocessor flags we want. The project root leads as an include.
func makeArgs(p *project.MakeProject, target string) []string {
	args := []string{"-I" + p.Root()}

	var values []string
	for _, name := range sortedKeys(p.Variables) {
		values = append(values, p.Variables[name])
	}
	if t := p.TargetNamed(target); t != nil {
		for _, name := range sortedKeys(t.Vars) {
			values = append(values, t.Vars[name])
		}
	}

	for _, raw := range values {
		tokens, err := shell.Fields(raw, func(string) string { return "" })
		if err != nil {
			// Unbalanced quoting in a build variable; fall back to a
			// plain whitespace split rather than dropping the value.
			tokens = strings.Fields(raw)
		}
		for _, tok := range tokens {
			if strings.HasPrefix(tok, "-I") || strings.HasPrefix(tok, "-D") {
				args = append(args, tok)
			}
		}
	}
	return args
}

func defineArg(m project.Macro) string {
	if m.Value == "" {
		return "-D" + m.Name
	}
	return "-D" + m.Name + "=" + m.Value
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
