// SPDX-License-Identifier: MPL-2.0

// Package loader turns a detected project type into a live project
// object, enforcing the trust gate for unsafe types along the way.
//
// The gate is the whole point of this package existing separately from
// detection: detection only stats files, but loading an unsafe type
// reads a marker whose format can carry executable content. The gate
// decision therefore happens before the type's Load hook runs, never
// after.
package loader

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/yyr/cedet/internal/project"
	"github.com/yyr/cedet/internal/projtype"
)

var (
	// ErrUntrustedDir is the sentinel wrapped by SecurityError.
	ErrUntrustedDir = errors.New("unsafe project type in untrusted directory")

	// ErrNilProject is the sentinel wrapped by ContractError.
	ErrNilProject = errors.New("project loader returned no project")
)

type (
	// TrustChecker answers whether a directory has been approved for
	// unsafe project types. config.TrustStore satisfies it.
	TrustChecker interface {
		IsTrusted(dir string) bool
	}

	// SecurityError reports a refused load: the project type is unsafe
	// and the directory is not in the trust store. The type's loader was
	// never invoked.
	SecurityError struct {
		TypeName string
		Dir      string
	}

	// ContractError reports a loader that returned neither a project nor
	// an error. This is a bug in the descriptor, not a user condition.
	ContractError struct {
		TypeName string
		Dir      string
	}

	// Loader gates and runs project-type load hooks, registering each
	// materialized project in a project list.
	Loader struct {
		trust    TrustChecker
		projects *project.List
	}
)

// Error implements the error interface.
func (e *SecurityError) Error() string {
	return fmt.Sprintf("project type %q can execute code when loaded and %q is not trusted; run `cedet trust add %s` to approve it",
		e.TypeName, e.Dir, e.Dir)
}

// Unwrap returns ErrUntrustedDir for errors.Is detection.
func (e *SecurityError) Unwrap() error { return ErrUntrustedDir }

// Error implements the error interface.
func (e *ContractError) Error() string {
	return fmt.Sprintf("project type %q returned no project and no error for %q", e.TypeName, e.Dir)
}

// Unwrap returns ErrNilProject for errors.Is detection.
func (e *ContractError) Unwrap() error { return ErrNilProject }

// New creates a Loader that consults trust and registers into projects.
func New(trust TrustChecker, projects *project.List) *Loader {
	return &Loader{trust: trust, projects: projects}
}

// Load runs the descriptor's load hook for dir and registers the result.
// For unsafe descriptors the directory must be trusted; otherwise Load
// returns a SecurityError without ever invoking the hook.
func (l *Loader) Load(d *projtype.Descriptor, dir string) (project.Project, error) {
	dir = filepath.Clean(dir)

	if !d.Safe && !l.trust.IsTrusted(dir) {
		slog.Warn("refusing to load unsafe project type",
			"type", d.Name, "dir", dir)
		return nil, &SecurityError{TypeName: d.Name, Dir: dir}
	}

	p, err := d.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("load %s project at %s: %w", d.Name, dir, err)
	}
	if p == nil {
		return nil, &ContractError{TypeName: d.Name, Dir: dir}
	}

	l.projects.Add(p)
	slog.Debug("loaded project", "type", d.Name, "name", p.Name(), "root", p.Root())
	return p, nil
}

// LoadForFile resolves file to a project: an already-loaded project
// containing the file wins, otherwise the registry finds the root and
// the gated load runs there. A nil descriptor result means no project
// type claims any ancestor of file.
func (l *Loader) LoadForFile(r *projtype.Registry, file string) (project.Project, error) {
	if p := l.projects.FindByDir(filepath.Dir(file)); p != nil {
		return p, nil
	}

	root, d := r.RootForFile(file)
	if d == nil {
		return nil, nil
	}
	return l.Load(d, root)
}
