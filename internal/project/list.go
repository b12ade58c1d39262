// SPDX-License-Identifier: MPL-2.0

package project

import (
	"path/filepath"
	"strings"
	"sync"
)

// List is a process-wide registry of loaded projects. Loaders add every
// successfully materialized project here; directory→project lookup for
// callers goes through FindByDir.
type List struct {
	mu    sync.RWMutex
	items []Project
}

// NewList creates an empty project list.
func NewList() *List {
	return &List{}
}

// Live is the process-wide project list. It is initialized once and torn
// down never; tests use their own List instances.
var Live = NewList()

// Add registers a project. A project with the same root replaces the
// earlier entry so reloading a project does not accumulate duplicates.
func (l *List) Add(p Project) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, existing := range l.items {
		if existing.Root() == p.Root() {
			l.items[i] = p
			return
		}
	}
	l.items = append(l.items, p)
}

// All returns a snapshot of the registered projects in registration order.
func (l *List) All() []Project {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Project, len(l.items))
	copy(out, l.items)
	return out
}

// FindByDir returns the registered project whose root contains dir, or nil.
// When roots nest, the deepest match wins.
func (l *List) FindByDir(dir string) Project {
	l.mu.RLock()
	defer l.mu.RUnlock()

	candidate := filepath.Clean(dir)
	var best Project
	for _, p := range l.items {
		root := filepath.Clean(p.Root())
		if candidate != root && !strings.HasPrefix(candidate, root+string(filepath.Separator)) {
			continue
		}
		if best == nil || len(root) > len(filepath.Clean(best.Root())) {
			best = p
		}
	}
	return best
}

// Reset clears the list. For tests only.
func (l *List) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = nil
}
