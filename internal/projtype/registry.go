// SPDX-License-Identifier: MPL-2.0

package projtype

import (
	"errors"
	"fmt"
	"sync"
)

const (
	// PriorityUnique places the descriptor ahead of everything already
	// registered. Project-specific overrides use this tier.
	PriorityUnique Priority = "unique"
	// PriorityDefault splices the descriptor immediately before the
	// first generic descriptor, after all earlier defaults.
	PriorityDefault Priority = "default"
	// PriorityGeneric appends the descriptor to the fallback tail.
	PriorityGeneric Priority = "generic"
)

var (
	// ErrNotSeeded is returned when a default-priority registration
	// arrives before the registry holds any anchor to splice around.
	ErrNotSeeded = errors.New("project type registry not seeded")

	// ErrInvalidPriority is the sentinel wrapped by InvalidPriorityError.
	ErrInvalidPriority = errors.New("invalid registration priority")
)

type (
	// Priority selects the registry tier a descriptor lands in.
	Priority string

	// InvalidPriorityError reports a priority outside the closed set.
	InvalidPriorityError struct {
		Value Priority
	}

	// Registry is the ordered collection of project-type descriptors.
	// Order encodes precedence: unique overrides, then defaults, then
	// generic fallbacks. Same-name re-registration replaces in place so
	// a refreshed descriptor keeps its precedence slot.
	Registry struct {
		mu      sync.RWMutex
		entries []*Descriptor
		seeded  bool
	}
)

// Error implements the error interface.
func (e *InvalidPriorityError) Error() string {
	return fmt.Sprintf("invalid registration priority %q (valid: %s, %s, %s)",
		e.Value, PriorityUnique, PriorityDefault, PriorityGeneric)
}

// Unwrap returns ErrInvalidPriority for errors.Is detection.
func (e *InvalidPriorityError) Unwrap() error { return ErrInvalidPriority }

// Validate reports whether the priority is a member of the closed set.
func (p Priority) Validate() error {
	switch p {
	case PriorityUnique, PriorityDefault, PriorityGeneric:
		return nil
	default:
		return &InvalidPriorityError{Value: p}
	}
}

// NewRegistry creates an empty, unseeded registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Live is the process-wide registry. Seed populates it at startup; tests
// use their own Registry instances.
var Live = NewRegistry()

// Register adds d to the tier named by priority, or replaces an existing
// descriptor of the same name in place (the replacement inherits the old
// entry's slot and tier, and the requested priority is ignored beyond
// validation). Default-priority registration into a never-seeded registry
// fails with ErrNotSeeded: without a seeded tail there is no position the
// tier's splice rule can name.
func (r *Registry) Register(d *Descriptor, priority Priority) error {
	if err := priority.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i, existing := range r.entries {
		if existing.Name == d.Name {
			d.generic = existing.generic
			r.entries[i] = d
			return nil
		}
	}

	switch priority {
	case PriorityUnique:
		r.seeded = true
		r.entries = append([]*Descriptor{d}, r.entries...)
	case PriorityGeneric:
		r.seeded = true
		d.generic = true
		r.entries = append(r.entries, d)
	case PriorityDefault:
		if !r.seeded {
			return fmt.Errorf("register %q: %w", d.Name, ErrNotSeeded)
		}
		at := len(r.entries)
		for i, existing := range r.entries {
			if existing.generic {
				at = i
				break
			}
		}
		r.entries = append(r.entries, nil)
		copy(r.entries[at+1:], r.entries[at:])
		r.entries[at] = d
	}
	return nil
}

// All returns a snapshot of the descriptors in precedence order.
func (r *Registry) All() []*Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Descriptor, len(r.entries))
	copy(out, r.entries)
	return out
}

// Named returns the descriptor with the given name, or nil.
func (r *Registry) Named(name string) *Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, d := range r.entries {
		if d.Name == name {
			return d
		}
	}
	return nil
}

// markSeeded records that the built-in descriptor set was installed,
// even before the first registration lands. Seed calls this so the
// built-ins themselves can use default priority.
func (r *Registry) markSeeded() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seeded = true
}
