// SPDX-License-Identifier: MPL-2.0

package probe

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/yyr/cedet/internal/config"
)

type (
	// Facts are the cached per-executable toolchain facts: version,
	// target triple, install prefix, and the open-ended configure-time
	// option table scraped from verbose output.
	Facts struct {
		Executable string
		Version    string
		Target     string
		Prefix     string
		Options    map[string]string
	}

	// Derived holds the per-executable results of the macro and include
	// probes. Cached next to Facts so a warm cache answers the whole
	// pipeline without spawning anything.
	Derived struct {
		Macros   []Define
		Includes map[config.Language][]string
	}

	// Cache holds Facts and Derived per executable path for the process
	// lifetime. Concurrent callers asking about the same executable share
	// a single probe subprocess; there is no expiry, only explicit Reset.
	Cache struct {
		mu      sync.Mutex
		facts   map[string]*Facts
		derived map[string]*Derived
		group   singleflight.Group
	}
)

// NewCache creates an empty facts cache.
func NewCache() *Cache {
	return &Cache{
		facts:   make(map[string]*Facts),
		derived: make(map[string]*Derived),
	}
}

// Default is the process-wide facts cache.
var Default = NewCache()

// FactsFor returns the cached facts for exe, probing at most once per
// executable path no matter how many goroutines ask concurrently.
func (c *Cache) FactsFor(ctx context.Context, exe string) (*Facts, error) {
	c.mu.Lock()
	if f, ok := c.facts[exe]; ok {
		c.mu.Unlock()
		return f, nil
	}
	c.mu.Unlock()

	v, err, _ := c.group.Do(exe, func() (any, error) {
		f, err := queryFacts(ctx, exe)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.facts[exe] = f
		c.mu.Unlock()
		return f, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Facts), nil
}

// DerivedFor returns the cached macro and include probe results for exe,
// computing them via compute at most once per executable path. As with
// FactsFor, concurrent callers share a single computation.
func (c *Cache) DerivedFor(ctx context.Context, exe string, compute func(context.Context) (*Derived, error)) (*Derived, error) {
	c.mu.Lock()
	if d, ok := c.derived[exe]; ok {
		c.mu.Unlock()
		return d, nil
	}
	c.mu.Unlock()

	v, err, _ := c.group.Do("derived\x00"+exe, func() (any, error) {
		d, err := compute(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.derived[exe] = d
		c.mu.Unlock()
		return d, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Derived), nil
}

// Reset drops every cached entry. The next FactsFor probes again.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.facts = make(map[string]*Facts)
	c.derived = make(map[string]*Derived)
}

// ResetCache resets the process-wide cache.
func ResetCache() {
	Default.Reset()
}

func queryFacts(ctx context.Context, exe string) (*Facts, error) {
	res, err := Query(ctx, exe, "-v")
	if err != nil {
		return nil, err
	}
	if !res.Success() {
		slog.Debug("toolchain verbose probe exited nonzero",
			"executable", exe, "exit_code", res.ExitCode)
	}

	fields := Fields(res.Output)
	return &Facts{
		Executable: exe,
		Version:    fields[FieldVersion],
		Target:     fields[FieldTarget],
		Prefix:     fields["prefix"],
		Options:    fields,
	}, nil
}
