// SPDX-License-Identifier: MPL-2.0

// Package dirmatch provides cheap, deferred directory applicability checks.
//
// A matcher answers "could this directory belong to project type X" without
// loading the project type itself. The ConfigDerived variant defers further:
// it extracts the string to match from an external config file on first use,
// so project types whose root location is recorded in some tool's own
// configuration (e.g. an editor's build directory setting) can be detected
// without hard-coding paths.
package dirmatch

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
)

const (
	// KindLiteral matches a fixed directory name.
	KindLiteral Kind = "literal"
	// KindConfigDerived matches a string extracted from a config file.
	KindConfigDerived Kind = "config-derived"
)

// ErrUnknownKind is the sentinel error wrapped by UnknownKindError.
var ErrUnknownKind = errors.New("unknown dirmatch kind")

type (
	// Kind discriminates matcher variants in a Spec.
	Kind string

	// UnknownKindError is returned when a Spec names a matcher kind outside
	// the closed variant set. This indicates a programming mistake in
	// registration, not an environmental condition.
	UnknownKindError struct {
		Value Kind
	}

	// Matcher is a cheap existence/identity check over candidate directories.
	Matcher interface {
		// Installed reports whether the matcher's backing data is present
		// on this system. A matcher that is not installed can never match.
		Installed() bool
		// Matches reports whether the candidate path belongs to this matcher.
		Matches(candidate string) bool
	}

	// Spec declares a matcher without constructing it. Descriptors carry a
	// Spec so registration stays declarative; Build validates the kind.
	Spec struct {
		// Kind selects the variant.
		Kind Kind
		// Name is the literal directory name (KindLiteral only).
		Name string
		// ConfigFile is the backing file to extract from (KindConfigDerived only).
		ConfigFile string
		// Pattern is the extraction regexp (KindConfigDerived only).
		Pattern string
		// Capture is the subexpression index whose text is matched (KindConfigDerived only).
		Capture int
	}

	// Literal matches when the candidate's base name equals Name.
	Literal struct {
		Name string
	}

	// ConfigDerived matches when a string extracted from ConfigFile is a
	// substring of the candidate path. The first successful extraction is
	// cached for the lifetime of the matcher instance; a read or pattern
	// failure is retried on the next call, since the backing file may gain
	// the expected entry later. Two instances referencing the same file each
	// probe and cache independently.
	ConfigDerived struct {
		ConfigFile string
		Pattern    *regexp.Regexp
		Capture    int

		mu     sync.Mutex
		cached bool
		stash  string
	}
)

// Error implements the error interface.
func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("unknown dirmatch kind %q (valid: %s, %s)", e.Value, KindLiteral, KindConfigDerived)
}

// Unwrap returns ErrUnknownKind so callers can use errors.Is for programmatic detection.
func (e *UnknownKindError) Unwrap() error { return ErrUnknownKind }

// Build constructs the Matcher a Spec declares. An unrecognized Kind is a
// configuration error; it should be unreachable given the closed variant set
// and is never silently ignored.
func (s Spec) Build() (Matcher, error) {
	switch s.Kind {
	case KindLiteral:
		return &Literal{Name: s.Name}, nil
	case KindConfigDerived:
		re, err := regexp.Compile(s.Pattern)
		if err != nil {
			return nil, fmt.Errorf("dirmatch pattern %q: %w", s.Pattern, err)
		}
		return &ConfigDerived{ConfigFile: s.ConfigFile, Pattern: re, Capture: s.Capture}, nil
	default:
		return nil, &UnknownKindError{Value: s.Kind}
	}
}

// Installed always reports true: a literal name needs no backing data.
func (m *Literal) Installed() bool { return true }

// Matches reports whether the candidate's final path component equals Name.
func (m *Literal) Matches(candidate string) bool {
	return filepath.Base(filepath.Clean(candidate)) == m.Name
}

// Installed reports whether the backing config file exists.
func (m *ConfigDerived) Installed() bool {
	info, err := os.Stat(m.ConfigFile)
	return err == nil && !info.IsDir()
}

// Matches reports whether the string extracted from the config file is a
// substring of the candidate path. Calling Matches before the backing file
// exists is not an error; it simply reports false, since absence of the
// file means no match is possible.
func (m *ConfigDerived) Matches(candidate string) bool {
	if !m.Installed() {
		return false
	}

	stash, ok := m.extract()
	if !ok {
		return false
	}
	return strings.Contains(candidate, stash)
}

// extract returns the cached extraction, reading the backing file only while
// no successful extraction has been cached yet.
func (m *ConfigDerived) extract() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cached {
		return m.stash, true
	}
	data, err := os.ReadFile(m.ConfigFile)
	if err != nil {
		return "", false
	}
	groups := m.Pattern.FindStringSubmatch(string(data))
	if groups == nil || m.Capture >= len(groups) || groups[m.Capture] == "" {
		return "", false
	}
	m.stash = groups[m.Capture]
	m.cached = true
	return m.stash, true
}
