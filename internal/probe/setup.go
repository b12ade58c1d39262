// SPDX-License-Identifier: MPL-2.0

package probe

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/yyr/cedet/internal/config"
	"github.com/yyr/cedet/pkg/platform"
)

// compatibilityHeaders declare core platform macros; when one turns up
// in a discovered include directory it is recorded so the macro table
// can later be refreshed from the file itself.
var compatibilityHeaders = []string{
	"stdc-predef.h",
	filepath.Join("sys", "cdefs.h"),
}

// Setup is the composed probe pipeline: toolchain facts, predefined
// macros, per-language include paths, and compatibility-header symbol
// files, gathered once and appended to on later runs. All collections
// are ordered-unique; repeated Run calls reuse the cached probe results
// and never insert duplicates.
type Setup struct {
	cfg   *config.Config
	cache *Cache

	mu          sync.Mutex
	facts       *Facts
	macros      []Define
	macroSeen   map[string]bool
	includes    map[config.Language][]string
	includeSeen map[config.Language]map[string]bool
	symbolFiles []string
	symbolSeen  map[string]bool
}

// NewSetup creates a pipeline over cfg backed by cache. A nil cache
// uses the process-wide Default.
func NewSetup(cfg *config.Config, cache *Cache) *Setup {
	if cache == nil {
		cache = Default
	}
	return &Setup{
		cfg:         cfg,
		cache:       cache,
		macroSeen:   make(map[string]bool),
		includes:    make(map[config.Language][]string),
		includeSeen: make(map[config.Language]map[string]bool),
		symbolSeen:  make(map[string]bool),
	}
}

// Run executes the pipeline. The macro probe tries the configured
// compiler for C++ first and falls back to the configured preprocessor
// when the compiler cannot be launched; include discovery that yields
// nothing falls back to guessing from the executable's install root.
// Probe subprocesses are bounded by the configured timeout. Every probe
// result is cached per executable, so a Run against a warm cache spawns
// no subprocesses at all.
func (s *Setup) Run(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, s.cfg.ProbeTimeout())
	defer cancel()

	exe := s.cfg.Compiler

	facts, err := s.cache.FactsFor(ctx, exe)
	if err != nil {
		if !errors.Is(err, ErrLaunch) || s.cfg.FallbackCpp == "" {
			return err
		}
		slog.Debug("compiler probe failed to launch, trying fallback",
			"compiler", exe, "fallback", s.cfg.FallbackCpp)
		exe = s.cfg.FallbackCpp
		if facts, err = s.cache.FactsFor(ctx, exe); err != nil {
			return err
		}
	}
	s.facts = facts

	derived, err := s.cache.DerivedFor(ctx, exe, func(ctx context.Context) (*Derived, error) {
		return s.probeDerived(ctx, exe, facts)
	})
	if err != nil {
		return err
	}

	for _, d := range derived.Macros {
		s.addMacro(d)
	}
	if platform.IsWindows() && strings.Contains(facts.Target, "mingw") {
		s.addMacro(Define{Name: "__MSVCRT__"})
	}
	for _, lang := range s.cfg.Languages {
		for _, p := range derived.Includes[lang] {
			s.addInclude(lang, p)
		}
	}

	s.recordSymbolFiles()
	return nil
}

// probeDerived runs the macro and include probes for exe. Only the cache
// calls this, at most once per executable.
func (s *Setup) probeDerived(ctx context.Context, exe string, facts *Facts) (*Derived, error) {
	defs, err := GetMacros(ctx, exe, config.LanguageCPP)
	if err != nil && exe != s.cfg.FallbackCpp && s.cfg.FallbackCpp != "" {
		defs, err = GetMacros(ctx, s.cfg.FallbackCpp, config.LanguageCPP)
	}
	if err != nil {
		// Degrade to an empty macro table; include discovery may still work.
		slog.Warn("predefined macro probe failed", "executable", exe, "error", err)
		defs = nil
	}

	includes := make(map[config.Language][]string, len(s.cfg.Languages))
	for _, lang := range s.cfg.Languages {
		paths, err := GetIncludePaths(ctx, exe, lang)
		if err != nil {
			return nil, err
		}
		if len(paths) == 0 {
			paths = GuessIncludes(exe, facts.Version, facts.Target)
		}
		includes[lang] = paths
	}

	return &Derived{Macros: defs, Includes: includes}, nil
}

// Facts returns the toolchain facts from the last successful Run.
func (s *Setup) Facts() *Facts {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.facts
}

// Macros returns the accumulated predefined macros in discovery order.
func (s *Setup) Macros() []Define {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Define, len(s.macros))
	copy(out, s.macros)
	return out
}

// Includes returns the accumulated include directories for lang.
func (s *Setup) Includes(lang config.Language) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.includes[lang]))
	copy(out, s.includes[lang])
	return out
}

// SystemIncludes returns the include directories of the first configured
// language that yielded any, in probe order. Flag resolution uses this
// as the system search list.
func (s *Setup) SystemIncludes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, lang := range s.cfg.Languages {
		if len(s.includes[lang]) > 0 {
			out := make([]string, len(s.includes[lang]))
			copy(out, s.includes[lang])
			return out
		}
	}
	return nil
}

// SymbolFiles returns the discovered compatibility headers.
func (s *Setup) SymbolFiles() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.symbolFiles))
	copy(out, s.symbolFiles)
	return out
}

func (s *Setup) addMacro(d Define) {
	if s.macroSeen[d.Name] {
		return
	}
	s.macroSeen[d.Name] = true
	s.macros = append(s.macros, d)
}

func (s *Setup) addInclude(lang config.Language, dir string) {
	seen := s.includeSeen[lang]
	if seen == nil {
		seen = make(map[string]bool)
		s.includeSeen[lang] = seen
	}
	if seen[dir] {
		return
	}
	seen[dir] = true
	s.includes[lang] = append(s.includes[lang], dir)
}

func (s *Setup) recordSymbolFiles() {
	for _, dirs := range s.includes {
		for _, dir := range dirs {
			for _, h := range compatibilityHeaders {
				candidate := filepath.Join(dir, h)
				if s.symbolSeen[candidate] {
					continue
				}
				if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
					s.symbolSeen[candidate] = true
					s.symbolFiles = append(s.symbolFiles, candidate)
				}
			}
		}
	}
}
