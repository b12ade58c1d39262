// SPDX-License-Identifier: MPL-2.0

package project

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Marker files for the make-family project types.
const (
	AutomakeMarkerFile = "Makefile.am"
	MakeMarkerFile     = "Makefile"
)

var (
	makeAssignRe = regexp.MustCompile(`^([A-Za-z0-9_.]+)\s*([:+?]?=)\s*(.*)$`)
	// Per-target flag variables follow the automake <canon-target>_<FLAGVAR>
	// convention; only the flag-bearing suffixes are split into targets.
	makeTargetVarRe = regexp.MustCompile(`^([A-Za-z0-9_.]+)_(CPPFLAGS|CFLAGS|CXXFLAGS|CCASFLAGS)$`)
)

// LoadAutomake materializes a generic build-description project from a
// Makefile.am at root.
func LoadAutomake(root string) (Project, error) {
	return loadMakefileVariant(root, AutomakeMarkerFile)
}

// LoadMake materializes a generic build-description project from a plain
// Makefile at root.
func LoadMake(root string) (Project, error) {
	return loadMakefileVariant(root, MakeMarkerFile)
}

// loadMakefileVariant scans a makefile for variable assignments. Values are
// kept verbatim (with continuation lines joined); interpretation is the
// flag resolver's concern. Rules, recipes, and comments are skipped.
func loadMakefileVariant(root, marker string) (Project, error) {
	path := filepath.Join(root, marker)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	defer f.Close()

	p := NewMakeProject(filepath.Base(filepath.Clean(root)), root)
	p.Variables = make(map[string]string)
	targets := make(map[string]*Target)
	var targetOrder []string

	scanner := bufio.NewScanner(f)
	var pending string
	for scanner.Scan() {
		line := scanner.Text()

		if pending != "" {
			line = pending + " " + strings.TrimSpace(line)
			pending = ""
		}
		if strings.HasSuffix(line, `\`) {
			pending = strings.TrimSpace(strings.TrimSuffix(line, `\`))
			continue
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		// Recipe lines begin with a tab and never carry assignments we want.
		if strings.HasPrefix(line, "\t") {
			continue
		}

		m := makeAssignRe.FindStringSubmatch(trimmed)
		if m == nil {
			continue
		}
		name, op, value := m[1], m[2], strings.TrimSpace(m[3])
		accumulate := op == "+="

		if tv := makeTargetVarRe.FindStringSubmatch(name); tv != nil {
			tgt := targets[tv[1]]
			if tgt == nil {
				tgt = &Target{Name: tv[1], Vars: make(map[string]string)}
				targets[tv[1]] = tgt
				targetOrder = append(targetOrder, tv[1])
			}
			tgt.Vars[tv[2]] = assignVar(tgt.Vars[tv[2]], value, accumulate)
			continue
		}

		p.Variables[name] = assignVar(p.Variables[name], value, accumulate)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", path, err)
	}

	for _, name := range targetOrder {
		p.Targets = append(p.Targets, *targets[name])
	}

	return p, nil
}

// assignVar models make assignment: += accumulates with a space, every
// other operator replaces the previous value.
func assignVar(existing, value string, accumulate bool) string {
	if !accumulate || existing == "" {
		return value
	}
	if value == "" {
		return existing
	}
	return existing + " " + value
}
