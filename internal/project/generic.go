// SPDX-License-Identifier: MPL-2.0

package project

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// GenericMarkerFile is the marker for the generic fallback project type.
// Unlike Project.ede it is pure data, so the type is safe to auto-load.
const GenericMarkerFile = "cedet-project.yml"

// genericDescription is the on-disk shape of a cedet-project.yml file.
// Macros are "NAME" or "NAME=VALUE" strings so declaration order survives
// YAML decoding.
type genericDescription struct {
	Name               string   `yaml:"name"`
	IncludePaths       []string `yaml:"include_paths"`
	SystemIncludePaths []string `yaml:"system_include_paths"`
	Macros             []string `yaml:"macros"`
	Targets            []struct {
		Name string            `yaml:"name"`
		Vars map[string]string `yaml:"vars"`
	} `yaml:"targets"`
}

// LoadGeneric materializes a root-relative-include project from a
// cedet-project.yml description at root.
func LoadGeneric(root string) (Project, error) {
	path := filepath.Join(root, GenericMarkerFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var desc genericDescription
	if err := yaml.Unmarshal(data, &desc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	name := desc.Name
	if name == "" {
		name = filepath.Base(filepath.Clean(root))
	}

	p := NewCppRootProject(name, root)
	for _, inc := range desc.IncludePaths {
		p.IncludePaths = append(p.IncludePaths, rootRelative(filepath.ToSlash(inc)))
	}
	p.SystemIncludePaths = append(p.SystemIncludePaths, desc.SystemIncludePaths...)

	for _, m := range desc.Macros {
		name, value, _ := strings.Cut(m, "=")
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		p.Macros = append(p.Macros, Macro{Name: name, Value: value})
	}

	for _, tgt := range desc.Targets {
		p.Targets = append(p.Targets, Target{Name: tgt.Name, Vars: tgt.Vars})
	}

	return p, nil
}
