// SPDX-License-Identifier: MPL-2.0

package project

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// KernelScriptFile distinguishes a kernel tree from an ordinary Makefile
// project: both have a top-level Makefile, but only the kernel ships this
// script alongside it.
const KernelScriptFile = "scripts/ver_linux"

// LoadLinux materializes an embedded-kernel-style project from a kernel
// source tree at root. The version is scraped from the top Makefile; the
// include set is the kernel's fixed layout, filtered to directories that
// exist (older and newer trees differ in the arch include location).
func LoadLinux(root string) (Project, error) {
	version, err := kernelVersion(filepath.Join(root, MakeMarkerFile))
	if err != nil {
		return nil, err
	}

	name := "Linux"
	if version != "" {
		name = "Linux " + version
	}

	p := NewKernelProject(name, root)
	p.Version = version

	for _, rel := range []string{
		"include",
		filepath.Join("arch", "x86", "include"),
		filepath.Join("arch", "x86", "include", "generated"),
		filepath.Join("include", "generated"),
	} {
		dir := filepath.Join(root, rel)
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			p.IncludePaths = append(p.IncludePaths, dir)
		}
	}

	return p, nil
}

// kernelVersion recovers "VERSION.PATCHLEVEL.SUBLEVEL" from the top
// Makefile. Missing components are tolerated; a tree with none of them
// yields an empty version, not an error.
func kernelVersion(makefile string) (string, error) {
	f, err := os.Open(makefile)
	if err != nil {
		return "", fmt.Errorf("failed to read kernel makefile: %w", err)
	}
	defer f.Close()

	parts := map[string]string{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		for _, key := range []string{"VERSION", "PATCHLEVEL", "SUBLEVEL"} {
			if rest, ok := strings.CutPrefix(line, key); ok {
				rest = strings.TrimSpace(rest)
				if value, ok := strings.CutPrefix(rest, "="); ok {
					parts[key] = strings.TrimSpace(value)
				}
			}
		}
		if len(parts) == 3 {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("failed to scan kernel makefile: %w", err)
	}

	var segs []string
	for _, key := range []string{"VERSION", "PATCHLEVEL", "SUBLEVEL"} {
		if v, ok := parts[key]; ok && v != "" {
			segs = append(segs, v)
		}
	}
	return strings.Join(segs, "."), nil
}

// DetectKernelTree reports whether dir looks like a kernel source root.
func DetectKernelTree(dir string) bool {
	if _, err := os.Stat(filepath.Join(dir, MakeMarkerFile)); err != nil {
		return false
	}
	_, err := os.Stat(filepath.Join(dir, filepath.FromSlash(KernelScriptFile)))
	return err == nil
}
