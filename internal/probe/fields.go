// SPDX-License-Identifier: MPL-2.0

package probe

import (
	"regexp"
	"strings"
)

const (
	// FieldVersion is the key under which the toolchain version lands.
	FieldVersion = "version"
	// FieldTarget is the key under which the target triple lands.
	FieldTarget = "target"
)

var versionRe = regexp.MustCompile(`\bversion\s+(\d+(?:\.\d+)*)`)

// Fields scrapes free-text probe output (typically `gcc -v`) into a flat
// mapping. Three line shapes contribute:
//
//	Configured with: --host=x86_64-linux --prefix=/usr --with-foo
//	gcc version 9.4.0 (Ubuntu 9.4.0-1ubuntu1~20.04.1)
//	Target: x86_64-linux-gnu
//
// Each token after "Configured with:" contributes one entry with leading
// dashes stripped; bare flag tokens map to an empty value. Unrecognized
// lines are skipped silently — the format belongs to the toolchain, not
// to us, and partial results beat failure.
func Fields(output string) map[string]string {
	fields := make(map[string]string)

	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSuffix(strings.TrimSpace(line), "\r")

		if rest, ok := strings.CutPrefix(line, "Configured with:"); ok {
			for _, tok := range strings.Fields(rest) {
				tok = strings.TrimLeft(tok, "-")
				if tok == "" {
					continue
				}
				name, value, _ := strings.Cut(tok, "=")
				fields[name] = value
			}
			continue
		}
		if rest, ok := strings.CutPrefix(line, "Target:"); ok {
			fields[FieldTarget] = strings.TrimSpace(rest)
			continue
		}
		if m := versionRe.FindStringSubmatch(line); m != nil {
			if _, seen := fields[FieldVersion]; !seen {
				fields[FieldVersion] = m[1]
			}
		}
	}
	return fields
}
