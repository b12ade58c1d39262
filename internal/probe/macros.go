// SPDX-License-Identifier: MPL-2.0

package probe

import (
	"context"
	"os"
	"regexp"
	"strings"

	"github.com/yyr/cedet/internal/config"
)

// Define is one predefined preprocessor macro. An empty Value is a bare
// definition.
type Define struct {
	Name  string
	Value string
}

var defineRe = regexp.MustCompile(`^#define\s+(\S+)\s*(.*)$`)

// ParseMacroDump extracts (name, value) pairs from a predefined-macro
// dump (`-dM -E` output), preserving dump order. Function-like macros
// keep their parameter list as part of the name; lines that are not
// define directives are skipped.
func ParseMacroDump(output string) []Define {
	var defs []Define
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSuffix(line, "\r")
		m := defineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		defs = append(defs, Define{Name: m[1], Value: strings.TrimSpace(m[2])})
	}
	return defs
}

// GetMacros probes exe for the predefined macros of the given language.
// A nonzero exit with a usable dump still yields macros.
func GetMacros(ctx context.Context, exe string, lang config.Language) ([]Define, error) {
	res, err := Query(ctx, exe, "-E", "-dM", "-x", string(lang), os.DevNull)
	if err != nil {
		return nil, err
	}
	return ParseMacroDump(res.Output), nil
}
