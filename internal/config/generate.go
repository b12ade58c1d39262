// SPDX-License-Identifier: MPL-2.0

package config

import (
	"fmt"
	"strings"
)

// GenerateCUE renders cfg as a CUE document suitable for writing to
// config.cue. The output validates against the embedded schema.
func GenerateCUE(cfg *Config) string {
	var sb strings.Builder

	sb.WriteString("// cedet configuration file\n\n")

	sb.WriteString(fmt.Sprintf("compiler: %q\n", cfg.Compiler))
	sb.WriteString(fmt.Sprintf("fallback_cpp: %q\n", cfg.FallbackCpp))
	sb.WriteString(fmt.Sprintf("probe_timeout: %d\n", cfg.ProbeTimeoutSeconds))

	if len(cfg.Languages) > 0 {
		sb.WriteString("\nlanguages: [")
		for i, lang := range cfg.Languages {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(fmt.Sprintf("%q", lang))
		}
		sb.WriteString("]\n")
	}

	if len(cfg.SearchPaths) > 0 {
		sb.WriteString("\nsearch_paths: [\n")
		for _, p := range cfg.SearchPaths {
			sb.WriteString(fmt.Sprintf("\t%q,\n", p))
		}
		sb.WriteString("]\n")
	}

	sb.WriteString("\nui: {\n")
	sb.WriteString(fmt.Sprintf("\tcolor_scheme: %q\n", cfg.UI.ColorScheme))
	sb.WriteString(fmt.Sprintf("\tverbose: %v\n", cfg.UI.Verbose))
	sb.WriteString("}\n")

	return sb.String()
}
