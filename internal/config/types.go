// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"

	// LanguageC selects the C front end for probe invocations.
	LanguageC Language = "c"
	// LanguageCPP selects the C++ front end for probe invocations.
	LanguageCPP Language = "c++"
)

var (
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidLanguage is the sentinel error wrapped by InvalidLanguageError.
	ErrInvalidLanguage = errors.New("invalid probe language")
	// ErrInvalidCompilerPath is returned when the compiler value is whitespace-only.
	ErrInvalidCompilerPath = errors.New("invalid compiler path")
	// ErrInvalidProbeTimeout is returned when probe_timeout is negative.
	ErrInvalidProbeTimeout = errors.New("invalid probe timeout")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// ColorScheme controls terminal color output.
	ColorScheme string

	// Language identifies a source language passed to the probe via -x.
	Language string

	// InvalidLanguageError is returned when a Language value is not recognized.
	// It wraps ErrInvalidLanguage for errors.Is() compatibility.
	InvalidLanguageError struct {
		Value Language
	}

	// InvalidConfigError aggregates all validation failures for a Config.
	// It wraps ErrInvalidConfig for errors.Is() compatibility.
	InvalidConfigError struct {
		Errors []error
	}

	// UIConfig holds user interface preferences.
	UIConfig struct {
		// ColorScheme selects terminal colors: auto, dark, or light.
		ColorScheme ColorScheme `mapstructure:"color_scheme"`
		// Verbose enables verbose output.
		Verbose bool `mapstructure:"verbose"`
	}

	// Config is the application configuration.
	Config struct {
		// Compiler is the toolchain executable probed for include paths and
		// macros. A bare name is resolved on PATH; an absolute path is used
		// as-is.
		Compiler string `mapstructure:"compiler"`

		// FallbackCpp is the preprocessor executable tried when the primary
		// compiler cannot be located or yields no macro output.
		FallbackCpp string `mapstructure:"fallback_cpp"`

		// ProbeTimeoutSeconds bounds each probe subprocess. Zero means the
		// built-in default; the probe never runs unbounded.
		ProbeTimeoutSeconds int `mapstructure:"probe_timeout"`

		// Languages are the source languages whose include paths are
		// collected during setup, in probe order.
		Languages []Language `mapstructure:"languages"`

		// SearchPaths are extra directories considered when walking upward
		// for project roots (e.g. bind-mounted source trees).
		SearchPaths []string `mapstructure:"search_paths"`

		// UI holds terminal output preferences.
		UI UIConfig `mapstructure:"ui"`
	}
)

// Error implements the error interface.
func (e *InvalidLanguageError) Error() string {
	return fmt.Sprintf("invalid probe language %q (valid: %s, %s)", e.Value, LanguageC, LanguageCPP)
}

// Unwrap returns ErrInvalidLanguage so callers can use errors.Is for programmatic detection.
func (e *InvalidLanguageError) Unwrap() error { return ErrInvalidLanguage }

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Error()
	}
	return "invalid config: " + strings.Join(msgs, "; ")
}

// Unwrap returns ErrInvalidConfig so callers can use errors.Is for programmatic detection.
func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }

// Validate returns nil if the Language is one of the supported probe
// languages, or a validation error if it is not.
func (l Language) Validate() error {
	switch l {
	case LanguageC, LanguageCPP:
		return nil
	default:
		return &InvalidLanguageError{Value: l}
	}
}

// Validate returns nil if the ColorScheme is recognized.
func (s ColorScheme) Validate() error {
	switch s {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidColorScheme, s)
	}
}

// DefaultConfig returns the built-in configuration defaults.
func DefaultConfig() *Config {
	return &Config{
		Compiler:            "gcc",
		FallbackCpp:         "cpp",
		ProbeTimeoutSeconds: 30,
		Languages:           []Language{LanguageCPP, LanguageC},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
		},
	}
}

// Validate checks the Config for values CUE cannot reject (whitespace-only
// strings, unsupported enum members) and returns an InvalidConfigError
// aggregating every failure.
func (c *Config) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Compiler) == "" {
		errs = append(errs, fmt.Errorf("%w: compiler must not be empty", ErrInvalidCompilerPath))
	}
	if c.ProbeTimeoutSeconds < 0 {
		errs = append(errs, fmt.Errorf("%w: %d", ErrInvalidProbeTimeout, c.ProbeTimeoutSeconds))
	}
	for _, lang := range c.Languages {
		if err := lang.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := c.UI.ColorScheme.Validate(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return &InvalidConfigError{Errors: errs}
	}
	return nil
}
