// SPDX-License-Identifier: MPL-2.0

package dirmatch

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestSpecBuildUnknownKind(t *testing.T) {
	_, err := Spec{Kind: "telepathic"}.Build()
	if err == nil {
		t.Fatal("expected error for unknown kind")
	}
	if !errors.Is(err, ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}

	var kindErr *UnknownKindError
	if !errors.As(err, &kindErr) || kindErr.Value != "telepathic" {
		t.Errorf("expected UnknownKindError carrying the bad value, got %v", err)
	}
}

func TestSpecBuildBadPattern(t *testing.T) {
	_, err := Spec{Kind: KindConfigDerived, ConfigFile: "f", Pattern: "(unclosed"}.Build()
	if err == nil {
		t.Error("expected error for invalid extraction pattern")
	}
}

func TestLiteralMatcher(t *testing.T) {
	m, err := Spec{Kind: KindLiteral, Name: "linux"}.Build()
	if err != nil {
		t.Fatal(err)
	}

	if !m.Installed() {
		t.Error("literal matchers are always installed")
	}

	tests := []struct {
		candidate string
		want      bool
	}{
		{"/usr/src/linux", true},
		{"/usr/src/linux/", true},
		{"/usr/src/linux-6.1", false},
		{"/usr/src", false},
		{"linux", true},
	}
	for _, tt := range tests {
		if got := m.Matches(tt.candidate); got != tt.want {
			t.Errorf("Matches(%q) = %v, want %v", tt.candidate, got, tt.want)
		}
	}
}

func TestConfigDerivedMatcher(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "build.conf")
	if err := os.WriteFile(cfgFile, []byte("# build settings\nsource-directory = /home/dev/emacs\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := Spec{
		Kind:       KindConfigDerived,
		ConfigFile: cfgFile,
		Pattern:    `source-directory = (.*)`,
		Capture:    1,
	}.Build()
	if err != nil {
		t.Fatal(err)
	}

	if !m.Installed() {
		t.Fatal("expected matcher to be installed with backing file present")
	}
	if !m.Matches("/home/dev/emacs/src") {
		t.Error("expected match inside the extracted tree")
	}
	if m.Matches("/home/dev/other") {
		t.Error("expected no match outside the extracted tree")
	}
}

func TestConfigDerivedReadsFileAtMostOnce(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "build.conf")
	if err := os.WriteFile(cfgFile, []byte("root=/first/tree\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := Spec{Kind: KindConfigDerived, ConfigFile: cfgFile, Pattern: `root=(.*)`, Capture: 1}.Build()
	if err != nil {
		t.Fatal(err)
	}

	if !m.Matches("/first/tree/src") {
		t.Fatal("expected initial extraction to match")
	}

	// Rewrite the backing file; the stash must survive because a successful
	// extraction is cached for the matcher's lifetime.
	if err := os.WriteFile(cfgFile, []byte("root=/second/tree\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if m.Matches("/second/tree/src") {
		t.Error("matcher re-read its backing file after the first extraction")
	}
	if !m.Matches("/first/tree/src") {
		t.Error("cached extraction stopped matching")
	}
}

func TestConfigDerivedRetriesFailedExtraction(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "build.conf")
	if err := os.WriteFile(cfgFile, []byte("# nothing useful yet\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := Spec{Kind: KindConfigDerived, ConfigFile: cfgFile, Pattern: `root=(.*)`, Capture: 1}.Build()
	if err != nil {
		t.Fatal(err)
	}

	if m.Matches("/any/tree") {
		t.Fatal("expected no match while the backing file lacks the entry")
	}

	// The entry appears later; only a successful extraction latches, so the
	// matcher must pick it up now.
	if err := os.WriteFile(cfgFile, []byte("root=/late/tree\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if !m.Matches("/late/tree/src") {
		t.Error("expected matcher to retry extraction after an earlier failure")
	}

	// From here on the extraction is cached.
	if err := os.WriteFile(cfgFile, []byte("root=/other/tree\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if m.Matches("/other/tree/src") {
		t.Error("matcher re-read its backing file after a successful extraction")
	}
}

func TestConfigDerivedMissingFile(t *testing.T) {
	m, err := Spec{
		Kind:       KindConfigDerived,
		ConfigFile: filepath.Join(t.TempDir(), "absent.conf"),
		Pattern:    `root=(.*)`,
		Capture:    1,
	}.Build()
	if err != nil {
		t.Fatal(err)
	}

	if m.Installed() {
		t.Error("expected Installed to be false without the backing file")
	}
	// Not an error: absence of the backing file means no match is possible.
	if m.Matches("/anywhere") {
		t.Error("uninstalled matcher must not match")
	}
}

func TestConfigDerivedIndependentInstances(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "build.conf")
	if err := os.WriteFile(cfgFile, []byte("root=/tree/a\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	spec := Spec{Kind: KindConfigDerived, ConfigFile: cfgFile, Pattern: `root=(.*)`, Capture: 1}

	first, _ := spec.Build()
	if !first.Matches("/tree/a/src") {
		t.Fatal("first instance should match /tree/a")
	}

	if err := os.WriteFile(cfgFile, []byte("root=/tree/b\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	// Caching is by-instance: a fresh matcher sees the new contents.
	second, _ := spec.Build()
	if !second.Matches("/tree/b/src") {
		t.Error("second instance should extract the updated value")
	}
	if first.Matches("/tree/b/src") {
		t.Error("first instance leaked the second instance's extraction")
	}
}
