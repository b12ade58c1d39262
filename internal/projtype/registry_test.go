// SPDX-License-Identifier: MPL-2.0

package projtype

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/yyr/cedet/internal/project"
)

func stubDescriptor(name string) *Descriptor {
	return &Descriptor{
		Name: name,
		Load: func(root string) (project.Project, error) {
			return project.NewMakeProject(name, root), nil
		},
	}
}

func names(r *Registry) []string {
	var out []string
	for _, d := range r.All() {
		out = append(out, d.Name)
	}
	return out
}

func TestRegisterDefaultUnseededFails(t *testing.T) {
	r := NewRegistry()
	err := r.Register(stubDescriptor("cpp"), PriorityDefault)
	if !errors.Is(err, ErrNotSeeded) {
		t.Fatalf("expected ErrNotSeeded, got %v", err)
	}
}

func TestRegisterInvalidPriority(t *testing.T) {
	r := NewRegistry()
	err := r.Register(stubDescriptor("cpp"), Priority("urgent"))
	if !errors.Is(err, ErrInvalidPriority) {
		t.Fatalf("expected ErrInvalidPriority, got %v", err)
	}
	var pe *InvalidPriorityError
	if !errors.As(err, &pe) || pe.Value != "urgent" {
		t.Fatalf("expected InvalidPriorityError carrying the value, got %v", err)
	}
}

func TestRegisterTierOrdering(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(stubDescriptor("fallback"), PriorityGeneric); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(stubDescriptor("make"), PriorityDefault); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(stubDescriptor("automake"), PriorityDefault); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(stubDescriptor("override"), PriorityUnique); err != nil {
		t.Fatal(err)
	}

	got := names(r)
	want := []string{"override", "make", "automake", "fallback"}
	if len(got) != len(want) {
		t.Fatalf("order %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order %v, want %v", got, want)
		}
	}
	if !r.Named("fallback").Generic() {
		t.Error("generic-tier descriptor should report Generic()")
	}
	if r.Named("make").Generic() {
		t.Error("default-tier descriptor should not report Generic()")
	}
}

func TestRegisterReplacesInPlace(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(stubDescriptor("fallback"), PriorityGeneric); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(stubDescriptor("make"), PriorityDefault); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(stubDescriptor("cpp"), PriorityDefault); err != nil {
		t.Fatal(err)
	}

	replacement := stubDescriptor("make")
	replacement.MarkerFile = "GNUmakefile"
	// Requesting a different tier must not move the entry.
	if err := r.Register(replacement, PriorityUnique); err != nil {
		t.Fatal(err)
	}

	got := names(r)
	want := []string{"make", "cpp", "fallback"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order after replacement %v, want %v", got, want)
		}
	}
	if r.Named("make").MarkerFile != "GNUmakefile" {
		t.Error("replacement descriptor not installed")
	}

	// Replacing a generic entry keeps the generic flag.
	if err := r.Register(stubDescriptor("fallback"), PriorityDefault); err != nil {
		t.Fatal(err)
	}
	if !r.Named("fallback").Generic() {
		t.Error("replaced generic descriptor lost its tier flag")
	}
}

func TestDefaultSplicesBeforeGenerics(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(stubDescriptor("gen1"), PriorityGeneric); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(stubDescriptor("gen2"), PriorityGeneric); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(stubDescriptor("d1"), PriorityDefault); err != nil {
		t.Fatal(err)
	}
	if err := r.Register(stubDescriptor("d2"), PriorityDefault); err != nil {
		t.Fatal(err)
	}

	got := names(r)
	want := []string{"d1", "d2", "gen1", "gen2"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order %v, want %v", got, want)
		}
	}
}

func touch(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x\n"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDetectFirstMatchWins(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "Makefile.am"))
	touch(t, filepath.Join(dir, "Makefile"))

	r := NewRegistry()
	if err := Seed(r); err != nil {
		t.Fatal(err)
	}

	d := r.Detect(dir)
	if d == nil || d.Name != "automake" {
		t.Fatalf("detected %v, want automake", d)
	}

	// Trailing separators never change the answer.
	if d := r.Detect(dir + string(filepath.Separator)); d == nil || d.Name != "automake" {
		t.Fatalf("trailing-separator detection got %v, want automake", d)
	}
}

func TestDetectNoMatch(t *testing.T) {
	r := NewRegistry()
	if err := Seed(r); err != nil {
		t.Fatal(err)
	}
	if d := r.Detect(t.TempDir()); d != nil {
		t.Fatalf("empty dir should not detect, got %q", d.Name)
	}
}

func TestDetectKernelBeforeMake(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "Makefile"))
	touch(t, filepath.Join(dir, "scripts", "ver_linux"))

	r := NewRegistry()
	if err := Seed(r); err != nil {
		t.Fatal(err)
	}
	if d := r.Detect(dir); d == nil || d.Name != "linux" {
		t.Fatalf("kernel tree detected as %v, want linux", d)
	}

	// Without the kernel script the same marker falls through to make.
	plain := t.TempDir()
	touch(t, filepath.Join(plain, "Makefile"))
	if d := r.Detect(plain); d == nil || d.Name != "make" {
		t.Fatalf("plain tree detected as %v, want make", d)
	}
}

func TestDetectMatcherShortCircuit(t *testing.T) {
	dir := t.TempDir()

	d := stubDescriptor("matched")
	d.MarkerFile = "does-not-exist-anywhere"
	d.RootDirMatcher = staticMatcher{hit: dir}

	r := NewRegistry()
	if err := r.Register(d, PriorityGeneric); err != nil {
		t.Fatal(err)
	}
	if got := r.Detect(dir); got == nil || got.Name != "matched" {
		t.Fatalf("matcher hit should detect without marker, got %v", got)
	}
	if got := r.Detect(t.TempDir()); got != nil {
		t.Fatalf("matcher miss with absent marker should not detect, got %q", got.Name)
	}
}

type staticMatcher struct{ hit string }

func (m staticMatcher) Installed() bool               { return true }
func (m staticMatcher) Matches(candidate string) bool { return candidate == m.hit }

func TestRootForFileOutermostMarker(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "lib", "util")
	touch(t, filepath.Join(root, "Makefile.am"))
	touch(t, filepath.Join(root, "lib", "Makefile.am"))
	touch(t, filepath.Join(sub, "Makefile.am"))
	touch(t, filepath.Join(sub, "util.c"))

	r := NewRegistry()
	if err := Seed(r); err != nil {
		t.Fatal(err)
	}

	got, d := r.RootForFile(filepath.Join(sub, "util.c"))
	if d == nil || d.Name != "automake" {
		t.Fatalf("descriptor %v, want automake", d)
	}
	if got != root {
		t.Fatalf("root %q, want outermost %q", got, root)
	}
}

func TestRootForFileRootOnlyStopsAtNearest(t *testing.T) {
	outer := t.TempDir()
	inner := filepath.Join(outer, "vendor", "app")
	touch(t, filepath.Join(outer, "cedet-project.yml"))
	touch(t, filepath.Join(inner, "cedet-project.yml"))
	touch(t, filepath.Join(inner, "main.c"))

	r := NewRegistry()
	if err := Seed(r); err != nil {
		t.Fatal(err)
	}

	got, d := r.RootForFile(filepath.Join(inner, "main.c"))
	if d == nil || d.Name != "generic" {
		t.Fatalf("descriptor %v, want generic", d)
	}
	if got != inner {
		t.Fatalf("root %q, want nearest %q", got, inner)
	}
}

func TestRootForFileNoProject(t *testing.T) {
	r := NewRegistry()
	if err := Seed(r); err != nil {
		t.Fatal(err)
	}
	root, d := r.RootForFile(filepath.Join(t.TempDir(), "orphan.c"))
	if root != "" || d != nil {
		t.Fatalf("expected no project, got %q / %v", root, d)
	}
}

func TestSeedIdempotent(t *testing.T) {
	r := NewRegistry()
	if err := Seed(r); err != nil {
		t.Fatal(err)
	}
	before := names(r)
	if err := Seed(r); err != nil {
		t.Fatal(err)
	}
	after := names(r)
	if len(before) != len(after) {
		t.Fatalf("re-seeding changed registry size: %v -> %v", before, after)
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("re-seeding changed order: %v -> %v", before, after)
		}
	}
}
