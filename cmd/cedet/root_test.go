// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yyr/cedet/internal/probe"
	"github.com/yyr/cedet/internal/project"
	"github.com/yyr/cedet/internal/projtype"
)

func TestGetVersionString(t *testing.T) {
	// Not parallel: subtests mutate package-level Version/Commit/BuildDate vars.

	t.Run("ldflags version takes priority", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "v1.2.3"
		Commit = "abc1234"
		BuildDate = "2025-06-15T10:00:00Z"

		got := getVersionString()
		want := "v1.2.3 (commit: abc1234, built: 2025-06-15T10:00:00Z)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})

	t.Run("fallback to dev when no build info", func(t *testing.T) {
		origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
		t.Cleanup(func() {
			Version, Commit, BuildDate = origVersion, origCommit, origBuildDate
		})

		Version = "dev"
		Commit = "unknown"
		BuildDate = "unknown"

		got := getVersionString()
		want := "dev (built from source)"
		if got != want {
			t.Errorf("getVersionString() = %q, want %q", got, want)
		}
	})
}

func testApp(t *testing.T) (*App, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	app := NewApp(Dependencies{
		Registry: projtype.NewRegistry(),
		Projects: project.NewList(),
		Cache:    probe.NewCache(),
		Stdout:   &out,
		Stderr:   &bytes.Buffer{},
	})
	return app, &out
}

func TestRunDetect(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Makefile.am"), []byte("SUBDIRS = src\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	app, out := testApp(t)
	if err := runDetect(app, dir, false); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "automake") {
		t.Fatalf("output %q should name the detected type", out.String())
	}
}

func TestRunDetectNoMatchExitsNonzero(t *testing.T) {
	app, _ := testApp(t)
	err := runDetect(app, t.TempDir(), false)

	exitErr, ok := err.(*ExitError)
	if !ok || exitErr.Code != 1 {
		t.Fatalf("expected ExitError code 1, got %v", err)
	}
}

func TestRunDetectExplainListsAllTypes(t *testing.T) {
	app, out := testApp(t)
	if err := runDetect(app, t.TempDir(), true); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"ede", "automake", "make", "linux", "emacs", "generic"} {
		if !strings.Contains(out.String(), name) {
			t.Errorf("explain output missing type %q", name)
		}
	}
}

func TestRunRootFor(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "src")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "Makefile"), []byte("all:\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	file := filepath.Join(sub, "main.c")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	app, out := testApp(t)
	if err := runRootFor(app, file); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), root) {
		t.Fatalf("output %q should carry the project root %q", out.String(), root)
	}
}
