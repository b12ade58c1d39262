// SPDX-License-Identifier: MPL-2.0

package project

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadEDE(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, EDEMarkerFile), `;; EDE Project Files are auto generated: Do Not Edit
(ede-proj-project "app"
  :name "my-app"
  :include-path '("/include" "src")
  :system-include-path '("/opt/vendor/include")
  :spp-table '(("DEBUG" . "1") ("STANDALONE")))
`)

	p, err := LoadEDE(root)
	if err != nil {
		t.Fatalf("LoadEDE failed: %v", err)
	}

	cpp, ok := p.(*CppRootProject)
	if !ok {
		t.Fatalf("expected *CppRootProject, got %T", p)
	}
	if cpp.Name() != "my-app" {
		t.Errorf("expected name my-app, got %s", cpp.Name())
	}
	if cpp.Root() != root {
		t.Errorf("expected root %s, got %s", root, cpp.Root())
	}

	wantIncludes := []string{"/include", "/src"}
	if len(cpp.IncludePaths) != len(wantIncludes) {
		t.Fatalf("expected includes %v, got %v", wantIncludes, cpp.IncludePaths)
	}
	for i, want := range wantIncludes {
		if cpp.IncludePaths[i] != want {
			t.Errorf("include[%d] = %q, want %q", i, cpp.IncludePaths[i], want)
		}
	}

	if len(cpp.SystemIncludePaths) != 1 || cpp.SystemIncludePaths[0] != "/opt/vendor/include" {
		t.Errorf("unexpected system includes: %v", cpp.SystemIncludePaths)
	}

	if len(cpp.Macros) != 2 {
		t.Fatalf("expected 2 macros, got %v", cpp.Macros)
	}
	if cpp.Macros[0] != (Macro{Name: "DEBUG", Value: "1"}) {
		t.Errorf("unexpected first macro: %+v", cpp.Macros[0])
	}
	if cpp.Macros[1] != (Macro{Name: "STANDALONE", Value: ""}) {
		t.Errorf("unexpected second macro: %+v", cpp.Macros[1])
	}
}

func TestLoadEDEDefaultsNameToDirectory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, EDEMarkerFile), `(ede-proj-project "x")`)

	p, err := LoadEDE(root)
	if err != nil {
		t.Fatal(err)
	}
	if p.Name() != filepath.Base(root) {
		t.Errorf("expected directory-derived name, got %s", p.Name())
	}
}

func TestLoadAutomake(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, AutomakeMarkerFile), `# generated
AM_CPPFLAGS = -I$(top_srcdir)/include -DPACKAGE=1
AM_CPPFLAGS += -DEXTRA
bin_PROGRAMS = tool
tool_CPPFLAGS = -Isrc -DTOOL_MAIN
tool_SOURCES = main.c \
	util.c
`)

	p, err := LoadAutomake(root)
	if err != nil {
		t.Fatalf("LoadAutomake failed: %v", err)
	}

	mk, ok := p.(*MakeProject)
	if !ok {
		t.Fatalf("expected *MakeProject, got %T", p)
	}

	want := "-I$(top_srcdir)/include -DPACKAGE=1 -DEXTRA"
	if mk.Variables["AM_CPPFLAGS"] != want {
		t.Errorf("AM_CPPFLAGS = %q, want %q", mk.Variables["AM_CPPFLAGS"], want)
	}
	if mk.Variables["tool_SOURCES"] != "main.c util.c" {
		t.Errorf("continuation join failed: %q", mk.Variables["tool_SOURCES"])
	}

	tgt := mk.TargetNamed("tool")
	if tgt == nil {
		t.Fatal("expected target 'tool'")
	}
	if tgt.Vars["CPPFLAGS"] != "-Isrc -DTOOL_MAIN" {
		t.Errorf("tool CPPFLAGS = %q", tgt.Vars["CPPFLAGS"])
	}
}

func TestLoadMakePlainAssignReplaces(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, MakeMarkerFile), `CFLAGS = -O0
CFLAGS = -O2 -Iinclude
all:
	$(CC) $(CFLAGS) main.c
`)

	p, err := LoadMake(root)
	if err != nil {
		t.Fatal(err)
	}
	mk := p.(*MakeProject)
	if mk.Variables["CFLAGS"] != "-O2 -Iinclude" {
		t.Errorf("plain reassignment should replace, got %q", mk.Variables["CFLAGS"])
	}
}

func TestLoadLinux(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Makefile"), `VERSION = 6
PATCHLEVEL = 1
SUBLEVEL = 55
NAME = Curry Ramen
`)
	writeFile(t, filepath.Join(root, "scripts", "ver_linux"), "#!/bin/sh\n")
	if err := os.MkdirAll(filepath.Join(root, "include"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(root, "arch", "x86", "include"), 0o755); err != nil {
		t.Fatal(err)
	}

	if !DetectKernelTree(root) {
		t.Fatal("expected kernel tree detection to succeed")
	}

	p, err := LoadLinux(root)
	if err != nil {
		t.Fatalf("LoadLinux failed: %v", err)
	}
	kp := p.(*KernelProject)
	if kp.Version != "6.1.55" {
		t.Errorf("expected version 6.1.55, got %q", kp.Version)
	}
	if kp.Name() != "Linux 6.1.55" {
		t.Errorf("unexpected name %q", kp.Name())
	}
	if len(kp.IncludePaths) != 2 {
		t.Errorf("expected the two existing include dirs, got %v", kp.IncludePaths)
	}
}

func TestDetectKernelTreeRejectsPlainMakefiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Makefile"), "all:\n")
	if DetectKernelTree(root) {
		t.Error("a bare Makefile must not look like a kernel tree")
	}
}

func TestLoadGeneric(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, GenericMarkerFile), `name: widget
include_paths: [include, src/gen]
system_include_paths: [/opt/widget/include]
macros:
  - DEBUG=1
  - STANDALONE
targets:
  - name: lib
    vars:
      CPPFLAGS: -Ilib/include
`)

	p, err := LoadGeneric(root)
	if err != nil {
		t.Fatalf("LoadGeneric failed: %v", err)
	}
	cpp := p.(*CppRootProject)

	if cpp.Name() != "widget" {
		t.Errorf("expected name widget, got %s", cpp.Name())
	}
	if len(cpp.IncludePaths) != 2 || cpp.IncludePaths[0] != "/include" || cpp.IncludePaths[1] != "/src/gen" {
		t.Errorf("unexpected include paths: %v", cpp.IncludePaths)
	}
	if len(cpp.Macros) != 2 || cpp.Macros[0].Value != "1" || cpp.Macros[1].Name != "STANDALONE" {
		t.Errorf("unexpected macros: %v", cpp.Macros)
	}
	if tgt := cpp.TargetNamed("lib"); tgt == nil || tgt.Vars["CPPFLAGS"] != "-Ilib/include" {
		t.Errorf("unexpected target table: %+v", cpp.Targets)
	}
}

func TestListAddReplacesByRoot(t *testing.T) {
	l := NewList()

	l.Add(NewCppRootProject("one", "/src/app"))
	l.Add(NewCppRootProject("two", "/src/app"))
	l.Add(NewCppRootProject("other", "/src/other"))

	all := l.All()
	if len(all) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(all))
	}
	if all[0].Name() != "two" {
		t.Errorf("expected same-root registration to replace, got %s", all[0].Name())
	}
}

func TestListFindByDir(t *testing.T) {
	l := NewList()
	outer := NewCppRootProject("outer", "/src/app")
	inner := NewCppRootProject("inner", "/src/app/vendor")
	l.Add(outer)
	l.Add(inner)

	if got := l.FindByDir("/src/app/vendor/pkg"); got != inner {
		t.Errorf("expected deepest root to win, got %v", got)
	}
	if got := l.FindByDir("/src/app/cmd"); got != outer {
		t.Errorf("expected outer project, got %v", got)
	}
	if got := l.FindByDir("/elsewhere"); got != nil {
		t.Errorf("expected nil outside all roots, got %v", got)
	}
	if got := l.FindByDir("/src/application"); got != nil {
		t.Error("prefix match must respect path component boundaries")
	}
}
