// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Id int

const (
	NoProjectDetectedId Id = iota + 1
	UnsafeProjectTypeId
	CompilerNotFoundId
	ProbeFailedId
	ConfigLoadFailedId
	RegistryNotSeededId
)

type MarkdownMsg string

type HttpLink string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id       Id          // ID used to lookup the issue
	mdMsg    MarkdownMsg // Markdown text that will be rendered
	docLinks []HttpLink  // project documentation links
	extLinks []HttpLink  // external links that might be useful for the user
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) DocLinks() []HttpLink {
	return slices.Clone(i.docLinks)
}

func (i *Issue) ExtLinks() []HttpLink {
	return slices.Clone(i.extLinks)
}

func (i *Issue) Render(stylePath string) (string, error) {
	extraMd := ""
	if len(i.docLinks) > 0 || len(i.extLinks) > 0 {
		extraMd += "\n\n"
		extraMd += "## See also: "
		for _, link := range i.docLinks {
			extraMd += "- [" + string(link) + "]"
		}
		for _, link := range i.extLinks {
			extraMd += "- [" + string(link) + "]"
		}
	}
	return render(string(i.mdMsg)+extraMd, stylePath)
}

var (
	render = glamour.Render

	noProjectDetectedIssue = &Issue{
		id: NoProjectDetectedId,
		mdMsg: `
# No project detected!

None of the registered project types matched this directory.

## How detection works:
Each project type declares a marker file (for example ` + "`Project.ede`" + ` or
` + "`Makefile.am`" + `). Detection walks the registry in priority order and
returns the first type whose marker is present.

## Things you can try:
- Check which marker files the registry knows about:
~~~
$ cedet detect --explain <dir>
~~~

- Drop a generic project description into the tree:
~~~
$ cat > cedet-project.yml <<EOF
include_paths: [include, src]
macros:
  DEBUG: "1"
EOF
~~~

Without a project, files still parse with system-only flags.`,
	}

	unsafeProjectTypeIssue = &Issue{
		id: UnsafeProjectTypeId,
		mdMsg: `
# Refusing to auto-load an unsafe project type!

This project type's marker file can contain executable code, and the
directory has not been marked as trusted. Loading it automatically would
mean running code from an unreviewed tree.

## Things you can try:
- Review the marker file, then trust the directory:
~~~
$ cedet trust add /path/to/project
~~~

- List currently trusted directories:
~~~
$ cedet trust list
~~~

Trust decisions are stored in trust.toml in the cedet config directory.`,
	}

	compilerNotFoundIssue = &Issue{
		id: CompilerNotFoundId,
		mdMsg: `
# Compiler not found!

The configured compiler executable could not be located on PATH.

## Executables we look for:
- The ` + "`compiler`" + ` value from your config (default: gcc)
- The ` + "`fallback_cpp`" + ` preprocessor (default: cpp)

## Things you can try:
- Install a GCC-compatible toolchain
- Point the config at your compiler:
~~~
$ cedet config set compiler /opt/cross/bin/arm-none-eabi-gcc
~~~`,
	}

	probeFailedIssue = &Issue{
		id: ProbeFailedId,
		mdMsg: `
# Toolchain probe failed!

The compiler was found but its diagnostic output could not be collected
or parsed. Flag resolution continues with whatever facts are available
(possibly none), so parsing may miss system headers and macros.

## Things you can try:
- Run the probe by hand and inspect the output:
~~~
$ LC_ALL=C gcc -v -E -x c++ /dev/null
~~~

- Re-run with a fresh cache:
~~~
$ cedet probe --fresh
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load configuration!

Your config file contains syntax errors or invalid values.

## Things you can try:
- Check the error message above for the offending key
- Show the effective configuration:
~~~
$ cedet config show
~~~

- Remove the config file to fall back to defaults`,
	}

	registryNotSeededIssue = &Issue{
		id: RegistryNotSeededId,
		mdMsg: `
# Project-type registry not seeded!

A default-priority registration arrived before the registry was seeded
with its built-in project types. This is an initialization-order bug in
the calling program, not an environmental condition.

## Things you can try:
- Make sure projtype.Seed (or an equivalent unique/generic registration)
  runs before any default-priority Register call`,
	}

	issues = map[Id]*Issue{
		noProjectDetectedIssue.Id(): noProjectDetectedIssue,
		unsafeProjectTypeIssue.Id(): unsafeProjectTypeIssue,
		compilerNotFoundIssue.Id():  compilerNotFoundIssue,
		probeFailedIssue.Id():       probeFailedIssue,
		configLoadFailedIssue.Id():  configLoadFailedIssue,
		registryNotSeededIssue.Id(): registryNotSeededIssue,
	}
)

func Values() []*Issue {
	return maps.Values(issues)
}

func Get(id Id) *Issue {
	return issues[id]
}
