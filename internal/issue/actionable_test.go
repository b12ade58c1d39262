// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"
)

func TestActionableErrorMessage(t *testing.T) {
	cause := errors.New("exec: \"gcc\": executable file not found in $PATH")

	err := NewErrorContext().
		WithOperation("probe toolchain").
		WithResource("gcc").
		Wrap(cause).
		Build()

	want := "failed to probe toolchain: gcc: exec: \"gcc\": executable file not found in $PATH"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the wrapped cause")
	}
}

func TestActionableErrorFormat(t *testing.T) {
	err := NewErrorContext().
		WithOperation("load project").
		WithResource("/src/tree").
		WithSuggestion("Run 'cedet trust add /src/tree'").
		WithSuggestion("Review the marker file first").
		Wrap(errors.New("directory not trusted")).
		Build()

	short := err.Format(false)
	if !strings.Contains(short, "• Run 'cedet trust add /src/tree'") {
		t.Errorf("expected suggestion bullet in output, got:\n%s", short)
	}
	if strings.Contains(short, "Error chain:") {
		t.Error("non-verbose format should not include the error chain")
	}

	long := err.Format(true)
	if !strings.Contains(long, "Error chain:") {
		t.Error("verbose format should include the error chain")
	}
	if !strings.Contains(long, "1. directory not trusted") {
		t.Errorf("verbose format should enumerate causes, got:\n%s", long)
	}
}

func TestErrorContextRequiresOperation(t *testing.T) {
	if err := NewErrorContext().WithResource("x").Build(); err != nil {
		t.Error("expected nil ActionableError when no operation is set")
	}
	if err := NewErrorContext().BuildError(); err != nil {
		t.Error("expected nil error when no operation is set")
	}
}

func TestWrapHelpers(t *testing.T) {
	if WrapWithOperation(nil, "anything") != nil {
		t.Error("WrapWithOperation(nil) should return nil")
	}
	if WrapWithContext(nil, "anything", "res") != nil {
		t.Error("WrapWithContext(nil) should return nil")
	}

	cause := errors.New("boom")
	err := WrapWithContext(cause, "parse macro dump", "cpp")
	if err.Resource != "cpp" || !errors.Is(err, cause) {
		t.Errorf("unexpected wrapped error: %+v", err)
	}
}

func TestIssueLookup(t *testing.T) {
	for _, id := range []Id{NoProjectDetectedId, UnsafeProjectTypeId, CompilerNotFoundId, ProbeFailedId, ConfigLoadFailedId, RegistryNotSeededId} {
		iss := Get(id)
		if iss == nil {
			t.Fatalf("no issue registered for id %d", id)
		}
		if iss.MarkdownMsg() == "" {
			t.Errorf("issue %d has empty markdown message", id)
		}
	}
	if len(Values()) != 6 {
		t.Errorf("expected 6 issues, got %d", len(Values()))
	}
}
