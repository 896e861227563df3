package diagnostics

import (
	"bytes"
	"strings"
	"testing"

	"github.com/filterspirit/filterspirit/sourcemap"
)

func TestStoreHasErrors(t *testing.T) {
	s := NewStore()
	if s.HasErrors() {
		t.Fatalf("empty store should not have errors")
	}
	s.Warning(TypeMismatch, nil, "just a warning")
	if s.HasErrors() {
		t.Fatalf("a warning alone should not count as an error")
	}
	s.Error(NoSuchName, nil, "name %q not found", "foo")
	if !s.HasErrors() {
		t.Fatalf("expected HasErrors true after Error()")
	}
}

func TestFailedRespectsWarnAsError(t *testing.T) {
	s := NewStore()
	s.Warning(FontSizeOutsideRange, nil, "size out of range")
	if s.Failed(false) {
		t.Errorf("Failed(false) should be false with only a warning")
	}
	if !s.Failed(true) {
		t.Errorf("Failed(true) should be true once warnings count as errors")
	}
}

func TestErrorWithNote(t *testing.T) {
	s := NewStore()
	origin := sourcemap.Range{Start: 0, Len: 3}
	noteOrigin := sourcemap.Range{Start: 10, Len: 3}
	s.ErrorWithNote(ConditionRedefinition, &origin, "condition redefined", &noteOrigin, "first defined here")
	all := s.All()
	if len(all) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(all))
	}
	if len(all[0].Related) != 1 || all[0].Related[0].Message != "first defined here" {
		t.Fatalf("related note missing or wrong: %+v", all[0])
	}
}

func TestMerge(t *testing.T) {
	a := NewStore()
	a.Error(NoSuchName, nil, "a")
	b := NewStore()
	b.Error(TypeMismatch, nil, "b")
	a.Merge(b)
	if len(a.All()) != 2 {
		t.Fatalf("got %d diagnostics after merge, want 2", len(a.All()))
	}
	// merging nil is a no-op
	a.Merge(nil)
	if len(a.All()) != 2 {
		t.Fatalf("merging nil should not change the store")
	}
}

func TestPrintIncludesUnderline(t *testing.T) {
	sm := sourcemap.New("ItemLevel >= BAD\nShow")
	s := NewStore()
	origin := sourcemap.Range{Start: 13, Len: 3}
	s.Error(TypeMismatch, &origin, "expected an integer, got %q", "BAD")

	var buf bytes.Buffer
	Print(&buf, sm, s.All())
	out := buf.String()
	if !strings.Contains(out, "error: expected an integer") {
		t.Errorf("output missing message: %q", out)
	}
	if !strings.Contains(out, "ItemLevel >= BAD") {
		t.Errorf("output missing source line: %q", out)
	}
	if !strings.Contains(out, "~~~") {
		t.Errorf("output missing underline: %q", out)
	}
}

func TestSeverityString(t *testing.T) {
	cases := map[Severity]string{Note: "note", Warning: "warning", Error: "error"}
	for sev, want := range cases {
		if got := sev.String(); got != want {
			t.Errorf("Severity(%d).String() = %q, want %q", sev, got, want)
		}
	}
}
