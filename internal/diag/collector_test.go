package diag

import (
	"strings"
	"testing"
)

func TestCollectorPreservesEmissionOrder(t *testing.T) {
	c := NewCollector()
	c.Add(NewWarning(DecodeEmptySourceFile, Pos{Path: "a"}, "first"))
	c.Add(NewError(ChkMissingDeclaration, Pos{Path: "b"}, "second"))
	c.Add(NewError(ChkMissingDeclaration, Pos{Path: "b"}, "second")) // duplicate stays

	items := c.Items()
	if len(items) != 3 {
		t.Fatalf("expected 3 diagnostics, got %d", len(items))
	}
	if items[0].Message != "first" || items[1].Message != "second" || items[2].Message != "second" {
		t.Fatalf("emission order not preserved: %+v", items)
	}
}

func TestCollectorSeal(t *testing.T) {
	c := NewCollector()
	if !c.Add(NewError(UnknownCode, Pos{}, "before seal")) {
		t.Fatal("Add before seal should succeed")
	}
	c.Seal()
	if c.Add(NewError(UnknownCode, Pos{}, "after seal")) {
		t.Fatal("Add after seal should be rejected")
	}
	if c.Len() != 1 {
		t.Fatalf("expected 1 diagnostic after seal, got %d", c.Len())
	}
	if !c.Sealed() {
		t.Fatal("collector should report sealed")
	}
}

func TestCollectorHasErrors(t *testing.T) {
	c := NewCollector()
	c.Add(NewWarning(DecodeEmptySourceFile, Pos{}, "warning only"))
	if c.HasErrors() {
		t.Fatal("warnings must not count as errors")
	}
	if !c.HasWarnings() {
		t.Fatal("expected HasWarnings")
	}
	c.Add(NewError(ChkMissingDeclaration, Pos{}, "boom"))
	if !c.HasErrors() {
		t.Fatal("expected HasErrors after an ERROR diagnostic")
	}
}

func TestCollectorSnapshotIsIndependent(t *testing.T) {
	c := NewCollector()
	c.Add(NewError(UnknownCode, Pos{}, "one"))
	snap := c.Snapshot()
	c.Add(NewError(UnknownCode, Pos{}, "two"))
	if len(snap) != 1 {
		t.Fatalf("snapshot must not track later additions, got %d items", len(snap))
	}
}

func TestDiagnosticFormat(t *testing.T) {
	d := NewError(DecodeUnmappableChar,
		Pos{Path: "Test.java", Line: 3, Col: 7},
		"unmappable character (0xf6) for encoding UTF-8")
	got := d.Format()
	if !strings.Contains(got, "ERROR") {
		t.Fatalf("formatted text missing kind: %q", got)
	}
	if !strings.Contains(got, "Test.java:3:7") {
		t.Fatalf("formatted text missing position: %q", got)
	}
	if !strings.Contains(strings.ToLower(got), "unmappable character (0xf6)") {
		t.Fatalf("formatted text missing message: %q", got)
	}

	noPos := NewError(EngineFailure, Pos{}, "engine boom")
	if got := noPos.Format(); got != "ERROR: engine boom" {
		t.Fatalf("position-free format wrong: %q", got)
	}
}

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		KindError:   "ERROR",
		KindWarning: "WARNING",
		KindNote:    "NOTE",
		KindOther:   "OTHER",
	}
	for k, want := range cases {
		if k.String() != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, k.String(), want)
		}
	}
}

func TestCodeID(t *testing.T) {
	if got := DecodeUnmappableChar.ID(); got != "DEC2001" {
		t.Fatalf("DecodeUnmappableChar.ID() = %q", got)
	}
	if got := EngineFailure.ID(); got != "ENG9001" {
		t.Fatalf("EngineFailure.ID() = %q", got)
	}
	if got := UnknownCode.ID(); got != "E0000" {
		t.Fatalf("UnknownCode.ID() = %q", got)
	}
}
