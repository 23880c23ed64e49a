package source

import (
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("Test.java", []byte("hello world"), 0)
	if id1 != 0 {
		t.Errorf("Expected first FileID to be 0, got %d", id1)
	}

	latestID, exists := fs.GetLatest("Test.java")
	if !exists {
		t.Error("Expected file to exist after Add")
	}
	if latestID != id1 {
		t.Errorf("Expected latest ID to be %d, got %d", id1, latestID)
	}

	// Re-adding the same path creates a new version with a new ID.
	id2 := fs.Add("Test.java", []byte("hello universe"), 0)
	if id2 != 1 {
		t.Errorf("Expected second FileID to be 1, got %d", id2)
	}

	latestID, exists = fs.GetLatest("Test.java")
	if !exists || latestID != id2 {
		t.Errorf("Expected latest ID to be %d, got %d (exists=%v)", id2, latestID, exists)
	}

	// The older version stays reachable by ID.
	if got := string(fs.Get(id1).Text); got != "hello world" {
		t.Errorf("Expected first file text 'hello world', got %q", got)
	}
	if got := string(fs.Get(id2).Text); got != "hello universe" {
		t.Errorf("Expected second file text 'hello universe', got %q", got)
	}
}

func TestFileSetHashDiffers(t *testing.T) {
	fs := NewFileSet()
	a := fs.Add("a.java", []byte("class A { }"), 0)
	b := fs.Add("b.java", []byte("class B { }"), 0)
	if fs.Get(a).Hash == fs.Get(b).Hash {
		t.Error("different content must hash differently")
	}
}

func TestNormalizeCRLFFlag(t *testing.T) {
	fs := NewFileSet()
	id := fs.Add("crlf.java", []byte("class A {\r\n}\r\n"), 0)
	f := fs.Get(id)
	if f.Flags&FileNormalizedCRLF == 0 {
		t.Error("expected FileNormalizedCRLF flag")
	}
	if string(f.Text) != "class A {\n}\n" {
		t.Errorf("CRLF not normalized: %q", f.Text)
	}
}

func TestRemoveBOM(t *testing.T) {
	content, had := RemoveBOM([]byte{0xEF, 0xBB, 0xBF, 'a'})
	if !had || string(content) != "a" {
		t.Errorf("BOM not stripped: had=%v content=%q", had, content)
	}
	content, had = RemoveBOM([]byte("ab"))
	if had || string(content) != "ab" {
		t.Errorf("short content mangled: had=%v content=%q", had, content)
	}
}

func TestLineCol(t *testing.T) {
	fs := NewFileSet()
	id := fs.Add("lines.java", []byte("a\nbb\nccc"), 0)
	f := fs.Get(id)

	cases := []struct {
		off  uint32
		line uint32
		col  uint32
	}{
		{0, 1, 1}, // 'a'
		{1, 1, 2}, // '\n' counts as end of line 1
		{2, 2, 1}, // 'b'
		{3, 2, 2}, // 'b'
		{5, 3, 1}, // 'c'
		{7, 3, 3}, // last 'c'
	}
	for _, tc := range cases {
		got := f.LineCol(tc.off)
		if got.Line != tc.line || got.Col != tc.col {
			t.Errorf("LineCol(%d) = %d:%d, want %d:%d", tc.off, got.Line, got.Col, tc.line, tc.col)
		}
	}
}

func TestLineColSingleLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.Add("one.java", []byte("class A { }"), 0))
	got := f.LineCol(6)
	if got.Line != 1 || got.Col != 7 {
		t.Errorf("LineCol(6) = %d:%d, want 1:7", got.Line, got.Col)
	}
}

func TestAddVirtual(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("Gen.java", []byte("class Gen { }"))
	if fs.Get(id).Flags&FileVirtual == 0 {
		t.Error("expected FileVirtual flag")
	}
}
