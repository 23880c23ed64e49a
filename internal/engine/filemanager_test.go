package engine

import (
	"os"
	"path/filepath"
	"testing"

	"buildjar/internal/charset"
	"buildjar/internal/diag"
	"buildjar/internal/source"
)

func TestDecoderIgnoresHint(t *testing.T) {
	fm := NewFileManager(charset.Default(), false, nil, source.NewFileSet())

	// Подсказка от вызывающего кода не влияет на уже разрешённую кодировку.
	for _, hint := range []string{"", "UTF-16", "ISO-8859-1", "garbage"} {
		if got := fm.Decoder(hint).Name(); got != "UTF-8" {
			t.Errorf("Decoder(%q) = %q, want UTF-8", hint, got)
		}
	}
}

func TestDecoderIgnoresHintExplicitEncoding(t *testing.T) {
	cs, err := charset.Lookup("ISO-8859-1")
	if err != nil {
		t.Fatal(err)
	}
	fm := NewFileManager(cs, true, nil, source.NewFileSet())

	if !fm.Explicit() {
		t.Error("expected explicit encoding")
	}
	for _, hint := range []string{"", "UTF-8", "UTF-16"} {
		if got := fm.Decoder(hint).Name(); got != "ISO-8859-1" {
			t.Errorf("Decoder(%q) = %q, want ISO-8859-1", hint, got)
		}
	}
}

func TestLoadStripsUTF8BOM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Bom.java")
	content := append([]byte{0xEF, 0xBB, 0xBF}, []byte("class Bom { }\n")...)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	fs := source.NewFileSet()
	fm := NewFileManager(charset.Default(), false, nil, fs)
	id, ok := fm.Load(path)
	if !ok {
		t.Fatal("expected clean load")
	}
	f := fs.Get(id)
	if f.Flags&source.FileHadBOM == 0 {
		t.Error("expected FileHadBOM flag")
	}
	if string(f.Text) != "class Bom { }\n" {
		t.Errorf("BOM left in text: %q", f.Text)
	}
}

func TestLoadUnmappableByteReportsErrorWithPrefix(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Latin.java")
	// 0xF6 is ö in ISO-8859-1 but not a valid UTF-8 byte.
	if err := os.WriteFile(path, []byte{'/', '/', ' ', 'c', 'a', 'f', 0xF6, '\n'}, 0o644); err != nil {
		t.Fatal(err)
	}

	col := diag.NewCollector()
	fs := source.NewFileSet()
	fm := NewFileManager(charset.Default(), false, diag.CollectorReporter{Collector: col}, fs)

	id, ok := fm.Load(path)
	if ok {
		t.Fatal("expected decode failure")
	}
	f := fs.Get(id)
	if !f.Broken() {
		t.Error("expected FileBroken flag")
	}
	if string(f.Text) != "// caf" {
		t.Errorf("decoded prefix = %q, want %q", f.Text, "// caf")
	}

	if col.Len() != 1 {
		t.Fatalf("expected 1 diagnostic, got %d", col.Len())
	}
	d := col.Items()[0]
	if d.Kind != diag.KindError || d.Code != diag.DecodeUnmappableChar {
		t.Errorf("diagnostic = %v", d)
	}
	if d.Pos.Line != 1 || d.Pos.Col != 7 {
		t.Errorf("position = %d:%d, want 1:7", d.Pos.Line, d.Pos.Col)
	}
}

func TestLoadMissingFileReportsError(t *testing.T) {
	col := diag.NewCollector()
	fm := NewFileManager(charset.Default(), false, diag.CollectorReporter{Collector: col}, source.NewFileSet())

	_, ok := fm.Load(filepath.Join(t.TempDir(), "absent.java"))
	if ok {
		t.Fatal("expected load failure")
	}
	if col.Len() != 1 || col.Items()[0].Code != diag.DecodeUnreadableFile {
		t.Errorf("diagnostics = %v", col.Items())
	}
}

func TestPrefixPosMultiline(t *testing.T) {
	pos := prefixPos("x.java", []byte("line one\nli"))
	if pos.Line != 2 || pos.Col != 3 {
		t.Errorf("pos = %d:%d, want 2:3", pos.Line, pos.Col)
	}
}
