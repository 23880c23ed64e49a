package config

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleManifest = `[compile]
options = ["-g", "-encoding", "UTF-8"]
encoding = "UTF-8"
class_output = "out/classes"
source_output = "out/gen"
classpath = ["lib/a.jar", "lib/b.jar"]
processorpath = ["procs"]
`

func TestLoadParsesFields(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "buildjar.toml"), []byte(sampleManifest), 0o644); err != nil {
		t.Fatal(err)
	}

	m, ok, err := Load(dir)
	if err != nil || !ok {
		t.Fatalf("Load: ok=%v err=%v", ok, err)
	}
	if m.Root != dir {
		t.Errorf("root = %q, want %q", m.Root, dir)
	}

	c := m.Config.Compile
	if len(c.Options) != 3 || c.Options[0] != "-g" {
		t.Errorf("options = %v", c.Options)
	}
	if c.Encoding != "UTF-8" {
		t.Errorf("encoding = %q", c.Encoding)
	}
	if c.ClassOutput != "out/classes" || c.SourceOutput != "out/gen" {
		t.Errorf("outputs = %q, %q", c.ClassOutput, c.SourceOutput)
	}
	if len(c.ClassPath) != 2 || c.ClassPath[1] != "lib/b.jar" {
		t.Errorf("classpath = %v", c.ClassPath)
	}
	if len(c.ProcessorPath) != 1 || c.ProcessorPath[0] != "procs" {
		t.Errorf("processorpath = %v", c.ProcessorPath)
	}
}

func TestLoadWalksUp(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "buildjar.toml"), []byte(sampleManifest), 0o644); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	m, ok, err := Load(nested)
	if err != nil || !ok {
		t.Fatalf("Load: ok=%v err=%v", ok, err)
	}
	if m.Root != root {
		t.Errorf("root = %q, want %q", m.Root, root)
	}
}

func TestLoadNearestManifestWins(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "buildjar.toml"), []byte("[compile]\nencoding = \"UTF-8\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "sub")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(nested, "buildjar.toml"), []byte("[compile]\nencoding = \"ISO-8859-1\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	m, ok, err := Load(nested)
	if err != nil || !ok {
		t.Fatalf("Load: ok=%v err=%v", ok, err)
	}
	if m.Config.Compile.Encoding != "ISO-8859-1" {
		t.Errorf("encoding = %q, nearest manifest must win", m.Config.Compile.Encoding)
	}
}

func TestLoadMissingManifest(t *testing.T) {
	m, ok, err := Load(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if ok || m != nil {
		t.Errorf("expected no manifest: ok=%v m=%v", ok, m)
	}
}

func TestLoadMalformedManifest(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "buildjar.toml"), []byte("compile = not toml"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, ok, err := Load(dir)
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if !ok {
		t.Error("a malformed manifest is still a found manifest")
	}
}
