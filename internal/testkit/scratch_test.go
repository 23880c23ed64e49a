package testkit

import (
	"os"
	"path/filepath"
	"testing"
)

func TestScratchDirPrefersEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TEST_TMPDIR", dir)

	got, err := ScratchDir()
	if err != nil {
		t.Fatal(err)
	}
	if got != dir {
		t.Errorf("ScratchDir() = %q, want %q", got, dir)
	}
}

func TestScratchDirFallsBackToSystemTemp(t *testing.T) {
	t.Setenv("TEST_TMPDIR", "")

	got, err := ScratchDir()
	if err != nil {
		t.Fatal(err)
	}
	if got == "" {
		t.Fatal("expected a non-empty directory")
	}
}

func TestScratchDirRejectsMissingDir(t *testing.T) {
	t.Setenv("TEST_TMPDIR", filepath.Join(t.TempDir(), "does-not-exist"))

	if _, err := ScratchDir(); err == nil {
		t.Fatal("expected an error for a missing directory")
	}
}

func TestScratchDirRejectsFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "plain")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TEST_TMPDIR", file)

	if _, err := ScratchDir(); err == nil {
		t.Fatal("expected an error for a non-directory")
	}
}
