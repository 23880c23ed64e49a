// Package testkit carries small helpers shared by tests and callers that
// need scratch space.
package testkit

import (
	"errors"
	"fmt"
	"os"
)

// ScratchDir resolves the scratch-directory convention: the TEST_TMPDIR
// environment variable names the directory; when unset, the platform's
// standard temp directory is used. It fails loudly when neither yields a
// usable directory rather than guessing.
func ScratchDir() (string, error) {
	dir := os.Getenv("TEST_TMPDIR")
	if dir == "" {
		dir = os.TempDir()
	}
	if dir == "" {
		return "", errors.New("TEST_TMPDIR is not set and no system temp directory is available")
	}
	info, err := os.Stat(dir)
	if err != nil {
		return "", fmt.Errorf("scratch directory %q: %w", dir, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("scratch directory %q is not a directory", dir)
	}
	return dir, nil
}
