// Package config loads the optional buildjar.toml manifest that supplies
// CLI defaults. Explicit flags always win over manifest values.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Manifest is a located and parsed buildjar.toml.
type Manifest struct {
	Path   string
	Root   string
	Config File
}

// File mirrors the TOML structure.
type File struct {
	Compile CompileConfig `toml:"compile"`
}

// CompileConfig carries defaults for the compile command.
type CompileConfig struct {
	Options       []string `toml:"options"`
	Encoding      string   `toml:"encoding"`
	ClassOutput   string   `toml:"class_output"`
	SourceOutput  string   `toml:"source_output"`
	ClassPath     []string `toml:"classpath"`
	BootClassPath []string `toml:"bootclasspath"`
	SourcePath    []string `toml:"sourcepath"`
	ProcessorPath []string `toml:"processorpath"`
}

func findManifest(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "buildjar.toml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load walks up from startDir looking for buildjar.toml. The boolean
// reports whether a manifest was found at all.
func Load(startDir string) (*Manifest, bool, error) {
	path, ok, err := findManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	cfg, err := loadFile(path)
	if err != nil {
		return nil, true, err
	}
	return &Manifest{
		Path:   path,
		Root:   filepath.Dir(path),
		Config: cfg,
	}, true, nil
}

func loadFile(path string) (File, error) {
	var cfg File
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return File{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	return cfg, nil
}
