package engine

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"
)

// Current schema version - increment when UnitPayload format changes
const unitSchemaVersion uint16 = 1

// UnitPayload is the artifact written per cleanly compiled unit.
type UnitPayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	Name    string
	Source  string
	Hash    string // hex sha256 of the decoded text
	Options []string
}

// WriteUnit serializes a unit artifact under dir as "<name>.unit". The
// write goes through a temp file and an atomic rename so a concurrent
// reader never sees a torn artifact.
func WriteUnit(dir string, payload *UnitPayload) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	p := filepath.Join(dir, payload.Name+".unit")
	f, err := os.CreateTemp(dir, "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if rmErr := os.Remove(f.Name()); rmErr != nil && !os.IsNotExist(rmErr) {
			fmt.Fprintf(os.Stderr, "failed to remove temp file: %v\n", rmErr)
		}
	}()

	enc := msgpack.NewEncoder(f)
	if err := enc.Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// ReadUnit loads a unit artifact back; schema mismatches read as absent.
func ReadUnit(path string) (*UnitPayload, bool, error) {
	raw, err := os.ReadFile(path) // #nosec G304 -- artifact path derives from ClassOutput
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var payload UnitPayload
	if err := msgpack.Unmarshal(raw, &payload); err != nil {
		return nil, false, err
	}
	if payload.Schema != unitSchemaVersion {
		return nil, false, nil
	}
	return &payload, true, nil
}

// HashString renders a content hash the way artifacts store it.
func HashString(hash [32]byte) string {
	return hex.EncodeToString(hash[:])
}
