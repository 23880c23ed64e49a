package compile

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"buildjar/internal/charset"
	"buildjar/internal/diag"
)

// Current schema version - increment when CachePayload format changes
const cacheSchemaVersion uint16 = 1

// Digest fingerprints one invocation.
type Digest [32]byte

// DiskCache stores invocation outcomes by fingerprint so unchanged inputs
// can skip a recompilation. Compile never consults it implicitly; callers
// opt in. Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// CachedDiagnostic is the serialisable form of one diagnostic.
type CachedDiagnostic struct {
	Kind    uint8
	Code    uint16
	Message string
	Path    string
	Line    uint32
	Col     uint32
}

// CachePayload stores a cached invocation outcome.
type CachePayload struct {
	// Schema version for safe invalidation when format changes
	Schema uint16

	Ok          bool
	Encoding    string
	Diagnostics []CachedDiagnostic
}

// OpenDiskCache initializes and returns a disk cache at the standard
// location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt initializes a disk cache rooted at an explicit directory.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// Подкаталог "results" — для удобства читаемости/очистки.
	return filepath.Join(c.dir, "results", hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key Digest, payload *CachePayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
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

// Get reads and deserializes a payload from the disk cache. The bool result
// reports whether a payload with the current schema was found.
func (c *DiskCache) Get(key Digest, out *CachePayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	raw, err := os.ReadFile(c.pathFor(key)) // #nosec G304 -- path derives from the cache root
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if err := msgpack.Unmarshal(raw, out); err != nil {
		return false, err
	}
	if out.Schema != cacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// Fingerprint hashes everything that determines an invocation outcome:
// the resolved charset, the raw options, and the ordered source paths with
// their current contents. Output locations are excluded; they do not
// change diagnostics.
func Fingerprint(args *Arguments) (Digest, error) {
	var key Digest
	cs, _, err := charset.Resolve(args.Options())
	if err != nil {
		return key, err
	}

	h := sha256.New()
	_, _ = io.WriteString(h, "buildjar/result/v1\n")
	_, _ = io.WriteString(h, cs.Name()+"\n")
	for _, opt := range args.Options() {
		_, _ = io.WriteString(h, "opt:"+opt+"\n")
	}
	for _, path := range args.SourceFiles() {
		raw, readErr := os.ReadFile(path) // #nosec G304 -- path comes from the invocation arguments
		if readErr != nil {
			return key, fmt.Errorf("fingerprint %s: %w", path, readErr)
		}
		_, _ = io.WriteString(h, "src:"+path+"\n")
		_, _ = h.Write(raw)
	}
	copy(key[:], h.Sum(nil))
	return key, nil
}

// PayloadFromResult converts a live result into its cacheable form.
func PayloadFromResult(res *Result) *CachePayload {
	payload := &CachePayload{
		Schema:   cacheSchemaVersion,
		Ok:       res.Ok(),
		Encoding: res.Session().FileManager().EncodingName(),
	}
	for _, d := range res.Diagnostics() {
		payload.Diagnostics = append(payload.Diagnostics, CachedDiagnostic{
			Kind:    uint8(d.Kind),
			Code:    uint16(d.Code),
			Message: d.Message,
			Path:    d.Pos.Path,
			Line:    d.Pos.Line,
			Col:     d.Pos.Col,
		})
	}
	return payload
}

// Diags converts cached diagnostics back into the live form.
func (p *CachePayload) Diags() []diag.Diagnostic {
	out := make([]diag.Diagnostic, 0, len(p.Diagnostics))
	for _, d := range p.Diagnostics {
		out = append(out, diag.Diagnostic{
			Kind:    diag.Kind(d.Kind),
			Code:    diag.Code(d.Code),
			Message: d.Message,
			Pos:     diag.Pos{Path: d.Path, Line: d.Line, Col: d.Col},
		})
	}
	return out
}
