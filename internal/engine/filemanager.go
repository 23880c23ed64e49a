package engine

import (
	"bytes"
	"os"

	"buildjar/internal/charset"
	"buildjar/internal/diag"
	"buildjar/internal/source"
)

// FileManager loads and decodes source files for one session. The charset
// is fixed when the session is built and applied uniformly to every read.
type FileManager struct {
	cs       charset.Charset
	explicit bool
	reporter diag.Reporter
	fs       *source.FileSet
}

func NewFileManager(cs charset.Charset, explicit bool, reporter diag.Reporter, fs *source.FileSet) *FileManager {
	if reporter == nil {
		reporter = diag.NopReporter{}
	}
	return &FileManager{cs: cs, explicit: explicit, reporter: reporter, fs: fs}
}

// EncodingName returns the resolved charset name, verbatim as requested.
func (m *FileManager) EncodingName() string {
	return m.cs.Name()
}

// Explicit reports whether the charset came from an explicit encoding
// option rather than the tool default.
func (m *FileManager) Explicit() bool {
	return m.explicit
}

// Charset returns the resolved charset.
func (m *FileManager) Charset() charset.Charset {
	return m.cs
}

// Decoder returns the charset used to decode sources. The hint parameter
// exists for callers probing fallback behaviour; it is never honored,
// because the charset was resolved once for the whole invocation: an
// explicit encoding option must not be overridden, and the default must not
// be swapped for a late hint. An empty hint means "no charset specified".
func (m *FileManager) Decoder(hint string) charset.Charset {
	_ = hint
	return m.cs
}

// Load reads and decodes one source file into the session file set. Decode
// failures are reported as diagnostics, never returned as errors; the bool
// result reports whether the file decoded cleanly.
func (m *FileManager) Load(path string) (source.FileID, bool) {
	raw, err := os.ReadFile(path) // #nosec G304 -- path comes from the invocation arguments
	if err != nil {
		m.reporter.Report(diag.KindError, diag.DecodeUnreadableFile, diag.Pos{Path: path},
			"cannot read source file: "+err.Error())
		return 0, false
	}

	flags := source.FileFlags(0)
	if m.cs.IsUTF8() {
		var hadBOM bool
		raw, hadBOM = source.RemoveBOM(raw)
		if hadBOM {
			flags |= source.FileHadBOM
		}
	}

	text, bad := m.cs.Decode(raw)
	if bad != nil {
		pos := prefixPos(path, text)
		m.reporter.Report(diag.KindError, diag.DecodeUnmappableChar, pos, bad.Error())
		id := m.fs.Add(path, text, flags|source.FileBroken)
		return id, false
	}
	return m.fs.Add(path, text, flags), true
}

// prefixPos points at the first byte past the successfully decoded prefix.
func prefixPos(path string, prefix []byte) diag.Pos {
	line := uint32(1) + uint32(bytes.Count(prefix, []byte{'\n'}))
	col := uint32(len(prefix)) + 1
	if i := bytes.LastIndexByte(prefix, '\n'); i >= 0 {
		col = uint32(len(prefix)-i-1) + 1
	}
	return diag.Pos{Path: path, Line: line, Col: col}
}
