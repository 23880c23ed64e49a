package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32 // просто ID источника
	// FileFlags encodes metadata about a source file.
	FileFlags uint8 // метаданные
)

const (
	// FileVirtual indicates the file was added from memory (generated source, test, etc.).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
	// FileBroken indicates decoding stopped early; Text holds only the
	// successfully decoded prefix.
	FileBroken
)

// File captures metadata and decoded content for a single source file.
// Text is always UTF-8 regardless of the on-disk encoding.
type File struct {
	ID      FileID
	Path    string
	Text    []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}

// LineCol converts a byte offset into Text to a 1-based line/column pair.
func (f *File) LineCol(off uint32) LineCol {
	return toLineCol(f.LineIdx, off)
}

// Broken reports whether the file failed to decode fully.
func (f *File) Broken() bool {
	return f.Flags&FileBroken != 0
}
