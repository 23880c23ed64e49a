package source

import (
	"crypto/sha256"
	"fmt"

	"fortio.org/safecast"
)

// FileSet manages the decoded source files of one invocation. Decoding is
// the caller's job (the engine's file manager owns the charset); the set
// only stores normalized UTF-8 text plus derived metadata.
type FileSet struct {
	files []File
	index map[string]FileID // path -> id
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{
		files: make([]File, 0),
		index: make(map[string]FileID),
	}
}

// Add normalizes text (CRLF), computes LineIdx and Hash, and returns a new
// FileID. It always creates a new FileID even if a file with the same path
// already exists.
func (fileSet *FileSet) Add(path string, text []byte, flags FileFlags) FileID {
	text, hadCRLF := normalizeCRLF(text)
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	hash := sha256.Sum256(text)
	lineIdx := buildLineIndex(text)
	normalizedPath := normalizePath(path)

	lenFiles, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	id := FileID(lenFiles)
	fileSet.files = append(fileSet.files, File{
		ID:      id,
		Path:    normalizedPath,
		Text:    text,
		LineIdx: lineIdx,
		Hash:    hash,
		Flags:   flags,
	})
	// Всегда обновляем индекс на последнюю версию файла
	fileSet.index[normalizedPath] = id
	return id
}

// AddVirtual adds an in-memory file (generated source, test input) with the
// FileVirtual flag.
func (fileSet *FileSet) AddVirtual(name string, text []byte) FileID {
	return fileSet.Add(name, text, FileVirtual)
}

// Get returns the file metadata for the given ID.
func (fileSet *FileSet) Get(id FileID) *File {
	return &fileSet.files[id]
}

// GetLatest returns the latest file ID for the given path, if it exists.
func (fileSet *FileSet) GetLatest(path string) (FileID, bool) {
	id, ok := fileSet.index[normalizePath(path)]
	return id, ok
}

// Len returns the number of files in the set.
func (fileSet *FileSet) Len() int {
	return len(fileSet.files)
}
