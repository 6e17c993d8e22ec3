package source

type (
	// FileID uniquely identifies a file within a FileSet.
	FileID uint32 // просто ID источника
	// FileFlags encodes metadata about a file.
	FileFlags uint8 // метаданные
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota // добавлен не с диска (тест, stdin)
	FileHadBOM
	FileNormalizedCRLF
	// FileDetached marks a documented source that a bundle names but that
	// could not be read; only its path is known.
	FileDetached
)

// File captures metadata and content for a single file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// HasContent reports whether source lines are available for previews.
func (f *File) HasContent() bool {
	return f != nil && f.Flags&FileDetached == 0
}
