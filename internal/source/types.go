package source

type (
	// FileID identifies a source file within a FileSet.
	FileID uint32
	// FileFlags records how a source file was ingested.
	FileFlags uint8
)

const (
	// FileVirtual marks a file added from memory rather than disk (tests, stdin, generated sources).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File holds the content and derived metadata for one source file: its
// raw bytes, the byte offsets of its newlines for fast offset-to-LineCol
// resolution, and a SHA-256 hash of the content. FileSet.Add stores the
// hash but never compares it: every Add allocates a fresh FileID.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol is a 1-based human-readable position within a File.
type LineCol struct {
	Line uint32
	Col  uint32
}
