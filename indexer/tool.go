package indexer

// Video describes one source file recorded inside an index artifact.
type Video struct {
	Path      string
	Size      int64
	NumFrames int
}

// Info is the parsed view of an index artifact, as reported by a Tool.
type Info struct {
	Path    string
	FileIdx int
	Videos  []Video
}

// Tool is the capability interface an external indexing tool exposes to the
// cache. One implementation exists per supported tool; callers pick one at
// construction time.
type Tool interface {
	// Name identifies the tool in logs and metrics.
	Name() string

	// BinPath is the binary name or path resolved through the system PATH.
	BinPath() string

	// Ext is the index artifact extension, without the leading dot.
	Ext() string

	// DefaultArgs are appended after any caller-supplied extra arguments.
	DefaultArgs() []string

	// BuildCommand returns the full argv for indexing files into output.
	BuildCommand(files []string, output string) []string

	// ReadInfo parses an index artifact. A parse failure wraps ErrCorrupted.
	ReadInfo(indexPath string, fileIdx int) (*Info, error)

	// UpdateVideoFilenames rewrites the source paths recorded inside an
	// index artifact so they match files. A no-op when they already do.
	// A parse failure wraps ErrCorrupted.
	UpdateVideoFilenames(indexPath string, files []string) error
}
