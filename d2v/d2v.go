package d2v

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"media-indexer/indexer"
	"media-indexer/internal/logging"
)

const (
	defaultBin = "dgindex"
	ext        = "d2v"
)

// Indexer drives a DGIndex-compatible binary and implements the
// indexer.Tool interface.
type Indexer struct {
	bin         string
	defaultArgs []string
}

// New creates an Indexer using the default binary name, resolved through
// the system PATH at run time.
func New() *Indexer {
	return NewWithBin(defaultBin)
}

// NewWithBin creates an Indexer driving the given binary name or path.
func NewWithBin(bin string) *Indexer {
	return &Indexer{bin: bin}
}

// Name identifies the tool in logs and metrics.
func (i *Indexer) Name() string {
	return "dgindex"
}

// BinPath returns the configured binary name or path.
func (i *Indexer) BinPath() string {
	return i.bin
}

// Ext returns the index artifact extension.
func (i *Indexer) Ext() string {
	return ext
}

// DefaultArgs returns arguments appended after caller extras.
func (i *Indexer) DefaultArgs() []string {
	return i.defaultArgs
}

// BuildCommand assembles the full argv for indexing files into output.
// DGIndex appends the .d2v extension to -o itself, so it is trimmed here.
func (i *Indexer) BuildCommand(files []string, output string) []string {
	argv := []string{i.bin, "-i"}
	argv = append(argv, files...)
	argv = append(argv,
		"-o", strings.TrimSuffix(output, "."+ext),
		"-hide", "-exit",
	)
	return argv
}

// ReadInfo parses the index artifact and reports the recorded videos with
// their current on-disk sizes. fileIdx selects which recorded video the
// info is about.
func (i *Indexer) ReadInfo(indexPath string, fileIdx int) (*indexer.Info, error) {
	f, err := Parse(indexPath)
	if err != nil {
		return nil, err
	}

	if fileIdx < 0 || fileIdx >= len(f.Videos) {
		return nil, fmt.Errorf("d2v: file index %d out of range, %d video(s) recorded", fileIdx, len(f.Videos))
	}

	videos := make([]indexer.Video, len(f.Videos))
	for n, path := range f.Videos {
		v := indexer.Video{Path: path}
		if st, err := os.Stat(path); err == nil {
			v.Size = st.Size()
		} else {
			logging.Debug("Recorded video not found on disk: %s", path)
		}
		if len(f.Videos) == 1 {
			v.NumFrames = f.FrameCount
		}
		videos[n] = v
	}

	return &indexer.Info{
		Path:    indexPath,
		FileIdx: fileIdx,
		Videos:  videos,
	}, nil
}

// UpdateVideoFilenames rewrites the recorded source-path block in place so
// it lists files, leaving the rest of the artifact untouched. It is a no-op
// when the recorded paths already match.
func (i *Indexer) UpdateVideoFilenames(indexPath string, files []string) error {
	data, err := os.ReadFile(indexPath)
	if err != nil {
		return err
	}

	// DGIndex on Windows writes CRLF; rewrite with whatever the file uses.
	newline := "\n"
	if strings.Contains(string(data), "\r\n") {
		newline = "\r\n"
	}

	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	lines := strings.Split(text, "\n")
	if len(lines) < 2 || !strings.HasPrefix(lines[0], projectFilePrefix) {
		return corrupt(indexPath, "unrecognized header")
	}

	count, err := strconv.Atoi(strings.TrimSpace(lines[1]))
	if err != nil || count < 1 || len(lines) < 2+count {
		return corrupt(indexPath, "invalid recorded file count %q", lines[1])
	}

	recorded := lines[2 : 2+count]
	if equalPaths(recorded, files) {
		return nil
	}

	logging.Debug("Rewriting %d recorded filename(s) in %s", len(files), indexPath)

	out := make([]string, 0, len(lines)-count+len(files))
	out = append(out, lines[0], strconv.Itoa(len(files)))
	out = append(out, files...)
	out = append(out, lines[2+count:]...)

	perm := os.FileMode(0644)
	if st, err := os.Stat(indexPath); err == nil {
		perm = st.Mode().Perm()
	}

	return os.WriteFile(indexPath, []byte(strings.Join(out, newline)), perm)
}

func equalPaths(recorded, files []string) bool {
	if len(recorded) != len(files) {
		return false
	}
	for i := range recorded {
		if strings.TrimSpace(recorded[i]) != files[i] {
			return false
		}
	}
	return true
}
