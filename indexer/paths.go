package indexer

import (
	"os"
	"path/filepath"
	"strings"
)

// IndexFolderName is the cache subdirectory created inside the resolved
// output folder.
const IndexFolderName = ".vsidx"

// OutputFolder selects where index artifacts are written. The zero value
// colocates them with the first source file, which keeps cached indexes
// discoverable across runs.
type OutputFolder struct {
	path string
	temp bool
}

// OutputDir writes index artifacts under the given directory.
func OutputDir(path string) OutputFolder {
	return OutputFolder{path: path}
}

// TempDir writes index artifacts under the system temp directory.
func TempDir() OutputFolder {
	return OutputFolder{temp: true}
}

// Resolve applies the three-way output policy: explicit directory if set,
// system temp directory if explicitly requested, otherwise the parent folder
// of firstFile.
func (o OutputFolder) Resolve(firstFile string) string {
	if o.temp {
		return os.TempDir()
	}
	if o.path != "" {
		return o.path
	}
	return filepath.Dir(firstFile)
}

// indexFilePath builds the canonical artifact location:
// folder/.vsidx/<hash>_<stem>.<ext>. Pure, no I/O.
func indexFilePath(folder, hash, videoName, ext string) string {
	stem := strings.TrimSuffix(filepath.Base(videoName), filepath.Ext(videoName))
	return filepath.Join(folder, IndexFolderName, hash+"_"+stem+"."+ext)
}
