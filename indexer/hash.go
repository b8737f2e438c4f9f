package indexer

import (
	"crypto/md5"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// JoinedNames concatenates the base names of files with underscores, in the
// given order.
func JoinedNames(files []string) string {
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = filepath.Base(f)
	}
	return strings.Join(names, "_")
}

// VideosHash derives the content identity of a file set: an md5 hex digest
// over the total byte size (32-byte little-endian) followed by the joined
// file names. Every file is stat'ed; a missing file yields a NotFoundError.
//
// This is a heuristic identity, not a content hash: two sets with equal total
// size and equal joined names collide and resolve to the same index.
func VideosHash(files []string) (string, error) {
	var total int64
	for _, f := range files {
		st, err := os.Stat(f)
		if err != nil {
			return "", &NotFoundError{Path: f, Err: err}
		}
		total += st.Size()
	}

	buf := make([]byte, 32)
	binary.LittleEndian.PutUint64(buf, uint64(total))

	sum := md5.Sum(append(buf, JoinedNames(files)...))
	return fmt.Sprintf("%x", sum), nil
}
