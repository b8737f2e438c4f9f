package indexer

import (
	"errors"
	"fmt"
)

// ErrCorrupted is the signal a Tool wraps when an index file exists but
// cannot be parsed. The cache inspects it with errors.Is.
var ErrCorrupted = errors.New("index file corrupted")

// NotFoundError reports a missing source file or indexer binary.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("indexer: %q was not found", e.Path)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// ExecError reports a non-zero exit from the external indexer binary.
// Stdout and Stderr carry the trimmed process output for diagnostics.
type ExecError struct {
	Bin    string
	Stdout string
	Stderr string
	Err    error
}

func (e *ExecError) Error() string {
	msg := fmt.Sprintf("indexer: running %q failed: %v", e.Bin, e.Err)
	if e.Stderr != "" {
		msg += "\n\t" + e.Stderr
	}
	if e.Stdout != "" {
		msg += "\n\t" + e.Stdout
	}
	return msg
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

// CorruptedIndexError reports an unparseable index file encountered without
// force mode. The file is left on disk; the caller decides whether to delete
// it and retry.
type CorruptedIndexError struct {
	Path string
	Err  error
}

func (e *CorruptedIndexError) Error() string {
	return fmt.Sprintf("indexer: index file %q is corrupted, delete it and retry", e.Path)
}

func (e *CorruptedIndexError) Unwrap() error {
	return e.Err
}

// DeletionError reports a corrupted index that force mode tried and failed
// to delete.
type DeletionError struct {
	Path string
	Err  error
}

func (e *DeletionError) Error() string {
	return fmt.Sprintf("indexer: index file %q is corrupted, tried to delete it and failed: %v", e.Path, e.Err)
}

func (e *DeletionError) Unwrap() error {
	return e.Err
}
