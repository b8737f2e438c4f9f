package indexer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"media-indexer/internal/logging"
	"media-indexer/internal/metrics"
)

// Cache decides, per batch of source files, whether an existing index
// artifact is reused, repaired or rebuilt. It is the sole writer of index
// artifacts; the external tool only runs on its command.
//
// Cache holds no state besides its configuration: every call re-stats the
// filesystem, so concurrent callers targeting the same identity race
// benignly (the tool's output is deterministic, last writer wins).
type Cache struct {
	tool Tool

	// force controls corrupted-index handling: when set, an unparseable
	// index is deleted and rebuilt instead of failing with
	// CorruptedIndexError.
	force bool
}

// New creates a cache for the given tool. force selects the corrupted-index
// policy, see Cache.
func New(tool Tool, force bool) *Cache {
	return &Cache{tool: tool, force: force}
}

// Default creates a cache with the default policy (corrupted indexes are
// deleted and rebuilt).
func Default(tool Tool) *Cache {
	return New(tool, true)
}

// Tool returns the tool this cache drives.
func (c *Cache) Tool() Tool {
	return c.tool
}

// IndexOptions controls a single Index call.
type IndexOptions struct {
	// Force deletes and regenerates existing index artifacts.
	Force bool

	// SplitFiles indexes each file as its own logical unit instead of
	// joining the whole set into one.
	SplitFiles bool

	// Output selects where artifacts are written, see OutputFolder.
	Output OutputFolder

	// ExtraArgs are passed to the tool between its command and its
	// default arguments.
	ExtraArgs []string
}

// Index returns the index artifact path for every logical unit in files,
// building or repairing artifacts as needed. Joined mode returns one path
// for the whole set; split mode returns one path per file, in input order.
//
// Files spanning multiple folders are partitioned and processed per folder,
// results concatenated in first-encounter folder order. Any failure aborts
// the whole batch; there is no partial result.
func (c *Cache) Index(ctx context.Context, files []string, opts IndexOptions) ([]string, error) {
	if len(files) == 0 {
		return nil, errors.New("indexer: no input files")
	}

	abs := make([]string, len(files))
	for i, f := range files {
		a, err := filepath.Abs(f)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", f, err)
		}
		abs[i] = a
	}

	folders, byFolder := groupByFolder(abs)
	if len(folders) > 1 {
		var out []string
		for _, folder := range folders {
			sub, err := c.Index(ctx, byFolder[folder], opts)
			if err != nil {
				return nil, err
			}
			out = append(out, sub...)
		}
		return out, nil
	}

	destFolder := opts.Output.Resolve(abs[0])
	sorted := sortedUnique(abs)

	if !opts.SplitFiles {
		hash, err := VideosHash(sorted)
		if err != nil {
			return nil, err
		}

		name := "SINGLE"
		if len(sorted) > 1 {
			name = "JOINED"
		}

		output := indexFilePath(destFolder, hash, name, c.tool.Ext())
		if err := c.indexOne(ctx, sorted, output, opts); err != nil {
			return nil, err
		}
		return []string{output}, nil
	}

	// Split mode: each file is its own unit with its own identity.
	outputs := make([]string, len(sorted))
	for i, file := range sorted {
		hash, err := VideosHash([]string{file})
		if err != nil {
			return nil, err
		}
		outputs[i] = indexFilePath(destFolder, hash, filepath.Base(file), c.tool.Ext())
	}

	for i, file := range sorted {
		if err := c.indexOne(ctx, []string{file}, outputs[i], opts); err != nil {
			return nil, err
		}
	}

	return outputs, nil
}

// indexOne resolves a single logical unit: reuse a valid artifact after
// reconciling its recorded filenames, or delete and rebuild when it is
// missing, empty or forced.
func (c *Cache) indexOne(ctx context.Context, files []string, output string, opts IndexOptions) error {
	st, err := os.Stat(output)
	switch {
	case err == nil && st.Size() > 0 && !opts.Force:
		// Reuse, but reconcile the recorded source paths first so a
		// moved or renamed input still resolves. No-op when they
		// already match.
		if uerr := c.tool.UpdateVideoFilenames(output, files); uerr != nil {
			if errors.Is(uerr, ErrCorrupted) {
				return c.handleCorrupted(ctx, files, output, opts, uerr)
			}
			return uerr
		}
		logging.Debug("Index cache hit: %s", output)
		metrics.CacheDecisionsTotal.WithLabelValues("reuse").Inc()
		return nil

	case err == nil:
		// Zero-byte artifacts are treated as absent; forced rebuilds
		// always start clean.
		reason := "rebuild_empty"
		if opts.Force {
			reason = "rebuild_forced"
		}
		if rerr := os.Remove(output); rerr != nil {
			return fmt.Errorf("failed to remove stale index %s: %w", output, rerr)
		}
		logging.Debug("Stale index removed (%s): %s", reason, output)
		metrics.CacheDecisionsTotal.WithLabelValues(reason).Inc()

	case os.IsNotExist(err):
		metrics.CacheDecisionsTotal.WithLabelValues("rebuild_missing").Inc()

	default:
		return fmt.Errorf("failed to stat index %s: %w", output, err)
	}

	return c.runIndex(ctx, files, output, opts.ExtraArgs)
}

// handleCorrupted applies the corrupted-index policy: with force, delete the
// artifact and rebuild; without, fail and leave it on disk untouched.
func (c *Cache) handleCorrupted(ctx context.Context, files []string, output string, opts IndexOptions, cause error) error {
	if !c.force {
		return &CorruptedIndexError{Path: output, Err: cause}
	}

	if err := os.Remove(output); err != nil {
		return &DeletionError{Path: output, Err: err}
	}

	logging.Warn("Corrupted index removed, rebuilding: %s", output)
	metrics.CacheDecisionsTotal.WithLabelValues("rebuild_corrupted").Inc()
	return c.runIndex(ctx, files, output, opts.ExtraArgs)
}

// IndexPaths resolves the artifact paths Index would return without touching
// or building anything beyond the stat needed for identity. Used by callers
// that manage artifact lifecycle themselves (e.g. explicit deletion).
func (c *Cache) IndexPaths(files []string, opts IndexOptions) ([]string, error) {
	if len(files) == 0 {
		return nil, errors.New("indexer: no input files")
	}

	abs := make([]string, len(files))
	for i, f := range files {
		a, err := filepath.Abs(f)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", f, err)
		}
		abs[i] = a
	}

	folders, byFolder := groupByFolder(abs)
	if len(folders) > 1 {
		var out []string
		for _, folder := range folders {
			sub, err := c.IndexPaths(byFolder[folder], opts)
			if err != nil {
				return nil, err
			}
			out = append(out, sub...)
		}
		return out, nil
	}

	destFolder := opts.Output.Resolve(abs[0])
	sorted := sortedUnique(abs)

	if !opts.SplitFiles {
		hash, err := VideosHash(sorted)
		if err != nil {
			return nil, err
		}
		name := "SINGLE"
		if len(sorted) > 1 {
			name = "JOINED"
		}
		return []string{indexFilePath(destFolder, hash, name, c.tool.Ext())}, nil
	}

	outputs := make([]string, len(sorted))
	for i, file := range sorted {
		hash, err := VideosHash([]string{file})
		if err != nil {
			return nil, err
		}
		outputs[i] = indexFilePath(destFolder, hash, filepath.Base(file), c.tool.Ext())
	}
	return outputs, nil
}

// groupByFolder partitions files by parent folder, preserving both
// first-encounter folder order and per-folder input order.
func groupByFolder(files []string) ([]string, map[string][]string) {
	var folders []string
	byFolder := make(map[string][]string)

	for _, f := range files {
		dir := filepath.Dir(f)
		if _, ok := byFolder[dir]; !ok {
			folders = append(folders, dir)
		}
		byFolder[dir] = append(byFolder[dir], f)
	}

	return folders, byFolder
}

// sortedUnique returns the distinct members of files in canonical order.
// Identity depends on this order, which makes it stable across calls listing
// the files in any order.
func sortedUnique(files []string) []string {
	seen := make(map[string]bool, len(files))
	out := make([]string, 0, len(files))
	for _, f := range files {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	sort.Strings(out)
	return out
}
