package source

import (
	"context"
	"errors"

	"media-indexer/indexer"
)

// Adapter materializes frame sources from source files, indexing them first
// when a cache is attached.
type Adapter struct {
	cache *indexer.Cache
	open  OpenFunc
}

// New creates an adapter driving the given cache. cache may be nil for
// tools that open media files directly without an index artifact.
func New(cache *indexer.Cache, open OpenFunc) *Adapter {
	return &Adapter{cache: cache, open: open}
}

// Open opens the given index artifact (or raw media) paths, splices the
// results end-to-end in input order and applies the normalization options
// once to the spliced result.
func (a *Adapter) Open(paths []string, norm Options, toolOpts map[string]any) (FrameSource, error) {
	if len(paths) == 0 {
		return nil, errors.New("source: no paths to open")
	}

	clips := make([]FrameSource, len(paths))
	for i, p := range paths {
		clip, err := a.open(p, toolOpts)
		if err != nil {
			return nil, err
		}
		clips[i] = clip
	}

	clip, err := Splice(clips)
	if err != nil {
		return nil, err
	}

	return Normalize(clip, norm), nil
}

// Source is the top-level entry: it indexes files through the attached
// cache (when one is attached) and opens the resulting artifacts as one
// frame source.
func (a *Adapter) Source(ctx context.Context, files []string, norm Options, toolOpts map[string]any) (FrameSource, error) {
	paths := files

	if a.cache != nil {
		indexed, err := a.cache.Index(ctx, files, indexer.IndexOptions{})
		if err != nil {
			return nil, err
		}
		paths = indexed
	}

	return a.Open(paths, norm, toolOpts)
}
