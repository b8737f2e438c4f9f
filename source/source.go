package source

import (
	"errors"
	"fmt"
)

// ColorProp is a tool-specific colorimetry property value. The zero value
// keeps the property the opened source reports.
type ColorProp int

// Format describes the geometry and colorimetry of a frame source. Color
// fields carry tool-specific values and are not interpreted here.
type Format struct {
	Width  int
	Height int
	Bits   int

	FPSNum int
	FPSDen int

	Matrix         ColorProp
	Transfer       ColorProp
	Primaries      ColorProp
	ChromaLocation ColorProp
	ColorRange     ColorProp
	FieldBased     ColorProp
}

// FrameSource is a sequence abstraction over decoded video frames.
type FrameSource interface {
	NumFrames() int
	Format() Format
}

// OpenFunc opens an index artifact (or a raw media file, for tools that
// need no index) as a frame source. opts are passed through to the tool.
type OpenFunc func(path string, opts map[string]any) (FrameSource, error)

// Splice concatenates clips end-to-end into one logical sequence,
// preserving input order. A single clip is returned as-is.
func Splice(clips []FrameSource) (FrameSource, error) {
	if len(clips) == 0 {
		return nil, errors.New("source: no clips to splice")
	}
	if len(clips) == 1 {
		return clips[0], nil
	}

	total := 0
	for _, c := range clips {
		total += c.NumFrames()
	}

	return &splicedSource{clips: clips, frames: total}, nil
}

// splicedSource presents multiple clips as one sequence. Its format is the
// first clip's; mismatched inputs are the caller's problem, the same way
// the underlying splice filter treats them.
type splicedSource struct {
	clips  []FrameSource
	frames int
}

func (s *splicedSource) NumFrames() int {
	return s.frames
}

func (s *splicedSource) Format() Format {
	return s.clips[0].Format()
}

// Locate maps a global frame number to the clip that contains it and the
// frame number local to that clip.
func (s *splicedSource) Locate(n int) (FrameSource, int, error) {
	if n < 0 || n >= s.frames {
		return nil, 0, fmt.Errorf("source: frame %d out of range [0, %d)", n, s.frames)
	}
	for _, c := range s.clips {
		if n < c.NumFrames() {
			return c, n, nil
		}
		n -= c.NumFrames()
	}
	// Unreachable while frames stays the sum of the clip lengths.
	return nil, 0, fmt.Errorf("source: frame %d not located", n)
}

// Options records the colorimetry normalization applied once to the opened
// (and possibly spliced) result. Zero fields keep the source's values.
type Options struct {
	Bits int

	Matrix         ColorProp
	Transfer       ColorProp
	Primaries      ColorProp
	ChromaLocation ColorProp
	ColorRange     ColorProp
	FieldBased     ColorProp
}

// Normalize wraps clip with the given colorimetry overrides. Unset options
// leave the clip's reported format untouched.
func Normalize(clip FrameSource, opts Options) FrameSource {
	if opts == (Options{}) {
		return clip
	}
	return &normalizedSource{clip: clip, opts: opts}
}

type normalizedSource struct {
	clip FrameSource
	opts Options
}

func (n *normalizedSource) NumFrames() int {
	return n.clip.NumFrames()
}

func (n *normalizedSource) Format() Format {
	f := n.clip.Format()

	if n.opts.Bits != 0 {
		f.Bits = n.opts.Bits
	}
	if n.opts.Matrix != 0 {
		f.Matrix = n.opts.Matrix
	}
	if n.opts.Transfer != 0 {
		f.Transfer = n.opts.Transfer
	}
	if n.opts.Primaries != 0 {
		f.Primaries = n.opts.Primaries
	}
	if n.opts.ChromaLocation != 0 {
		f.ChromaLocation = n.opts.ChromaLocation
	}
	if n.opts.ColorRange != 0 {
		f.ColorRange = n.opts.ColorRange
	}
	if n.opts.FieldBased != 0 {
		f.FieldBased = n.opts.FieldBased
	}

	return f
}
