package d2v

import (
	"media-indexer/source"
)

// headerSource is a frame source backed by a parsed .d2v header. It carries
// the header-derived geometry and frame count; pixel decoding belongs to
// the decoder plugin that consumes the artifact.
type headerSource struct {
	file *File
}

func (s *headerSource) NumFrames() int {
	return s.file.FrameCount
}

func (s *headerSource) Format() source.Format {
	return source.Format{
		Width:  s.file.Width(),
		Height: s.file.Height(),
		Bits:   8,
		FPSNum: s.file.Header.FrameRate.Num,
		FPSDen: s.file.Header.FrameRate.Den,
	}
}

// Open opens a .d2v index artifact as a frame source. It satisfies
// source.OpenFunc; opts are accepted for interface compatibility and
// ignored, the header carries everything this source reports.
func Open(path string, opts map[string]any) (source.FrameSource, error) {
	f, err := Parse(path)
	if err != nil {
		return nil, err
	}
	return &headerSource{file: f}, nil
}
