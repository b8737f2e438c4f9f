package source

import (
	"testing"
)

type stubSource struct {
	frames int
	format Format
}

func (s *stubSource) NumFrames() int { return s.frames }
func (s *stubSource) Format() Format { return s.format }

func TestSpliceEmpty(t *testing.T) {
	if _, err := Splice(nil); err == nil {
		t.Error("Expected error for empty splice")
	}
}

func TestSpliceSinglePassthrough(t *testing.T) {
	clip := &stubSource{frames: 10}

	got, err := Splice([]FrameSource{clip})
	if err != nil {
		t.Fatalf("Splice failed: %v", err)
	}
	if got != FrameSource(clip) {
		t.Error("Expected single-clip splice to return the clip itself")
	}
}

func TestSpliceConcatenates(t *testing.T) {
	a := &stubSource{frames: 10, format: Format{Width: 720, Height: 480}}
	b := &stubSource{frames: 5, format: Format{Width: 1920, Height: 1080}}
	c := &stubSource{frames: 7}

	clip, err := Splice([]FrameSource{a, b, c})
	if err != nil {
		t.Fatalf("Splice failed: %v", err)
	}

	if clip.NumFrames() != 22 {
		t.Errorf("Expected 22 frames, got %d", clip.NumFrames())
	}

	// The spliced format is the first clip's.
	if f := clip.Format(); f.Width != 720 || f.Height != 480 {
		t.Errorf("Expected first clip's format, got %dx%d", f.Width, f.Height)
	}
}

func TestSplicedLocate(t *testing.T) {
	a := &stubSource{frames: 10}
	b := &stubSource{frames: 5}

	clip, err := Splice([]FrameSource{a, b})
	if err != nil {
		t.Fatalf("Splice failed: %v", err)
	}
	spliced := clip.(*splicedSource)

	tests := []struct {
		name      string
		frame     int
		wantClip  FrameSource
		wantLocal int
		wantErr   bool
	}{
		{"FirstClipStart", 0, a, 0, false},
		{"FirstClipEnd", 9, a, 9, false},
		{"SecondClipStart", 10, b, 0, false},
		{"SecondClipEnd", 14, b, 4, false},
		{"Negative", -1, nil, 0, true},
		{"PastEnd", 15, nil, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotClip, local, err := spliced.Locate(tt.frame)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected out-of-range error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Locate failed: %v", err)
			}
			if gotClip != tt.wantClip || local != tt.wantLocal {
				t.Errorf("Expected (%v, %d), got (%v, %d)", tt.wantClip, tt.wantLocal, gotClip, local)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	clip := &stubSource{
		frames: 10,
		format: Format{Width: 720, Height: 480, Bits: 8, Matrix: 6, ColorRange: 1},
	}

	tests := []struct {
		name string
		opts Options
		want Format
	}{
		{
			"ZeroOptionsKeepEverything",
			Options{},
			Format{Width: 720, Height: 480, Bits: 8, Matrix: 6, ColorRange: 1},
		},
		{
			"BitsOnly",
			Options{Bits: 16},
			Format{Width: 720, Height: 480, Bits: 16, Matrix: 6, ColorRange: 1},
		},
		{
			"ColorOverrides",
			Options{Matrix: 1, Transfer: 1, Primaries: 1},
			Format{Width: 720, Height: 480, Bits: 8, Matrix: 1, Transfer: 1, Primaries: 1, ColorRange: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(clip, tt.opts)
			if got.NumFrames() != 10 {
				t.Errorf("Expected frame count preserved, got %d", got.NumFrames())
			}
			if f := got.Format(); f != tt.want {
				t.Errorf("Expected %+v, got %+v", tt.want, f)
			}
		})
	}
}

func TestNormalizeZeroOptionsPassthrough(t *testing.T) {
	clip := &stubSource{frames: 3}
	if got := Normalize(clip, Options{}); got != FrameSource(clip) {
		t.Error("Expected zero options to return the clip itself")
	}
}
