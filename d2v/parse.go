package d2v

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"media-indexer/indexer"
)

const projectFilePrefix = "DGIndexProjectFile"

// Fraction is an exact frame rate, e.g. 30000/1001.
type Fraction struct {
	Num int
	Den int
}

func (f Fraction) String() string {
	return fmt.Sprintf("%d/%d", f.Num, f.Den)
}

// Header holds the settings block of a .d2v project file.
type Header struct {
	StreamType      int
	MPEGType        int
	IDCTAlgorithm   int
	YUVRGBScale     int
	LuminanceFilter []int
	Clipping        []int
	AspectRatio     string
	PictureSize     string
	FieldOperation  int
	FrameRate       Fraction
	Location        []int
}

// File is a parsed .d2v project file.
type File struct {
	Path       string
	Version    int
	Videos     []string
	Header     Header
	FrameCount int
}

// Width returns the horizontal picture size, or 0 if the header does not
// carry one.
func (f *File) Width() int {
	w, _ := pictureSize(f.Header.PictureSize)
	return w
}

// Height returns the vertical picture size, or 0 if the header does not
// carry one.
func (f *File) Height() int {
	_, h := pictureSize(f.Header.PictureSize)
	return h
}

func pictureSize(s string) (int, int) {
	w, h, ok := strings.Cut(s, "x")
	if !ok {
		return 0, 0
	}
	width, err1 := strconv.Atoi(strings.TrimSpace(w))
	height, err2 := strconv.Atoi(strings.TrimSpace(h))
	if err1 != nil || err2 != nil {
		return 0, 0
	}
	return width, height
}

// corrupt wraps a parse failure with the corruption signal the cache
// inspects.
func corrupt(path, format string, args ...any) error {
	return fmt.Errorf("d2v: %s: "+format+": %w", append([]any{path}, append(args, indexer.ErrCorrupted)...)...)
}

// Parse reads and parses a .d2v project file. Parse failures wrap
// indexer.ErrCorrupted; I/O failures are returned as-is.
func Parse(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	if len(lines) < 3 {
		return nil, corrupt(path, "truncated project file")
	}

	if !strings.HasPrefix(lines[0], projectFilePrefix) {
		return nil, corrupt(path, "unrecognized header %q", lines[0])
	}
	version, err := strconv.Atoi(strings.TrimPrefix(lines[0], projectFilePrefix))
	if err != nil {
		return nil, corrupt(path, "unparseable project file version %q", lines[0])
	}

	count, err := strconv.Atoi(strings.TrimSpace(lines[1]))
	if err != nil || count < 1 {
		return nil, corrupt(path, "invalid recorded file count %q", lines[1])
	}
	if len(lines) < 2+count {
		return nil, corrupt(path, "recorded file list truncated")
	}

	f := &File{
		Path:    path,
		Version: version,
		Videos:  make([]string, count),
	}
	for i := 0; i < count; i++ {
		f.Videos[i] = strings.TrimSpace(lines[2+i])
		if f.Videos[i] == "" {
			return nil, corrupt(path, "empty recorded file entry %d", i)
		}
	}

	// Settings block: key=value lines between two blank lines.
	pos := 2 + count
	for pos < len(lines) && strings.TrimSpace(lines[pos]) == "" {
		pos++
	}
	for ; pos < len(lines); pos++ {
		line := strings.TrimSpace(lines[pos])
		if line == "" {
			pos++
			break
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, corrupt(path, "malformed setting %q", line)
		}
		if err := f.Header.set(key, value); err != nil {
			return nil, corrupt(path, "bad setting %q: %v", line, err)
		}
	}

	// Data section: one line per GOP, one flag field per frame after the
	// seven leading fields. Counting stops at the FINISHED footer.
	for ; pos < len(lines); pos++ {
		line := strings.TrimSpace(lines[pos])
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "FINISHED") {
			break
		}
		fields := strings.Fields(line)
		if len(fields) > 7 {
			f.FrameCount += len(fields) - 7
		} else {
			f.FrameCount++
		}
	}

	return f, nil
}

func (h *Header) set(key, value string) error {
	value = strings.TrimSpace(value)

	switch key {
	case "Stream_Type":
		return setInt(&h.StreamType, value)
	case "MPEG_Type":
		return setInt(&h.MPEGType, value)
	case "iDCT_Algorithm":
		return setInt(&h.IDCTAlgorithm, value)
	case "YUVRGB_Scale":
		return setInt(&h.YUVRGBScale, value)
	case "Luminance_Filter":
		return setIntList(&h.LuminanceFilter, value)
	case "Clipping":
		return setIntList(&h.Clipping, value)
	case "Aspect_Ratio":
		h.AspectRatio = value
	case "Picture_Size":
		h.PictureSize = value
	case "Field_Operation":
		return setInt(&h.FieldOperation, value)
	case "Frame_Rate":
		return h.setFrameRate(value)
	case "Location":
		return setIntList(&h.Location, value)
	default:
		// Unknown settings are carried by newer DGIndex builds; skip.
	}
	return nil
}

// setFrameRate parses "30000 (30000/1001)" or a bare rate in milli-fps.
func (h *Header) setFrameRate(value string) error {
	if open := strings.Index(value, "("); open != -1 {
		end := strings.Index(value, ")")
		if end < open {
			return fmt.Errorf("unbalanced frame rate %q", value)
		}
		num, den, ok := strings.Cut(value[open+1:end], "/")
		if !ok {
			return fmt.Errorf("missing denominator in %q", value)
		}
		n, err1 := strconv.Atoi(strings.TrimSpace(num))
		d, err2 := strconv.Atoi(strings.TrimSpace(den))
		if err1 != nil || err2 != nil || d == 0 {
			return fmt.Errorf("invalid frame rate fraction %q", value)
		}
		h.FrameRate = Fraction{Num: n, Den: d}
		return nil
	}

	fields := strings.Fields(value)
	if len(fields) == 0 {
		return fmt.Errorf("empty frame rate")
	}
	milli, err := strconv.Atoi(fields[0])
	if err != nil {
		return fmt.Errorf("invalid frame rate %q", value)
	}
	h.FrameRate = Fraction{Num: milli, Den: 1000}
	return nil
}

func setInt(dst *int, value string) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return err
	}
	*dst = n
	return nil
}

func setIntList(dst *[]int, value string) error {
	parts := strings.Split(value, ",")
	out := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return err
		}
		out[i] = n
	}
	*dst = out
	return nil
}
