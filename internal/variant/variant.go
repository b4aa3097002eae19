package variant

import (
	"fmt"
	"math"
	"path/filepath"
)

// PlaylistName is the canonical playlist file name inside a variant directory.
// Its presence is the sole completion signal for a variant.
const PlaylistName = "playlist.m3u8"

// SegmentPattern is the ffmpeg-style segment file name pattern.
const SegmentPattern = "segment%03d.ts"

// Spec describes one rendition of a source video: a fixed segment duration
// and whether the first segment is replaced by a degraded fast-start lead-in.
type Spec struct {
	SegmentDuration float64 // seconds
	Suffix          string
	FastStart       bool
}

// TargetDuration returns the EXT-X-TARGETDURATION value for this spec.
func (s Spec) TargetDuration() int {
	return int(math.Ceil(s.SegmentDuration))
}

// Mode returns a short label for logs and metrics.
func (s Spec) Mode() string {
	if s.FastStart {
		return "fast"
	}
	return "normal"
}

// OutputDir returns the directory holding this variant's playlist and segments.
func (s Spec) OutputDir(root, baseName string) string {
	return filepath.Join(root, baseName+"_"+s.Suffix)
}

// PlaylistPath returns the canonical playlist path for this variant.
func (s Spec) PlaylistPath(root, baseName string) string {
	return filepath.Join(s.OutputDir(root, baseName), PlaylistName)
}

// SegmentName returns the file name of the segment with the given index.
func SegmentName(index int) string {
	return fmt.Sprintf(SegmentPattern, index)
}

// Catalog lists every rendition produced for each video. Order is stable:
// durations ascending, normal before fast-start.
var Catalog = []Spec{
	{SegmentDuration: 0.5, Suffix: "500ms"},
	{SegmentDuration: 0.5, Suffix: "500ms_fast", FastStart: true},
	{SegmentDuration: 1, Suffix: "1s"},
	{SegmentDuration: 1, Suffix: "1s_fast", FastStart: true},
	{SegmentDuration: 4, Suffix: "4s"},
	{SegmentDuration: 4, Suffix: "4s_fast", FastStart: true},
	{SegmentDuration: 8, Suffix: "8s"},
	{SegmentDuration: 8, Suffix: "8s_fast", FastStart: true},
	{SegmentDuration: 12, Suffix: "12s"},
	{SegmentDuration: 12, Suffix: "12s_fast", FastStart: true},
}
