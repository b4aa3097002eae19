// Package ffmpeg drives the external transcoding engine. Requests describe
// what to produce; the Runner turns them into one blocking engine process
// each and reports failures with the engine's own diagnostics.
package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// EncodeError is a failed engine invocation. Stderr carries the engine's
// diagnostic output verbatim.
type EncodeError struct {
	Step   string
	Stderr string
	Err    error
}

func (e *EncodeError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("ffmpeg %s failed: %v: %s", e.Step, e.Err, e.Stderr)
	}
	return fmt.Sprintf("ffmpeg %s failed: %v", e.Step, e.Err)
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

// SegmentRequest is one codec-copy segmenting invocation: cut the input into
// HLS segments of a fixed duration without re-encoding, keeping every segment
// in the playlist. Output file names are relative to OutputDir, which is also
// the engine's working directory so playlist URIs stay bare file names.
type SegmentRequest struct {
	InputPath       string // absolute
	OutputDir       string
	PlaylistName    string
	SegmentPattern  string // e.g. segment%03d.ts
	SegmentDuration float64
	StartNumber     int
	SeekSeconds     float64 // skip this much of the input before segmenting
}

func (r SegmentRequest) Args() []string {
	args := []string{"-hide_banner", "-loglevel", "warning", "-y"}

	if r.SeekSeconds > 0 {
		args = append(args, "-ss", formatSeconds(r.SeekSeconds))
	}

	args = append(args,
		"-i", r.InputPath,
		"-c:v", "copy",
		"-c:a", "copy",
		"-f", "hls",
		"-hls_time", formatSeconds(r.SegmentDuration),
		"-hls_list_size", "0",
		"-start_number", strconv.Itoa(r.StartNumber),
		"-hls_segment_filename", r.SegmentPattern,
		r.PlaylistName,
	)

	return args
}

// ClipRequest is the degraded lead-in invocation: re-encode only the first
// ClipSeconds of the input into a single tiny transport-stream segment.
// 160x90 at 10 fps with capped 50k video and 32k mono audio keeps the first
// segment down to tens of kilobytes so playback can start on a slow link.
type ClipRequest struct {
	InputPath   string // absolute
	OutputDir   string
	OutputName  string
	ClipSeconds float64
}

func (r ClipRequest) Args() []string {
	return []string{
		"-hide_banner", "-loglevel", "warning", "-y",
		"-i", r.InputPath,
		"-t", formatSeconds(r.ClipSeconds),
		"-vf", "scale=160:90",
		"-r", "10",
		"-c:v", "libx264",
		"-preset", "ultrafast",
		"-crf", "51",
		"-b:v", "50k",
		"-maxrate", "50k",
		"-bufsize", "25k",
		"-c:a", "aac",
		"-b:a", "32k",
		"-ac", "1",
		"-ar", "22050",
		"-f", "mpegts",
		r.OutputName,
	}
}

func formatSeconds(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Runner invokes a local ffmpeg binary.
type Runner struct {
	logger zerolog.Logger
	binary string
}

func NewRunner(binary string) *Runner {
	if binary == "" {
		binary = "ffmpeg"
	}

	return &Runner{
		logger: log.With().Str("module", "ffmpeg").Logger(),
		binary: binary,
	}
}

func (r *Runner) Segment(ctx context.Context, req SegmentRequest) error {
	return r.run(ctx, "segment", req.OutputDir, req.Args())
}

func (r *Runner) EncodeClip(ctx context.Context, req ClipRequest) error {
	return r.run(ctx, "clip", req.OutputDir, req.Args())
}

func (r *Runner) run(ctx context.Context, step, dir string, args []string) error {
	logger := r.logger.With().Str("step", step).Logger()
	logger.Debug().Str("dir", dir).Strs("args", args).Msg("starting engine process")

	cmd := exec.CommandContext(ctx, r.binary, args...)
	cmd.Dir = dir

	var stderr bytes.Buffer
	cmd.Stderr = io.MultiWriter(&stderr, &logWriter{logger})

	if err := cmd.Run(); err != nil {
		return &EncodeError{Step: step, Stderr: stderr.String(), Err: err}
	}

	logger.Debug().Msg("engine process finished")
	return nil
}
