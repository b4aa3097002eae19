package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/JesterVZ/test-m3u8/internal/ffmpeg"
	"github.com/JesterVZ/test-m3u8/internal/media"
	"github.com/JesterVZ/test-m3u8/internal/playlist"
	"github.com/JesterVZ/test-m3u8/internal/variant"
)

// buildFastStart produces a variant whose first segment is a degraded
// re-encode of the first segment duration of the source, while every later
// segment is a codec copy. Three steps: lead-in encode, remainder encode
// starting at segment 1, then a playlist splice published atomically.
func (m *ManagerCtx) buildFastStart(ctx context.Context, asset media.Asset, spec variant.Spec) error {
	outputDir := spec.OutputDir(m.config.MediaDir, asset.BaseName)
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("unable to create output dir: %w", err)
	}

	// 1. degraded lead-in, segment000 only
	err := m.clip(ctx, ffmpeg.ClipRequest{
		InputPath:   asset.Path,
		OutputDir:   outputDir,
		OutputName:  variant.SegmentName(0),
		ClipSeconds: spec.SegmentDuration,
	})
	if err != nil {
		return fmt.Errorf("lead-in encode: %w", err)
	}

	// 2. codec-copy remainder, numbered from segment001, seeking past the
	// lead-in; its playlist is a scratch artifact used only for splicing
	err = m.segment(ctx, ffmpeg.SegmentRequest{
		InputPath:       asset.Path,
		OutputDir:       outputDir,
		PlaylistName:    scratchPlaylist,
		SegmentPattern:  variant.SegmentPattern,
		SegmentDuration: spec.SegmentDuration,
		StartNumber:     1,
		SeekSeconds:     spec.SegmentDuration,
	})
	if err != nil {
		return fmt.Errorf("remainder encode: %w", err)
	}

	// 3. splice: lead-in entry first, remainder entries verbatim after
	scratch := filepath.Join(outputDir, scratchPlaylist)
	entries, err := playlist.ParseFile(scratch)
	if err != nil {
		return fmt.Errorf("remainder playlist: %w", err)
	}

	spliced := make([]playlist.Entry, 0, len(entries)+1)
	spliced = append(spliced, playlist.Entry{
		Duration: spec.SegmentDuration,
		URI:      variant.SegmentName(0),
	})
	spliced = append(spliced, entries...)

	text := playlist.Render(spec.TargetDuration(), spliced)
	if err := playlist.WriteFile(filepath.Join(outputDir, variant.PlaylistName), text); err != nil {
		return fmt.Errorf("unable to publish playlist: %w", err)
	}

	_ = os.Remove(scratch)
	return nil
}
