package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/JesterVZ/test-m3u8/internal/ffmpeg"
	"github.com/JesterVZ/test-m3u8/internal/media"
	"github.com/JesterVZ/test-m3u8/internal/variant"
)

// scratchPlaylist is where engine invocations write their playlist; the
// canonical name only ever appears via an atomic rename, so a crash mid-build
// cannot leave a playlist that signals completion.
const scratchPlaylist = "segments.m3u8"

// buildNormal produces a full-quality codec-copy variant with one engine
// invocation.
func (m *ManagerCtx) buildNormal(ctx context.Context, asset media.Asset, spec variant.Spec) error {
	outputDir := spec.OutputDir(m.config.MediaDir, asset.BaseName)
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("unable to create output dir: %w", err)
	}

	err := m.segment(ctx, ffmpeg.SegmentRequest{
		InputPath:       asset.Path,
		OutputDir:       outputDir,
		PlaylistName:    scratchPlaylist,
		SegmentPattern:  variant.SegmentPattern,
		SegmentDuration: spec.SegmentDuration,
		StartNumber:     0,
	})
	if err != nil {
		return err
	}

	// publish: the engine's playlist becomes the canonical one
	scratch := filepath.Join(outputDir, scratchPlaylist)
	if err := os.Rename(scratch, filepath.Join(outputDir, variant.PlaylistName)); err != nil {
		return fmt.Errorf("unable to publish playlist: %w", err)
	}

	return nil
}
