package api

import (
	"encoding/json"
	"net/http"
	"os"
	"path"

	"github.com/JesterVZ/test-m3u8/internal/media"
	"github.com/JesterVZ/test-m3u8/internal/variant"
)

type VideoVariant struct {
	Suffix          string  `json:"suffix"`
	SegmentDuration float64 `json:"segment_duration"`
	FastStart       bool    `json:"fast_start"`
	Ready           bool    `json:"ready"`
	Playlist        string  `json:"playlist"`
}

type Video struct {
	Name     string         `json:"name"`
	Variants []VideoVariant `json:"variants"`
}

// Videos lists every discovered source video and the readiness of each of
// its variants, recomputed from the filesystem on every request.
func (a *ApiManagerCtx) Videos(w http.ResponseWriter, r *http.Request) {
	assets, err := media.Scan(a.config.MediaDir)
	if err != nil {
		a.logger.Error().Err(err).Msg("unable to scan media dir")
		http.Error(w, "500 unable to list videos", http.StatusInternalServerError)
		return
	}

	videos := make([]Video, 0, len(assets))
	for _, asset := range assets {
		video := Video{Name: asset.BaseName}

		for _, spec := range variant.Catalog {
			ready := false
			if info, err := os.Stat(spec.PlaylistPath(a.config.MediaDir, asset.BaseName)); err == nil {
				ready = info.Mode().IsRegular()
			}

			video.Variants = append(video.Variants, VideoVariant{
				Suffix:          spec.Suffix,
				SegmentDuration: spec.SegmentDuration,
				FastStart:       spec.FastStart,
				Ready:           ready,
				Playlist:        path.Join("/vod", asset.BaseName+"_"+spec.Suffix, variant.PlaylistName),
			})
		}

		videos = append(videos, video)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(videos); err != nil {
		a.logger.Error().Err(err).Msg("unable to encode video list")
	}
}
