package api

import (
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
)

// ServeVod serves playlists and segments as static byte streams from the
// media dir, e.g. /vod/clip_4s/playlist.m3u8.
func (a *ApiManagerCtx) ServeVod(w http.ResponseWriter, r *http.Request) {
	urlPath, err := url.PathUnescape(strings.TrimPrefix(r.URL.Path, "/vod/"))
	if err != nil {
		http.Error(w, "400 invalid path", http.StatusBadRequest)
		return
	}

	// confine to the media dir
	rel := filepath.Clean(filepath.FromSlash(urlPath))
	if rel == "." || strings.HasPrefix(rel, "..") || filepath.IsAbs(rel) {
		http.Error(w, "400 invalid path", http.StatusBadRequest)
		return
	}

	// only playlists and segments, never directory listings or sources
	switch strings.ToLower(filepath.Ext(rel)) {
	case ".m3u8":
		w.Header().Set("Content-Type", "application/vnd.apple.mpegurl")
	case ".ts":
		w.Header().Set("Content-Type", "video/mp2t")
	default:
		http.NotFound(w, r)
		return
	}

	http.ServeFile(w, r, filepath.Join(a.config.MediaDir, rel))
}
