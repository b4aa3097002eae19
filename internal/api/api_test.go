package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JesterVZ/test-m3u8/internal/config"
)

func newTestServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "clip.mp4"), []byte("video"), 0o644))

	// one completed variant
	outputDir := filepath.Join(dir, "clip_4s")
	require.NoError(t, os.MkdirAll(outputDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(outputDir, "playlist.m3u8"), []byte("#EXTM3U\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(outputDir, "segment000.ts"), []byte("ts-data"), 0o644))

	router := chi.NewRouter()
	New(&config.Server{MediaDir: dir}).Mount(router)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	return server, dir
}

func TestVideos(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/videos")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var videos []Video
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&videos))

	require.Len(t, videos, 1)
	assert.Equal(t, "clip", videos[0].Name)
	require.Len(t, videos[0].Variants, 10)

	ready := map[string]bool{}
	for _, v := range videos[0].Variants {
		ready[v.Suffix] = v.Ready
	}
	assert.True(t, ready["4s"])
	assert.False(t, ready["4s_fast"])
	assert.False(t, ready["1s"])
}

func TestServeVodPlaylist(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := http.Get(server.URL + "/vod/clip_4s/playlist.m3u8")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/vnd.apple.mpegurl", resp.Header.Get("Content-Type"))
}

func TestServeVodSegment(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := http.Get(server.URL + "/vod/clip_4s/segment000.ts")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "video/mp2t", resp.Header.Get("Content-Type"))
}

func TestServeVodMissing(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := http.Get(server.URL + "/vod/clip_4s/segment999.ts")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPing(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := http.Get(server.URL + "/ping")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMetrics(t *testing.T) {
	server, _ := newTestServer(t)

	resp, err := http.Get(server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
