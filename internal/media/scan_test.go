package media

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestScan(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, filepath.Join(dir, "clip.mp4"))
	writeFile(t, filepath.Join(dir, "movie.MKV"))
	writeFile(t, filepath.Join(dir, "notes.txt"))
	writeFile(t, filepath.Join(dir, "playlist.m3u8"))

	// variant output dirs and their contents must not be picked up
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "clip_4s"), 0o755))
	writeFile(t, filepath.Join(dir, "clip_4s", "nested.mp4"))

	assets, err := Scan(dir)
	require.NoError(t, err)
	require.Len(t, assets, 2)

	names := map[string]string{}
	for _, asset := range assets {
		names[asset.BaseName] = asset.Path
		assert.True(t, filepath.IsAbs(asset.Path))
	}

	assert.Contains(t, names, "clip")
	assert.Contains(t, names, "movie")
}

func TestScanEmptyDir(t *testing.T) {
	assets, err := Scan(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, assets)
}

func TestScanMissingDir(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
