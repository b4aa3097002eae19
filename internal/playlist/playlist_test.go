package playlist

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const remainderPlaylist = `#EXTM3U
#EXT-X-VERSION:3
#EXT-X-TARGETDURATION:4
#EXT-X-MEDIA-SEQUENCE:1
#EXTINF:4.000000,
segment001.ts
#EXTINF:4.000000,
segment002.ts
#EXTINF:2.500000,
segment003.ts
#EXT-X-ENDLIST
`

func TestParse(t *testing.T) {
	entries, err := Parse(strings.NewReader(remainderPlaylist))
	require.NoError(t, err)

	require.Len(t, entries, 3)
	assert.Equal(t, Entry{Duration: 4, URI: "segment001.ts"}, entries[0])
	assert.Equal(t, Entry{Duration: 4, URI: "segment002.ts"}, entries[1])
	assert.Equal(t, Entry{Duration: 2.5, URI: "segment003.ts"}, entries[2])
}

func TestParseUnknownTag(t *testing.T) {
	text := `#EXTM3U
#EXT-X-TARGETDURATION:4
#EXTINF:4.000000,
segment001.ts
#EXT-X-DISCONTINUITY
#EXTINF:4.000000,
segment002.ts
#EXT-X-ENDLIST
`

	_, err := Parse(strings.NewReader(text))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownTag)
}

func TestParseDanglingDuration(t *testing.T) {
	text := `#EXTM3U
#EXTINF:4.000000,
segment001.ts
#EXTINF:4.000000,
#EXT-X-ENDLIST
`

	_, err := Parse(strings.NewReader(text))
	assert.Error(t, err)
}

func TestParseURIWithoutDuration(t *testing.T) {
	text := `#EXTM3U
segment001.ts
`

	_, err := Parse(strings.NewReader(text))
	assert.Error(t, err)
}

func TestRender(t *testing.T) {
	entries := []Entry{
		{Duration: 4, URI: "segment000.ts"},
		{Duration: 4, URI: "segment001.ts"},
		{Duration: 2.5, URI: "segment002.ts"},
	}

	want := `#EXTM3U
#EXT-X-VERSION:3
#EXT-X-TARGETDURATION:4
#EXT-X-MEDIA-SEQUENCE:0
#EXTINF:4.000000,
segment000.ts
#EXTINF:4.000000,
segment001.ts
#EXTINF:2.500000,
segment002.ts
#EXT-X-ENDLIST
`

	assert.Equal(t, want, Render(4, entries))
}

func TestRenderRoundTrip(t *testing.T) {
	entries := []Entry{
		{Duration: 1, URI: "segment000.ts"},
		{Duration: 0.5, URI: "segment001.ts"},
	}

	parsed, err := Parse(strings.NewReader(Render(1, entries)))
	require.NoError(t, err)
	assert.Equal(t, entries, parsed)
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "playlist.m3u8")
	text := Render(1, []Entry{{Duration: 1, URI: "segment000.ts"}})

	require.NoError(t, WriteFile(path, text))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, text, string(data))

	// no temporary file left behind
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}
