package variant

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogOrder(t *testing.T) {
	require.Len(t, Catalog, 10)

	expected := []string{
		"500ms", "500ms_fast",
		"1s", "1s_fast",
		"4s", "4s_fast",
		"8s", "8s_fast",
		"12s", "12s_fast",
	}

	for i, spec := range Catalog {
		assert.Equal(t, expected[i], spec.Suffix)
		// fast-start alternates after its normal counterpart
		assert.Equal(t, i%2 == 1, spec.FastStart)
		if i > 0 {
			assert.GreaterOrEqual(t, spec.SegmentDuration, Catalog[i-1].SegmentDuration)
		}
	}
}

func TestTargetDuration(t *testing.T) {
	tests := []struct {
		duration float64
		want     int
	}{
		{0.5, 1},
		{1, 1},
		{4, 4},
		{8, 8},
		{12, 12},
	}

	for _, tt := range tests {
		spec := Spec{SegmentDuration: tt.duration}
		assert.Equal(t, tt.want, spec.TargetDuration())
	}
}

func TestPaths(t *testing.T) {
	spec := Spec{SegmentDuration: 4, Suffix: "4s"}

	assert.Equal(t, filepath.Join("uploads", "clip_4s"), spec.OutputDir("uploads", "clip"))
	assert.Equal(t, filepath.Join("uploads", "clip_4s", "playlist.m3u8"), spec.PlaylistPath("uploads", "clip"))
}

func TestSegmentName(t *testing.T) {
	assert.Equal(t, "segment000.ts", SegmentName(0))
	assert.Equal(t, "segment001.ts", SegmentName(1))
	assert.Equal(t, "segment123.ts", SegmentName(123))
}

func TestMode(t *testing.T) {
	assert.Equal(t, "normal", Spec{}.Mode())
	assert.Equal(t, "fast", Spec{FastStart: true}.Mode())
}
