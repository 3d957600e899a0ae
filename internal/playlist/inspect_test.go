package playlist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspectMediaPlaylist(t *testing.T) {
	text := "#EXTM3U\n" +
		"#EXT-X-VERSION:3\n" +
		"#EXT-X-TARGETDURATION:10\n" +
		"#EXT-X-MEDIA-SEQUENCE:0\n" +
		"#EXTINF:10.0,\n" +
		"seg0.ts\n" +
		"#EXTINF:10.0,\n" +
		"seg1.ts\n" +
		"#EXT-X-ENDLIST\n"

	s, err := Inspect(text)
	require.NoError(t, err)

	assert.False(t, s.Master)
	assert.Equal(t, 2, s.Segments)
	assert.Zero(t, s.Variants)
	assert.InDelta(t, 20.0, s.Duration, 0.001)
}

func TestInspectMasterPlaylist(t *testing.T) {
	text := "#EXTM3U\n" +
		"#EXT-X-STREAM-INF:BANDWIDTH=1280000,RESOLUTION=1280x720\n" +
		"hd/index.m3u8\n" +
		"#EXT-X-STREAM-INF:BANDWIDTH=640000,RESOLUTION=640x360\n" +
		"sd/index.m3u8\n"

	s, err := Inspect(text)
	require.NoError(t, err)

	assert.True(t, s.Master)
	assert.Equal(t, 2, s.Variants)
	assert.Zero(t, s.Duration)
}
