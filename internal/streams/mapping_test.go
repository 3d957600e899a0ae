package streams

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupIsCaseInsensitive(t *testing.T) {
	m := NewMapping(map[string]string{
		"Sky":    "https://cdn.example/sky/index.m3u8",
		"willow": "https://cdn.example/willow/index.m3u8",
	})

	for _, name := range []string{"sky", "SKY", "sKy"} {
		url, ok := m.Lookup(name)
		assert.True(t, ok, name)
		assert.Equal(t, "https://cdn.example/sky/index.m3u8", url)
	}

	url, ok := m.Lookup("WILLOW")
	assert.True(t, ok)
	assert.Equal(t, "https://cdn.example/willow/index.m3u8", url)
}

func TestLookupUnknown(t *testing.T) {
	m := NewMapping(map[string]string{"sky": "https://cdn.example/sky/index.m3u8"})

	url, ok := m.Lookup("ocean")
	assert.False(t, ok)
	assert.Empty(t, url)
}

func TestNewMappingDropsEmptyEntries(t *testing.T) {
	m := NewMapping(map[string]string{
		"sky":  "",
		"  ":   "https://cdn.example/blank.m3u8",
		"moon": "https://cdn.example/moon.m3u8",
	})

	assert.Equal(t, 1, m.Len())

	_, ok := m.Lookup("sky")
	assert.False(t, ok)
}
