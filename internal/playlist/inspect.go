package playlist

import (
	"strings"

	"github.com/etherlabsio/go-m3u8/m3u8"
)

type Summary struct {
	Master   bool
	Variants int
	Segments int
	Keys     int

	// Duration is zero for master playlists.
	Duration float64
}

// Inspect parses a playlist for diagnostics only.
func Inspect(text string) (Summary, error) {
	pl, err := m3u8.Read(strings.NewReader(text))
	if err != nil {
		return Summary{}, err
	}

	s := Summary{Master: pl.IsMaster()}
	for _, item := range pl.Items {
		switch item.(type) {
		case *m3u8.PlaylistItem:
			s.Variants++
		case *m3u8.SegmentItem:
			s.Segments++
		case *m3u8.KeyItem:
			s.Keys++
		}
	}

	if !s.Master {
		s.Duration = pl.Duration()
	}

	return s, nil
}
