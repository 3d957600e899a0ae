package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Request outcomes.
const (
	KindPreflight     = "preflight"
	KindNotFound      = "not_found"
	KindUpstreamError = "upstream_error"
	KindPassthrough   = "passthrough"
	KindPlaylist      = "playlist"
)

var (
	// Requests counts handled proxy requests by outcome.
	Requests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hls_proxy_requests_total",
		Help: "Total number of proxy requests by outcome",
	}, []string{"kind"})

	// UpstreamDuration measures time until upstream response headers arrive.
	UpstreamDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "hls_proxy_upstream_duration_seconds",
		Help:    "Time spent waiting for upstream response headers",
		Buckets: prometheus.DefBuckets,
	})

	// PlaylistLines counts playlist lines by what the rewriter did with them.
	PlaylistLines = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hls_proxy_playlist_lines_total",
		Help: "Total number of playlist lines by rewrite result",
	}, []string{"result"})

	PassthroughBytes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "hls_proxy_passthrough_bytes_total",
		Help: "Total number of bytes streamed through unmodified",
	})
)

func RecordRequest(kind string) {
	Requests.WithLabelValues(kind).Inc()
}

// RecordPlaylistLines adds the per-result counts of one rewritten playlist.
func RecordPlaylistLines(rewritten, kept, malformed int) {
	PlaylistLines.WithLabelValues("rewritten").Add(float64(rewritten))
	PlaylistLines.WithLabelValues("kept").Add(float64(kept))
	PlaylistLines.WithLabelValues("malformed").Add(float64(malformed))
}
