package rest

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/MinnaSync/minna-hls-proxy/internal/metrics"
	"github.com/MinnaSync/minna-hls-proxy/internal/playlist"
	"github.com/gin-gonic/gin"
)

func (h *Handler) rewritePlaylist(c *gin.Context, log *slog.Logger, resp *http.Response, target, which string) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		h.upstreamFailed(c, log, err)
		return
	}

	rw := playlist.Rewriter{
		ProxyPath: h.proxyPath,
		OnMalformed: func(line string, err error) {
			log.Debug("Kept unparsable playlist line.", "line", line, "err", err)
		},
	}
	res := rw.Rewrite(string(body), target, which)
	metrics.RecordPlaylistLines(res.Rewritten, res.Kept, res.Malformed)

	if log.Enabled(c.Request.Context(), slog.LevelDebug) {
		inspect(c.Request.Context(), log, string(body))
	}

	header := c.Writer.Header()
	copyHeaders(header, resp.Header)
	header.Del("Content-Length")
	header.Set("Content-Type", playlist.ContentType)
	setCORS(header)

	metrics.RecordRequest(metrics.KindPlaylist)
	c.Status(resp.StatusCode)
	if _, err := c.Writer.WriteString(res.Text); err != nil {
		log.Debug("Failed to write playlist.", "err", err)
		return
	}

	// Flushing before returning stops net/http from adding a Content-Length.
	c.Writer.Flush()
}

func inspect(ctx context.Context, log *slog.Logger, text string) {
	s, err := playlist.Inspect(text)
	if err != nil {
		log.DebugContext(ctx, "Playlist could not be inspected.", "err", err)
		return
	}

	log.DebugContext(ctx, "Rewrote playlist.",
		"master", s.Master,
		"variants", s.Variants,
		"segments", s.Segments,
		"keys", s.Keys,
		"duration", s.Duration,
	)
}
