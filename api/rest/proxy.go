package rest

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/MinnaSync/minna-hls-proxy/handlers"
	"github.com/MinnaSync/minna-hls-proxy/internal/metrics"
	"github.com/MinnaSync/minna-hls-proxy/internal/playlist"
	"github.com/MinnaSync/minna-hls-proxy/internal/streams"
	"github.com/MinnaSync/minna-hls-proxy/internal/upstream"
	"github.com/gin-gonic/gin"
)

type Options struct {
	Streams       *streams.Mapping
	DefaultStream string
	ProxyPath     string
	Upstream      *upstream.Client
	Log           *slog.Logger
}

type Handler struct {
	streams       *streams.Mapping
	defaultStream string
	proxyPath     string
	upstream      *upstream.Client
	log           *slog.Logger
}

func NewHandler(opts Options) *Handler {
	h := &Handler{
		streams:       opts.Streams,
		defaultStream: strings.ToLower(opts.DefaultStream),
		proxyPath:     opts.ProxyPath,
		upstream:      opts.Upstream,
		log:           opts.Log,
	}

	if h.streams == nil {
		h.streams = streams.NewMapping(nil)
	}
	if h.defaultStream == "" {
		h.defaultStream = "sky"
	}
	if h.proxyPath == "" {
		h.proxyPath = "/proxy"
	}
	if h.upstream == nil {
		h.upstream = upstream.New(0)
	}
	if h.log == nil {
		h.log = slog.Default()
	}

	return h
}

func (h *Handler) Proxy(c *gin.Context) {
	setCORS(c.Writer.Header())

	if c.Request.Method == http.MethodOptions {
		metrics.RecordRequest(metrics.KindPreflight)
		c.AbortWithStatus(http.StatusNoContent)
		return
	}

	which := strings.ToLower(c.Query("which"))
	if which == "" {
		which = h.defaultStream
	}

	log := h.log.With("request_id", handlers.GetRequestID(c), "which", which)

	target := c.Query("u")
	if target == "" {
		url, ok := h.streams.Lookup(which)
		if !ok {
			log.Warn("Stream not found.")
			metrics.RecordRequest(metrics.KindNotFound)
			c.String(http.StatusNotFound, "Stream not found")
			return
		}
		target = url
	}
	log = log.With("target", target)

	start := time.Now()
	resp, err := h.upstream.Fetch(c.Request.Context(), target, c.Request.Header)
	metrics.UpstreamDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		h.upstreamFailed(c, log, err)
		return
	}
	defer resp.Body.Close()

	if playlist.IsPlaylist(resp.Header.Get("Content-Type"), target) {
		h.rewritePlaylist(c, log, resp, target, which)
		return
	}

	h.passthrough(c, log, resp)
}

func (h *Handler) passthrough(c *gin.Context, log *slog.Logger, resp *http.Response) {
	header := c.Writer.Header()
	copyHeaders(header, resp.Header)
	setCORS(header)

	metrics.RecordRequest(metrics.KindPassthrough)
	c.Status(resp.StatusCode)
	c.Writer.WriteHeaderNow()

	n, err := copyFlushing(c.Writer, resp.Body)
	metrics.PassthroughBytes.Add(float64(n))
	if err != nil && !errors.Is(err, http.ErrBodyNotAllowed) {
		log.Debug("Passthrough body copy stopped.", "bytes", n, "err", err)
	}
}

func (h *Handler) upstreamFailed(c *gin.Context, log *slog.Logger, err error) {
	log.Warn("Upstream fetch failed.", "err", err)
	metrics.RecordRequest(metrics.KindUpstreamError)

	c.String(http.StatusBadGateway, "Upstream fetch failed: "+err.Error())
}

// copyFlushing flushes after every read so the client sees segment bytes as
// soon as the upstream sends them.
func copyFlushing(w gin.ResponseWriter, r io.Reader) (int64, error) {
	buf := make([]byte, 32*1024)

	var written int64
	for {
		nr, rerr := r.Read(buf)
		if nr > 0 {
			nw, werr := w.Write(buf[:nr])
			written += int64(nw)
			if werr != nil {
				return written, werr
			}
			w.Flush()
		}

		if rerr == io.EOF {
			return written, nil
		}
		if rerr != nil {
			return written, rerr
		}
	}
}
