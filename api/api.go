package api

import (
	"log/slog"
	"net/http"

	"github.com/MinnaSync/minna-hls-proxy/api/rest"
	"github.com/MinnaSync/minna-hls-proxy/config"
	"github.com/MinnaSync/minna-hls-proxy/handlers"
	"github.com/MinnaSync/minna-hls-proxy/internal/streams"
	"github.com/MinnaSync/minna-hls-proxy/internal/upstream"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// New builds the router for conf. Nothing in it reads the environment.
func New(conf config.Config, log *slog.Logger) *gin.Engine {
	r := gin.New()
	// A redirect would answer preflights without CORS headers.
	r.RedirectTrailingSlash = false
	r.Use(gin.Recovery(), handlers.RequestID, handlers.AccessLog(log))

	r.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	if conf.MetricsEnabled {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	mapping := streams.NewMapping(conf.Streams.Mapping())
	log.Info("Streams configured.", "count", mapping.Len(), "default", conf.Streams.Default)

	rest.Register(r, rest.NewHandler(rest.Options{
		Streams:       mapping,
		DefaultStream: conf.Streams.Default,
		ProxyPath:     conf.ProxyPath,
		Upstream:      upstream.New(conf.UpstreamTimeout),
		Log:           log,
	}))

	return r
}
