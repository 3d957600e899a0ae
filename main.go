package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/MinnaSync/minna-hls-proxy/api"
	"github.com/MinnaSync/minna-hls-proxy/config"
	"github.com/MinnaSync/minna-hls-proxy/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// A missing .env is fine; the environment may already be set.
	envErr := godotenv.Load()

	conf, err := config.Load()
	if err != nil {
		logger.Log.Error("Invalid configuration.", "err", err)
		os.Exit(1)
	}

	if err := logger.Init(conf.LogLevel, conf.LogFormat, os.Stdout); err != nil {
		logger.Log.Error("Failed to initialize logger.", "err", err)
		os.Exit(1)
	}

	if envErr != nil {
		logger.Log.Debug("No .env file loaded.", "err", envErr)
	}

	gin.SetMode(conf.GinMode)

	srv := &http.Server{
		Addr:    ":" + conf.Port,
		Handler: api.New(conf, logger.Log),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Log.Info("HLS proxy listening.", "addr", srv.Addr, "default_stream", conf.Streams.Default)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("Server stopped.", "err", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), conf.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Graceful shutdown failed.", "err", err)
		os.Exit(1)
	}
}
