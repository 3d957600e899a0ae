package handlers

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

// AccessLog replaces gin's default logger with one structured line per request.
func AccessLog(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		if status >= 500 {
			level = slog.LevelWarn
		}

		log.Log(c.Request.Context(), level, "Request handled.",
			"request_id", GetRequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"bytes", c.Writer.Size(),
			"duration", time.Since(start),
		)
	}
}
