package rest

import "github.com/gin-gonic/gin"

// Register serves the proxy on its own path and on every path no other route
// claims.
func Register(r *gin.Engine, h *Handler) {
	r.Any(h.proxyPath, h.Proxy)
	r.NoRoute(h.Proxy)
}
