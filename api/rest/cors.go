package rest

import "net/http"

var corsHeaders = map[string]string{
	"Access-Control-Allow-Origin":   "*",
	"Access-Control-Allow-Methods":  "GET,HEAD,OPTIONS",
	"Access-Control-Allow-Headers":  "Range,Content-Type,Authorization",
	"Access-Control-Expose-Headers": "Accept-Ranges,Content-Range,Content-Length",
}

// Hop-by-hop headers are never copied from the upstream response.
var hopHeaders = []string{
	"Connection",
	"Keep-Alive",
	"Proxy-Authenticate",
	"Proxy-Authorization",
	"Proxy-Connection",
	"Te",
	"Trailer",
	"Transfer-Encoding",
	"Upgrade",
}

func setCORS(h http.Header) {
	for k, v := range corsHeaders {
		h.Set(k, v)
	}
}

func copyHeaders(dst, src http.Header) {
	for k, vv := range src {
		for _, v := range vv {
			dst.Add(k, v)
		}
	}

	for _, k := range hopHeaders {
		dst.Del(k)
	}
}
