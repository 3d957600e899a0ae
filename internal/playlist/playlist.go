// Package playlist classifies upstream responses as HLS playlists and
// rewrites playlist URI lines so they route back through the proxy.
package playlist

import (
	"net/url"
	"regexp"
	"strings"
)

// ContentType is the content type of every rewritten playlist.
const ContentType = "application/vnd.apple.mpegurl"

var (
	contentTypePattern = regexp.MustCompile(`(?i)application/vnd\.apple\.mpegurl|application/x-mpegURL|audio/mpegurl|vnd\.apple\.mpegurl|\.m3u8(\W|$)`)
	targetPattern      = regexp.MustCompile(`(?i)\.m3u8(\?|$)`)
	lineBreak          = regexp.MustCompile(`\r?\n`)
)

// IsPlaylist reports whether an upstream response is an HLS playlist. Either
// the content type or the target URL alone is enough.
func IsPlaylist(contentType, target string) bool {
	return contentTypePattern.MatchString(contentType) || targetPattern.MatchString(target)
}

// ProxyURI builds the proxy-relative URI a rewritten line points to.
func ProxyURI(proxyPath, which, target string) string {
	return proxyPath + "?which=" + url.QueryEscape(which) + "&u=" + url.QueryEscape(target)
}

type Rewriter struct {
	ProxyPath string

	// OnMalformed is called for each URI line that could not be resolved.
	// The line is kept as-is whether or not it is set.
	OnMalformed func(line string, err error)
}

type Result struct {
	Text string

	Rewritten int
	Kept      int
	Malformed int
}

// Rewrite replaces every URI line of body with a proxy URI carrying which and
// the line resolved against target. Tag, comment and blank lines are kept
// byte-for-byte. Lines are joined with "\n" whatever the input used.
func (r *Rewriter) Rewrite(body, target, which string) Result {
	var res Result

	base, baseErr := url.Parse(target)

	lines := lineBreak.Split(body, -1)
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			res.Kept++
			continue
		}

		if baseErr != nil {
			r.malformed(line, baseErr)
			res.Malformed++
			continue
		}

		ref, err := url.Parse(trimmed)
		if err != nil {
			r.malformed(line, err)
			res.Malformed++
			continue
		}

		lines[i] = ProxyURI(r.ProxyPath, which, base.ResolveReference(ref).String())
		res.Rewritten++
	}

	res.Text = strings.Join(lines, "\n")
	return res
}

func (r *Rewriter) malformed(line string, err error) {
	if r.OnMalformed != nil {
		r.OnMalformed(line, err)
	}
}
