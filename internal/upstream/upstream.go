// Package upstream performs the single outbound fetch behind each proxy
// request.
package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"
)

// Forwarded lists the only inbound headers passed to the upstream.
var Forwarded = []string{"Range", "Accept", "User-Agent"}

// FetchError wraps any failure to obtain an upstream response.
type FetchError struct {
	Target string
	Err    error
}

func (e *FetchError) Error() string {
	// url.Error repeats the method and target; callers already know both.
	var uerr *url.Error
	if errors.As(e.Err, &uerr) {
		return uerr.Err.Error()
	}

	return e.Err.Error()
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

type Client struct {
	HTTP *http.Client
}

// New returns a client that follows redirects. A zero timeout means the
// fetch is bounded only by the request context.
func New(timeout time.Duration) *Client {
	return &Client{
		HTTP: &http.Client{Timeout: timeout},
	}
}

// ForwardHeaders copies the allowed headers that are present on in.
func ForwardHeaders(in http.Header) http.Header {
	out := make(http.Header, len(Forwarded))
	for _, name := range Forwarded {
		if v := in.Get(name); v != "" {
			out.Set(name, v)
		}
	}

	return out
}

// Fetch issues a GET for target with the forwardable subset of in. The caller
// closes the response body.
func (c *Client) Fetch(ctx context.Context, target string, in http.Header) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &FetchError{Target: target, Err: err}
	}

	req.Header = ForwardHeaders(in)

	// Go sets its own User-Agent when none is given; keep the request bare.
	if req.Header.Get("User-Agent") == "" {
		req.Header["User-Agent"] = []string{""}
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, &FetchError{Target: target, Err: err}
	}

	return resp, nil
}
