package upstream

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForwardHeaders(t *testing.T) {
	in := http.Header{}
	in.Set("Range", "bytes=0-99")
	in.Set("Accept", "*/*")
	in.Set("User-Agent", "player/1.0")
	in.Set("Cookie", "session=secret")
	in.Set("Authorization", "Bearer token")
	in.Set("X-Forwarded-For", "10.0.0.1")

	out := ForwardHeaders(in)

	assert.Len(t, out, 3)
	assert.Equal(t, "bytes=0-99", out.Get("Range"))
	assert.Equal(t, "*/*", out.Get("Accept"))
	assert.Equal(t, "player/1.0", out.Get("User-Agent"))
	assert.Empty(t, out.Get("Cookie"))
	assert.Empty(t, out.Get("Authorization"))
}

func TestForwardHeadersOnlyWhenPresent(t *testing.T) {
	in := http.Header{}
	in.Set("Accept", "application/vnd.apple.mpegurl")

	out := ForwardHeaders(in)

	assert.Len(t, out, 1)
	_, ok := out["Range"]
	assert.False(t, ok)
}

func TestFetchForwardsOnlyAllowedHeaders(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		got = r.Header.Clone()
		io.WriteString(w, "ok")
	}))
	defer srv.Close()

	in := http.Header{}
	in.Set("Range", "bytes=10-")
	in.Set("Cookie", "a=b")
	in.Set("Authorization", "Basic Zm9vOmJhcg==")

	resp, err := New(0).Fetch(context.Background(), srv.URL+"/seg.ts", in)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "bytes=10-", got.Get("Range"))
	assert.Empty(t, got.Get("Cookie"))
	assert.Empty(t, got.Get("Authorization"))
	assert.Empty(t, got.Get("User-Agent"))
}

func TestFetchFollowsRedirects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/new", http.StatusFound)
	})
	mux.HandleFunc("/new", func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "moved")
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	resp, err := New(0).Fetch(context.Background(), srv.URL+"/old", nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "moved", string(body))
}

func TestFetchTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	target := srv.URL + "/gone.ts"
	srv.Close()

	_, err := New(0).Fetch(context.Background(), target, nil)
	require.Error(t, err)

	var ferr *FetchError
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, target, ferr.Target)
	assert.NotContains(t, ferr.Error(), "Get ")
}

func TestFetchInvalidTarget(t *testing.T) {
	_, err := New(0).Fetch(context.Background(), "://no-scheme", nil)

	var ferr *FetchError
	assert.True(t, errors.As(err, &ferr))
}

func TestFetchTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := New(50*time.Millisecond).Fetch(context.Background(), srv.URL, nil)

	var ferr *FetchError
	require.True(t, errors.As(err, &ferr))
}
