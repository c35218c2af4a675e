// access/fetcher_test.go
package access

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHTTPFetcherProbe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/redirect":
			http.Redirect(w, r, "/final", http.StatusFound)
		case "/final":
			fmt.Fprint(w, `<html><head><link rel="canonical" href="https://docs.google.com/document/d/abc/edit"></head><body>Join Now</body></html>`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	fetcher := NewHTTPFetcher(5*time.Second, 4000)

	resp, err := fetcher.Probe(context.Background(), server.URL+"/redirect")
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.Status)
	assert.Equal(t, server.URL+"/final", resp.FinalURL, "redirects must be followed to the final URL")
	assert.Contains(t, resp.BodySnippet, "join now", "snippet must be lower-cased")
	assert.Equal(t, "https://docs.google.com/document/d/abc/edit", resp.CanonicalLink)
}

func TestHTTPFetcherSnippetLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, strings.Repeat("x", 10000))
	}))
	defer server.Close()

	fetcher := NewHTTPFetcher(5*time.Second, 100)

	resp, err := fetcher.Probe(context.Background(), server.URL)
	assert.NoError(t, err)
	assert.Len(t, resp.BodySnippet, 100)
}

func TestHTTPFetcherFetchError(t *testing.T) {
	fetcher := NewHTTPFetcher(time.Second, 100)

	// A closed server refuses the connection
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := fetcher.Probe(context.Background(), url)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrProbeExec, "a wire failure is a fetch error, not an exec error")
}

func TestHTTPFetcherExecError(t *testing.T) {
	fetcher := NewHTTPFetcher(time.Second, 100)

	_, err := fetcher.Probe(context.Background(), "http://host\x00bad")
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrProbeExec)
}
