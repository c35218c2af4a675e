// access/fetcher.go

package access

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/Dev-Muhammad-Junaid/links-maker/model"
)

var meetCodePathRe = regexp.MustCompile(`(?i)^/[a-z]{3}-[a-z]{4}-[a-z]{3}(\W|$)`)

// ErrProbeExec marks failures of the probe machinery itself (building the
// request, reading the response) as opposed to the fetch failing on the wire.
var ErrProbeExec = errors.New("probe execution failed")

// Fetcher performs the credentialed request a probe needs: follow redirects,
// report the final URL and a bounded body prefix. Implementations must not
// serve from an HTTP cache.
type Fetcher interface {
	Probe(ctx context.Context, rawURL string) (*model.ProbeResponse, error)
}

// HTTPFetcher probes with a cookie-bearing HTTP client. The client timeout is
// the only bound on a stuck probe.
type HTTPFetcher struct {
	client       *http.Client
	snippetLimit int
}

func NewHTTPFetcher(timeout time.Duration, snippetLimit int) *HTTPFetcher {
	jar, _ := cookiejar.New(nil)
	return &HTTPFetcher{
		client: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
		snippetLimit: snippetLimit,
	}
}

func (f *HTTPFetcher) Probe(ctx context.Context, rawURL string) (*model.ProbeResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProbeExec, err)
	}
	req.Header.Set("Cache-Control", "no-store")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("probe fetch failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, int64(f.snippetLimit)))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrProbeExec, err)
	}

	return &model.ProbeResponse{
		Status:        resp.StatusCode,
		FinalURL:      resp.Request.URL.String(),
		BodySnippet:   strings.ToLower(string(body)),
		CanonicalLink: extractCanonicalLink(string(body)),
	}, nil
}

// extractCanonicalLink pulls <link rel="canonical"> from the body prefix.
// Best effort: a truncated or unparsable document just yields "".
func extractCanonicalLink(body string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return ""
	}
	href, _ := doc.Find(`link[rel="canonical"]`).Attr("href")
	return href
}
