// util/resource_util.go

package util

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	docsFileIDRe  = regexp.MustCompile(`/(document|spreadsheets|presentation)/(?:u/\d+/)?d/([^/]+)`)
	driveFileIDRe = regexp.MustCompile(`/file/d/([^/]+)`)
)

// ExtractResourceID derives the stable identity of the thing a URL points at,
// independent of which account is viewing it. Rules are tried in order and
// the first match wins; false means the resource type is unsupported and the
// caller must skip caching and probing. Pure function, no network.
func ExtractResourceID(rawURL string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}
	host := u.Hostname()
	path := u.Path

	if host == docsHost {
		if m := docsFileIDRe.FindStringSubmatch(path); m != nil {
			return m[1] + ":" + m[2], true
		}
	}
	if host == driveHost {
		if m := driveFileIDRe.FindStringSubmatch(path); m != nil {
			return "driveFile:" + m[1], true
		}
	}
	if qid := u.Query().Get("id"); qid != "" && isGoogleSuffix(host) {
		return "driveFile:" + qid, true
	}
	if host == meetHost {
		p := strings.Trim(StripMeetUIndex(path), "/")
		if p != "" {
			return "meet:" + p, true
		}
	}
	return "", false
}

func isGoogleSuffix(host string) bool {
	return host == "google.com" || strings.HasSuffix(host, ".google.com")
}
