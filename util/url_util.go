// util/url_util.go

package util

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

const (
	docsHost     = "docs.google.com"
	driveHost    = "drive.google.com"
	meetHost     = "meet.google.com"
	accountsHost = "accounts.google.com"
)

var (
	googleHostPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(^|\.)google\.com$`),
		regexp.MustCompile(`(^|\.)cloud\.google\.com$`),
	}

	pathUIndexRe    = regexp.MustCompile(`(/)u/(\d+)(/|$)`)
	docsDocPathRe   = regexp.MustCompile(`/(document|spreadsheets|presentation)/(?:u/\d+/)?d/`)
	docsUIndexRe    = regexp.MustCompile(`/(document|spreadsheets|presentation)/u/\d+/d/`)
	docsInsertRe    = regexp.MustCompile(`/(document|spreadsheets|presentation)/d/`)
	meetUPrefixRe   = regexp.MustCompile(`^/u/\d+/`)
	meetCodeRe      = regexp.MustCompile(`(?i)^/[a-z]{3}-[a-z]{4}-[a-z]{3}(\W|$)`)
	meetLookupRe    = regexp.MustCompile(`^/lookup/`)
	meetV2Re        = regexp.MustCompile(`^/v2/`)
	authIndexPathRe = regexp.MustCompile(`/u/(\d+)`)
)

// IsGoogleHost reports whether the hostname belongs to the Google domain
// family the rewriter knows how to address.
func IsGoogleHost(hostname string) bool {
	for _, re := range googleHostPatterns {
		if re.MatchString(hostname) {
			return true
		}
	}
	return false
}

// RewriteForAccount rewrites rawURL so Google serves it as the account at
// authIndex. The authuser query parameter is always set; on Google hosts the
// /u/<n>/ path selector is replaced or inserted as well. Returns false when
// the URL does not parse as an absolute URL; callers must not navigate then.
func RewriteForAccount(rawURL string, authIndex int) (string, bool) {
	if authIndex < 0 {
		return "", false
	}
	u, err := url.Parse(rawURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return "", false
	}

	if IsGoogleHost(u.Hostname()) {
		setAuthUserParam(u, authIndex)
		replacePathUIndex(u, authIndex)
		ensureDocsUIndex(u, authIndex)
		ensureMeetUIndex(u, authIndex)
	} else {
		setAuthUserParam(u, authIndex)
	}

	return u.String(), true
}

func setAuthUserParam(u *url.URL, authIndex int) {
	params := u.Query()
	params.Set("authuser", strconv.Itoa(authIndex))
	u.RawQuery = params.Encode()
}

// replacePathUIndex swaps the digits of an existing /u/<n>/ path segment.
func replacePathUIndex(u *url.URL, authIndex int) {
	replaced := replaceFirst(pathUIndexRe, u.Path, func(groups []string) string {
		return groups[1] + "u/" + strconv.Itoa(authIndex) + groups[3]
	})
	if replaced != u.Path {
		setPath(u, replaced)
	}
}

// ensureDocsUIndex inserts /u/<n>/ in front of the /d/<id> segment on
// document, spreadsheet and presentation paths that lack one.
func ensureDocsUIndex(u *url.URL, authIndex int) {
	if u.Hostname() != docsHost {
		return
	}
	p := u.Path
	if !docsDocPathRe.MatchString(p) || docsUIndexRe.MatchString(p) {
		return
	}
	setPath(u, replaceFirst(docsInsertRe, p, func(groups []string) string {
		return "/" + groups[1] + "/u/" + strconv.Itoa(authIndex) + "/d/"
	}))
}

// ensureMeetUIndex prepends /u/<n>/ on Meet paths. The bare root has no safe
// rewrite target and already-prefixed paths are left alone.
func ensureMeetUIndex(u *url.URL, authIndex int) {
	if u.Hostname() != meetHost {
		return
	}
	p := u.Path
	if p == "" {
		p = "/"
	}
	if meetUPrefixRe.MatchString(p) || p == "/" {
		return
	}
	setPath(u, fmt.Sprintf("/u/%d/%s", authIndex, strings.TrimPrefix(p, "/")))
}

// ParseAuthIndex extracts the account index a URL is addressed to: the
// authuser query parameter first, then a /u/<digits> path segment.
func ParseAuthIndex(rawURL string) (int, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return 0, false
	}
	if q := u.Query().Get("authuser"); q != "" {
		idx, err := strconv.Atoi(q)
		if err != nil {
			return 0, false
		}
		return idx, true
	}
	if m := authIndexPathRe.FindStringSubmatch(u.Path); m != nil {
		idx, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, false
		}
		return idx, true
	}
	return 0, false
}

// IsMeetURL reports whether the URL looks like a Meet meeting: a meeting
// code, a /lookup/ redirect target, or a versioned API path on the Meet host.
func IsMeetURL(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() != meetHost {
		return false
	}
	p := u.Path
	if p == "" {
		p = "/"
	}
	return meetLookupRe.MatchString(p) || meetCodeRe.MatchString(p) || meetV2Re.MatchString(p)
}

// StripMeetUIndex removes a leading /u/<n>/ segment so two URLs for the same
// meeting under different accounts compare equal.
func StripMeetUIndex(path string) string {
	if path == "" {
		return "/"
	}
	if loc := meetUPrefixRe.FindStringIndex(path); loc != nil {
		return "/" + path[loc[1]:]
	}
	return path
}

// replaceFirst rewrites only the first match, handing submatches to repl.
func replaceFirst(re *regexp.Regexp, s string, repl func(groups []string) string) string {
	loc := re.FindStringSubmatchIndex(s)
	if loc == nil {
		return s
	}
	groups := make([]string, 0, len(loc)/2)
	for i := 0; i < len(loc); i += 2 {
		if loc[i] < 0 {
			groups = append(groups, "")
		} else {
			groups = append(groups, s[loc[i]:loc[i+1]])
		}
	}
	return s[:loc[0]] + repl(groups) + s[loc[1]:]
}

// setPath keeps Path and RawPath coherent after a rewrite.
func setPath(u *url.URL, p string) {
	u.Path = p
	u.RawPath = ""
}
