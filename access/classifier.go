// access/classifier.go

package access

import (
	"net/url"
	"strings"

	logger "github.com/Dev-Muhammad-Junaid/links-maker/logging"
	"github.com/Dev-Muhammad-Junaid/links-maker/model"
	"github.com/Dev-Muhammad-Junaid/links-maker/util"
	"go.uber.org/zap"
)

// Rule names, fixed so tests and the probe trail can refer to them.
const (
	RuleLoginOrDenied      = "login_or_denied"
	RuleMeetLookup         = "meet_lookup"
	RuleMeetBody           = "meet_body"
	RuleMeetCodeOrV2       = "meet_code_or_v2"
	RuleMeetLandingUnknown = "meet_landing_unknown"
	RuleFallbackStatus     = "fallback_status"
)

var meetBodyDenials = []string{
	"ask to join",
	"request to join",
	"can't join",
	"can’t join",
	"doesn't exist",
	"doesn’t exist",
}

// Classifier turns a probe response into an access verdict. Status codes
// alone are not enough: Meet answers 200 for rooms the account cannot enter,
// so URL shape and page markup break the tie. The rules form an ordered
// decision table; the first match wins, which makes the verdict a pure
// function of the probe response.
type Classifier struct {
	rules []rule
}

type rule struct {
	name  string
	apply func(in probeFacts) (model.AccessStatus, bool)
}

// probeFacts is the decomposed probe response the rules match against.
type probeFacts struct {
	status    int
	finalURL  string
	finalHost string
	path      string // final URL path with any /u/<n>/ prefix stripped
	snippet   string // lower-cased body prefix, may be empty
}

func NewClassifier() *Classifier {
	return &Classifier{
		rules: []rule{
			{RuleLoginOrDenied, ruleLoginOrDenied},
			{RuleMeetLookup, ruleMeetLookup},
			{RuleMeetBody, ruleMeetBody},
			{RuleMeetCodeOrV2, ruleMeetCodeOrV2},
			{RuleMeetLandingUnknown, ruleMeetLandingUnknown},
			{RuleFallbackStatus, ruleFallbackStatus},
		},
	}
}

// Classify applies the decision table. Deterministic for a fixed input.
func (c *Classifier) Classify(in model.ProbeResponse) model.Classification {
	facts := newProbeFacts(in)
	for _, r := range c.rules {
		if status, ok := r.apply(facts); ok {
			logger.Debug("Probe classified",
				zap.String("rule", r.name),
				zap.String("status", string(status)),
				zap.Int("code", in.Status),
				zap.String("finalUrl", in.FinalURL))
			return model.Classification{Status: status, Rule: r.name}
		}
	}
	// The fallback rule always matches; this is unreachable.
	return model.Classification{Status: model.StatusUnknown, Rule: RuleFallbackStatus}
}

func newProbeFacts(in model.ProbeResponse) probeFacts {
	facts := probeFacts{
		status:   in.Status,
		finalURL: in.FinalURL,
		snippet:  strings.ToLower(in.BodySnippet),
	}
	if u, err := url.Parse(in.FinalURL); err == nil {
		facts.finalHost = u.Hostname()
		p := u.Path
		if p == "" {
			p = "/"
		}
		facts.path = util.StripMeetUIndex(p)
	}
	return facts
}

func okStatus(status int) bool {
	return status == 200 || status == 204
}

func deniedStatus(status int) bool {
	return status == 401 || status == 403
}

func ruleLoginOrDenied(in probeFacts) (model.AccessStatus, bool) {
	if deniedStatus(in.status) || strings.Contains(in.finalURL, "accounts.google.com") {
		return model.StatusNoAccess, true
	}
	return "", false
}

// A lookup redirect means Meet could not resolve the code to a live room for
// this account.
func ruleMeetLookup(in probeFacts) (model.AccessStatus, bool) {
	if in.finalHost == "meet.google.com" && strings.HasPrefix(in.path, "/lookup/") {
		return model.StatusNoAccess, true
	}
	return "", false
}

// Markup refinement: the join controls only render for accounts that can
// enter the room, so their presence settles the ambiguous 200 cases.
func ruleMeetBody(in probeFacts) (model.AccessStatus, bool) {
	if in.finalHost != "meet.google.com" || in.snippet == "" {
		return "", false
	}
	if strings.Contains(in.snippet, "join now") || strings.Contains(in.snippet, "rejoin") {
		return model.StatusAccess, true
	}
	for _, marker := range meetBodyDenials {
		if strings.Contains(in.snippet, marker) {
			return model.StatusNoAccess, true
		}
	}
	return "", false
}

func ruleMeetCodeOrV2(in probeFacts) (model.AccessStatus, bool) {
	if in.finalHost != "meet.google.com" || !okStatus(in.status) {
		return "", false
	}
	if isMeetCodePath(in.path) || strings.HasPrefix(in.path, "/v2/") {
		return model.StatusAccess, true
	}
	return "", false
}

// The landing page is ambiguous: Meet serves it both for rooms that do not
// exist at all and for codes this account cannot resolve.
func ruleMeetLandingUnknown(in probeFacts) (model.AccessStatus, bool) {
	if in.finalHost == "meet.google.com" && in.path == "/landing" && okStatus(in.status) {
		return model.StatusUnknown, true
	}
	return "", false
}

func ruleFallbackStatus(in probeFacts) (model.AccessStatus, bool) {
	switch {
	case okStatus(in.status):
		return model.StatusAccess, true
	case deniedStatus(in.status):
		return model.StatusNoAccess, true
	default:
		return model.StatusUnknown, true
	}
}

func isMeetCodePath(path string) bool {
	return meetCodePathRe.MatchString(path)
}
