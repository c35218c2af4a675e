package model

import "time"

// AccessStatus is a probe's verdict for one account.
type AccessStatus string

const (
	StatusAccess   AccessStatus = "access"
	StatusNoAccess AccessStatus = "no_access"
	StatusUnknown  AccessStatus = "unknown"
)

// Reason codes for unknown verdicts that never reached classification.
const (
	ReasonBadURL     = "bad_url"
	ReasonFetchError = "fetch_error"
	ReasonExecError  = "exec_error"
)

// AccessResult is the outcome of probing one resource as one account.
// Results are immutable once produced; cache entries are replaced, not edited.
type AccessResult struct {
	Status   AccessStatus `json:"status"`
	Code     int          `json:"code,omitempty"`
	FinalURL string       `json:"final_url,omitempty"`
	Reason   string       `json:"reason,omitempty"`
	Rule     string       `json:"rule,omitempty"`
}

// ProbeResponse is what the fetch bridge hands to the classifier.
type ProbeResponse struct {
	Status        int    `json:"status"`
	FinalURL      string `json:"final_url"`
	BodySnippet   string `json:"body_snippet,omitempty"`
	CanonicalLink string `json:"canonical_link,omitempty"`
}

// Classification is the classifier's verdict plus the rule that produced it.
type Classification struct {
	Status AccessStatus `json:"status"`
	Rule   string       `json:"rule"`
}

// CacheEntry is one cached verdict. Key is resourceID + "|" + account key.
type CacheEntry struct {
	Key       string       `json:"key"`
	Result    AccessResult `json:"result"`
	CreatedAt time.Time    `json:"created_at"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// CheckAccessRequest is the wire shape UI surfaces send.
type CheckAccessRequest struct {
	URL          string `json:"url" binding:"required"`
	Context      string `json:"context,omitempty"`
	ForceRefresh bool   `json:"force_refresh,omitempty"`
}

// CheckAccessResponse maps auth index -> verdict. Supported is false when the
// URL identifies no probeable resource; Cached is true when every verdict was
// served from the cache.
type CheckAccessResponse struct {
	OK        bool                 `json:"ok"`
	Supported bool                 `json:"supported"`
	Cached    bool                 `json:"cached"`
	Results   map[int]AccessResult `json:"results"`
}

// InvalidateRequest selects which cached verdicts to drop. All fields empty
// means clear everything.
type InvalidateRequest struct {
	ResourceID string `json:"resource_id,omitempty"`
	AccountKey string `json:"account_key,omitempty"`
	AuthIndex  *int   `json:"auth_index,omitempty"`
}
