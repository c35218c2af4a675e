// audit/model.go
package audit

import "time"

// ProbeLog is one classification decision: which account probed which
// resource, what came back and which rule decided the verdict.
type ProbeLog struct {
	Timestamp  time.Time `json:"timestamp"`
	AccountKey string    `json:"account_key"`
	AuthIndex  int       `json:"auth_index"`
	ResourceID string    `json:"resource_id,omitempty"`
	URL        string    `json:"url"`
	Status     string    `json:"status"`
	Rule       string    `json:"rule,omitempty"`
	Code       int       `json:"code,omitempty"`
	FinalURL   string    `json:"final_url,omitempty"`
	Cached     bool      `json:"cached"`
}
