package model

import (
	"fmt"
	"strings"
	"time"
)

// Account is one signed-in Google identity the user can switch to.
// AuthIndex is the authuser selector Google's multi-login uses; Email is the
// stable identifier when known (the index can be reassigned by Google).
type Account struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	AuthIndex int       `json:"auth_index"`
	Email     string    `json:"email,omitempty"`
	PhotoURL  string    `json:"photo_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CacheKey returns the identifier verdicts are cached under. Email wins over
// the raw index so relabeling or reindexing a known account keeps its entries.
func (a Account) CacheKey() string {
	if a.Email != "" {
		return "email:" + strings.ToLower(a.Email)
	}
	return AuthIndexCacheKey(a.AuthIndex)
}

// AuthIndexCacheKey is the fallback key for accounts without a known email.
func AuthIndexCacheKey(authIndex int) string {
	return fmt.Sprintf("auth:%d", authIndex)
}

// DefaultAccounts seeds the store on first run.
func DefaultAccounts() []Account {
	return []Account{
		{ID: "work", Label: "Work", AuthIndex: 0},
		{ID: "personal", Label: "Personal", AuthIndex: 1},
	}
}

type AccountSearchCriteria struct {
	Label     string `json:"label,omitempty"`
	Email     string `json:"email,omitempty"`
	AuthIndex *int   `json:"auth_index,omitempty"`
	Limit     int    `json:"limit,omitempty"`
	Offset    int    `json:"offset,omitempty"`
}
