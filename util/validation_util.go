// util/validation_util.go

package util

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/Dev-Muhammad-Junaid/links-maker/model"
)

type ValidationUtil struct{}

func NewValidationUtil() *ValidationUtil {
	return &ValidationUtil{}
}

func (v *ValidationUtil) ValidateAccount(account model.Account) error {
	if account.Label == "" {
		return fmt.Errorf("account label cannot be empty")
	}
	if account.AuthIndex < 0 {
		return fmt.Errorf("account auth index cannot be negative")
	}
	if account.Email != "" && !strings.Contains(account.Email, "@") {
		return fmt.Errorf("account email is malformed")
	}
	return nil
}

// ValidateAccounts also rejects duplicate auth indices: duplicates make
// switching and cache keys ambiguous.
func (v *ValidationUtil) ValidateAccounts(accounts []model.Account) error {
	seen := make(map[int]bool, len(accounts))
	for _, account := range accounts {
		if err := v.ValidateAccount(account); err != nil {
			return err
		}
		if seen[account.AuthIndex] {
			return fmt.Errorf("duplicate auth index %d", account.AuthIndex)
		}
		seen[account.AuthIndex] = true
	}
	return nil
}

func (v *ValidationUtil) ValidateCheckAccessRequest(req model.CheckAccessRequest) error {
	if req.URL == "" {
		return fmt.Errorf("url cannot be empty")
	}
	u, err := url.Parse(req.URL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("url must be absolute")
	}
	return nil
}
