// model/account_test.go
package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Dev-Muhammad-Junaid/links-maker/model"
)

func TestAccountCacheKey(t *testing.T) {
	withEmail := model.Account{AuthIndex: 3, Email: "Someone@Example.COM"}
	assert.Equal(t, "email:someone@example.com", withEmail.CacheKey(), "email keys are case folded")

	withoutEmail := model.Account{AuthIndex: 3}
	assert.Equal(t, "auth:3", withoutEmail.CacheKey())
}

func TestDefaultAccounts(t *testing.T) {
	accounts := model.DefaultAccounts()
	assert.Len(t, accounts, 2)
	assert.Equal(t, 0, accounts[0].AuthIndex)
	assert.Equal(t, 1, accounts[1].AuthIndex)
}
