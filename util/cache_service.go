// util/cache_service.go

package util

import (
	"context"

	"github.com/Dev-Muhammad-Junaid/links-maker/db"
	"github.com/Dev-Muhammad-Junaid/links-maker/model"
)

// CacheService fronts the Redis entity cache for account configuration.
type CacheService struct{}

func NewCacheService() *CacheService {
	return &CacheService{}
}

func (c *CacheService) GetAccount(ctx context.Context, accountID string) (*model.Account, error) {
	return db.GetCachedAccount(ctx, accountID)
}

func (c *CacheService) SetAccount(ctx context.Context, account model.Account) error {
	return db.CacheAccount(ctx, &account)
}

func (c *CacheService) DeleteAccount(ctx context.Context, accountID string) error {
	return db.DeleteCachedAccount(ctx, accountID)
}

func (c *CacheService) GetAccountList(ctx context.Context) ([]model.Account, error) {
	return db.GetCachedAccountList(ctx)
}

func (c *CacheService) SetAccountList(ctx context.Context, accounts []model.Account) error {
	return db.CacheAccountList(ctx, accounts)
}

func (c *CacheService) DeleteAccountList(ctx context.Context) error {
	return db.DeleteCachedAccountList(ctx)
}
