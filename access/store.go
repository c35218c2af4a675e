// access/store.go

package access

import (
	"context"

	"github.com/Dev-Muhammad-Junaid/links-maker/db"
	"github.com/Dev-Muhammad-Junaid/links-maker/model"
)

// RedisStore persists verdict snapshots through the shared Redis client.
type RedisStore struct{}

func NewRedisStore() *RedisStore {
	return &RedisStore{}
}

func (s *RedisStore) LoadEntries(ctx context.Context) ([]model.CacheEntry, error) {
	return db.LoadAccessEntries(ctx)
}

func (s *RedisStore) SaveEntries(ctx context.Context, entries []model.CacheEntry) error {
	return db.SaveAccessEntries(ctx, entries)
}
