// db/redis.go
package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	logger "github.com/Dev-Muhammad-Junaid/links-maker/logging"
	"github.com/Dev-Muhammad-Junaid/links-maker/model"
)

const (
	accessCacheKey  = "lm:access_cache"
	accountListKey  = "lm:accounts"
	accountKeySpace = "account:%s"
)

var RedisClient *redis.Client

func InitRedis() error {
	RedisClient = redis.NewClient(&redis.Options{
		Addr:         viper.GetString("redis.addr"),
		Password:     viper.GetString("redis.password"),
		DB:           viper.GetInt("redis.db"),
		DialTimeout:  viper.GetDuration("redis.dialTimeout"),
		ReadTimeout:  viper.GetDuration("redis.readTimeout"),
		WriteTimeout: viper.GetDuration("redis.writeTimeout"),
		PoolSize:     viper.GetInt("redis.poolSize"),
		PoolTimeout:  viper.GetDuration("redis.poolTimeout"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := RedisClient.Ping(ctx).Result()
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Successfully connected to Redis")
	return nil
}

func CloseRedis() {
	if RedisClient != nil {
		if err := RedisClient.Close(); err != nil {
			logger.Error("Error closing Redis connection", zap.Error(err))
		}
	}
}

// SaveAccessEntries persists a full snapshot of the verdict cache. Entries
// carry their own expiry, so no Redis TTL is set on the snapshot key.
func SaveAccessEntries(ctx context.Context, entries []model.CacheEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to marshal access entries: %w", err)
	}
	if err := RedisClient.Set(ctx, accessCacheKey, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to persist access entries: %w", err)
	}
	logger.Debug("Access cache snapshot persisted", zap.Int("entries", len(entries)))
	return nil
}

// LoadAccessEntries reads the persisted verdict snapshot. A missing key is
// not an error, it just means a cold start.
func LoadAccessEntries(ctx context.Context) ([]model.CacheEntry, error) {
	data, err := RedisClient.Get(ctx, accessCacheKey).Result()
	if err == redis.Nil {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to load access entries: %w", err)
	}

	var entries []model.CacheEntry
	if err := json.Unmarshal([]byte(data), &entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal access entries: %w", err)
	}
	return entries, nil
}

func CacheAccount(ctx context.Context, account *model.Account) error {
	accountJSON, err := json.Marshal(account)
	if err != nil {
		return fmt.Errorf("failed to marshal account: %w", err)
	}

	key := fmt.Sprintf(accountKeySpace, account.ID)
	defaultTTL := viper.GetDuration("redis.defaultCacheTTL")
	err = RedisClient.Set(ctx, key, accountJSON, defaultTTL).Err()
	if err != nil {
		return fmt.Errorf("failed to cache account: %w", err)
	}

	logger.Debug("Account cached successfully", zap.String("accountID", account.ID))
	return nil
}

func GetCachedAccount(ctx context.Context, accountID string) (*model.Account, error) {
	key := fmt.Sprintf(accountKeySpace, accountID)
	accountJSON, err := RedisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		logger.Debug("Account not found in cache", zap.String("accountID", accountID))
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get account from cache: %w", err)
	}

	var account model.Account
	err = json.Unmarshal([]byte(accountJSON), &account)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal account: %w", err)
	}

	logger.Debug("Account retrieved from cache", zap.String("accountID", accountID))
	return &account, nil
}

func DeleteCachedAccount(ctx context.Context, accountID string) error {
	key := fmt.Sprintf(accountKeySpace, accountID)
	err := RedisClient.Del(ctx, key).Err()
	if err != nil {
		return fmt.Errorf("failed to delete account from cache: %w", err)
	}
	logger.Debug("Account deleted from cache", zap.String("accountID", accountID))
	return nil
}

func CacheAccountList(ctx context.Context, accounts []model.Account) error {
	listJSON, err := json.Marshal(accounts)
	if err != nil {
		return fmt.Errorf("failed to marshal account list: %w", err)
	}

	defaultTTL := viper.GetDuration("redis.defaultCacheTTL")
	err = RedisClient.Set(ctx, accountListKey, listJSON, defaultTTL).Err()
	if err != nil {
		return fmt.Errorf("failed to cache account list: %w", err)
	}

	logger.Debug("Account list cached successfully", zap.Int("count", len(accounts)))
	return nil
}

func GetCachedAccountList(ctx context.Context) ([]model.Account, error) {
	listJSON, err := RedisClient.Get(ctx, accountListKey).Result()
	if err == redis.Nil {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to get account list from cache: %w", err)
	}

	var accounts []model.Account
	if err := json.Unmarshal([]byte(listJSON), &accounts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal account list: %w", err)
	}
	return accounts, nil
}

func DeleteCachedAccountList(ctx context.Context) error {
	if err := RedisClient.Del(ctx, accountListKey).Err(); err != nil {
		return fmt.Errorf("failed to delete account list from cache: %w", err)
	}
	return nil
}

func RateLimit(ctx context.Context, key string, limit int, per time.Duration) (bool, error) {
	pipe := RedisClient.Pipeline()
	now := time.Now().UnixNano()
	key = fmt.Sprintf("ratelimit:%s", key)

	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", now-(per.Nanoseconds())))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now), Member: now})
	pipe.ZCard(ctx, key)
	pipe.Expire(ctx, key, per)

	cmds, err := pipe.Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to execute rate limit commands: %w", err)
	}

	count := cmds[2].(*redis.IntCmd).Val()
	allowed := count <= int64(limit)
	logger.Debug("Rate limit check",
		zap.String("key", key),
		zap.Int64("count", count),
		zap.Int("limit", limit),
		zap.Bool("allowed", allowed))
	return allowed, nil
}
