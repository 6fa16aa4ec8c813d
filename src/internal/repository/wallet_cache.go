package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const balanceCacheTTL = 5 * time.Minute

var ErrBalanceNotCached = errors.New("balance not found in cache")

// RedisBalanceCache is the BalanceCache implementation over redis.
// Entries are refreshed after every committed mutation and expire on
// their own; readers must treat the value as advisory.
type RedisBalanceCache struct {
	client redis.UniversalClient
}

func NewRedisBalanceCache(client redis.UniversalClient) *RedisBalanceCache {
	return &RedisBalanceCache{client: client}
}

func (c *RedisBalanceCache) GetBalance(ctx context.Context, userID string) (int64, error) {
	value, err := c.client.Get(ctx, c.balanceKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrBalanceNotCached
		}
		return 0, fmt.Errorf("failed to get balance from redis: %w", err)
	}

	balance, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse cached balance: %w", err)
	}
	return balance, nil
}

func (c *RedisBalanceCache) SetBalance(ctx context.Context, userID string, balance int64) error {
	err := c.client.Set(ctx, c.balanceKey(userID), strconv.FormatInt(balance, 10), balanceCacheTTL).Err()
	if err != nil {
		return fmt.Errorf("failed to set balance in redis: %w", err)
	}
	return nil
}

func (c *RedisBalanceCache) DeleteBalance(ctx context.Context, userID string) error {
	if err := c.client.Del(ctx, c.balanceKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to delete balance from redis: %w", err)
	}
	return nil
}

func (c *RedisBalanceCache) balanceKey(userID string) string {
	return "WALLET:BALANCE:" + userID
}
