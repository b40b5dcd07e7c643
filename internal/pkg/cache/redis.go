package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient connects to addr and verifies the connection with PING.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addr, err)
	}
	return client, nil
}

type RedisBlocklist struct {
	client redis.Cmdable
}

func NewRedisBlocklist(client redis.Cmdable) *RedisBlocklist {
	return &RedisBlocklist{client: client}
}

func (r *RedisBlocklist) Block(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := r.client.Set(ctx, tokenKey(token), 1, ttl).Err(); err != nil {
		return fmt.Errorf("failed to blocklist token: %w", err)
	}
	return nil
}

func (r *RedisBlocklist) IsBlocked(ctx context.Context, token string) (bool, error) {
	err := r.client.Get(ctx, tokenKey(token)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check token blocklist: %w", err)
	}
	return true, nil
}
