package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gym_backoffice/pkg/utils"

	"github.com/go-redis/redis/v8"
)

const revokedKeyPrefix = "gym:revoked:"

// RedisConfig describes the Redis instance backing the revocation store.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisClient connects and pings Redis.
func NewRedisClient(ctx context.Context, config RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         config.Addr,
		Password:     config.Password,
		DB:           config.DB,
		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	pong, err := rdb.Ping(ctx).Result()
	if err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", config.Addr, err)
	}
	utils.LogInfo("Redis connected", map[string]interface{}{"addr": config.Addr, "reply": pong})
	return rdb, nil
}

// RedisStore keeps revoked token ids as keys that expire with the token.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, revokedKeyPrefix+tokenID, "1", ttl).Err(); err != nil {
		return fmt.Errorf("revoking token: %w", err)
	}
	return nil
}

func (s *RedisStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := s.client.Get(ctx, revokedKeyPrefix+tokenID).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking token revocation: %w", err)
	}
	return true, nil
}
