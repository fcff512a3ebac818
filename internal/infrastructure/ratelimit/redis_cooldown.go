package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisCooldownStore shares cooldowns across API instances. Keys expire with
// the ttl passed to Mark.
type RedisCooldownStore struct {
	client *redis.Client
	prefix string
}

func NewRedisCooldownStore(client *redis.Client, prefix string) *RedisCooldownStore {
	if prefix == "" {
		prefix = "cooldown"
	}
	return &RedisCooldownStore{client: client, prefix: prefix}
}

func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func (s *RedisCooldownStore) key(userID int64) string {
	return fmt.Sprintf("%s:%d", s.prefix, userID)
}

func (s *RedisCooldownStore) LastAt(ctx context.Context, userID int64) (time.Time, bool, error) {
	raw, err := s.client.Get(ctx, s.key(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("corrupt cooldown value %q: %w", raw, err)
	}
	return time.UnixMilli(ms), true, nil
}

func (s *RedisCooldownStore) Mark(ctx context.Context, userID int64, at time.Time, ttl time.Duration) error {
	return s.client.Set(ctx, s.key(userID), strconv.FormatInt(at.UnixMilli(), 10), ttl).Err()
}
