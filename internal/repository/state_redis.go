package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/family_crisis_hub/internal/statestore"
)

// RedisStateBackend хранит срезы состояния под ключами "<prefix>:<key>" без срока жизни
type RedisStateBackend struct {
	redisClient *redis.Client
	prefix      string
}

func NewRedisStateBackend(redisClient *redis.Client, prefix string) statestore.Backend {
	return &RedisStateBackend{
		redisClient: redisClient,
		prefix:      prefix,
	}
}

func (r *RedisStateBackend) redisKey(key string) string {
	return fmt.Sprintf("%s:%s", r.prefix, key)
}

func (r *RedisStateBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := r.redisClient.Get(ctx, r.redisKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get state %s from redis: %w", key, err)
	}
	return val, true, nil
}

func (r *RedisStateBackend) Put(ctx context.Context, key string, value []byte) error {
	if err := r.redisClient.Set(ctx, r.redisKey(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set state %s in redis: %w", key, err)
	}
	return nil
}

func (r *RedisStateBackend) Delete(ctx context.Context, key string) error {
	if err := r.redisClient.Del(ctx, r.redisKey(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete state %s from redis: %w", key, err)
	}
	return nil
}
