package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/family_crisis_hub/internal/crisis"
	"github.com/shenikar/family_crisis_hub/internal/models"
)

// RedisCrisisCache - общий кеш кризисных данных; запись живет ровно окно валидности источника
type RedisCrisisCache struct {
	redisClient *redis.Client
}

func NewRedisCrisisCache(redisClient *redis.Client) crisis.Cache {
	return &RedisCrisisCache{redisClient: redisClient}
}

func crisisCacheKey(source string, loc models.Coordinates) string {
	return fmt.Sprintf("crisis:%s:%s", source, crisis.LocationKey(loc))
}

func (r *RedisCrisisCache) Get(ctx context.Context, source string, loc models.Coordinates) (*crisis.Entry, error) {
	val, err := r.redisClient.Get(ctx, crisisCacheKey(source, loc)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get crisis cache from redis: %w", err)
	}

	var entry crisis.Entry
	if err := json.Unmarshal(val, &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal crisis cache entry: %w", err)
	}
	return &entry, nil
}

func (r *RedisCrisisCache) Set(ctx context.Context, source string, entry *crisis.Entry, ttl time.Duration) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal crisis cache entry: %w", err)
	}

	if err := r.redisClient.Set(ctx, crisisCacheKey(source, entry.Location), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set crisis cache in redis: %w", err)
	}
	return nil
}
