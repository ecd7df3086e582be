package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/family_crisis_hub/internal/models"
)

const (
	alertQueueKey = "status_alerts"
)

// StatusAlert - уведомление о переходе участника в HELP или INJURED
type StatusAlert struct {
	CircleID   string              `json:"circle_id"`
	MemberID   string              `json:"member_id"`
	MemberName string              `json:"member_name"`
	Status     models.Status       `json:"status"`
	Message    string              `json:"message,omitempty"`
	Location   *models.Coordinates `json:"location,omitempty"`
	Timestamp  time.Time           `json:"timestamp"`
}

// Publisher - интерфейс для публикации оповещений
type Publisher interface {
	Publish(ctx context.Context, alert StatusAlert) error
}

// RedisPublisher кладет оповещения в очередь Redis
type RedisPublisher struct {
	redisClient *redis.Client
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{
		redisClient: client,
	}
}

// Publish публикует оповещение в очередь Redis
func (p *RedisPublisher) Publish(ctx context.Context, alert StatusAlert) error {
	payload, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("failed to marshal status alert: %w", err)
	}

	// LPUSH в голову списка, воркер забирает из хвоста
	if err := p.redisClient.LPush(ctx, alertQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish status alert to Redis: %w", err)
	}
	return nil
}

// NoopPublisher используется, когда вебхук не настроен
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, StatusAlert) error { return nil }
