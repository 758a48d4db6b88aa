package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	notificationQueueKey = "notification_events"
)

// ReportSummary - краткое описание отчёта для получателя уведомления
type ReportSummary struct {
	ID          int64   `json:"id"`
	Category    string  `json:"category"`
	Icon        string  `json:"icon"`
	Description string  `json:"description"`
	Latitude    float64 `json:"lat"`
	Longitude   float64 `json:"lng"`
	Address     string  `json:"address"`
}

// NotificationEvent - событие доставки уведомления одному подписчику
type NotificationEvent struct {
	ID        uuid.UUID     `json:"id"`
	UserID    string        `json:"user_id"`
	Report    ReportSummary `json:"report"`
	Timestamp time.Time     `json:"timestamp"`
}

// WebhookPublisher - интерфейс для постановки уведомлений в очередь доставки
type WebhookPublisher interface {
	Publish(ctx context.Context, event NotificationEvent) error
}

// RedisWebhookPublisher - реализация WebhookPublisher на списке Redis
type RedisWebhookPublisher struct {
	redisClient *redis.Client
}

// NewRedisWebhookPublisher создает новый RedisWebhookPublisher
func NewRedisWebhookPublisher(client *redis.Client) *RedisWebhookPublisher {
	return &RedisWebhookPublisher{
		redisClient: client,
	}
}

// Publish кладёт событие в левую часть очереди, воркер забирает справа
func (p *RedisWebhookPublisher) Publish(ctx context.Context, event NotificationEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal notification event: %w", err)
	}

	if err := p.redisClient.LPush(ctx, notificationQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish notification event to Redis: %w", err)
	}
	return nil
}
