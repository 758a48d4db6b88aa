package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/safezone_notifier/internal/models"
	"github.com/shenikar/safezone_notifier/internal/observability"
	"github.com/sirupsen/logrus"
)

// ReverseGeocoder - источник адресов, который оборачивает кеш
type ReverseGeocoder interface {
	ReverseGeocode(ctx context.Context, lat, lng float64) (*models.Address, error)
}

// Store - хранилище кеша; промах возвращает nil без ошибки
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// RedisStore - Store поверх Redis
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return val, err
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

// CachedGeocoder кеширует найденные адреса по координатам, округлённым до 4 знаков
type CachedGeocoder struct {
	inner   ReverseGeocoder
	store   Store
	ttl     time.Duration
	metrics *observability.Metrics
	logger  *logrus.Logger
}

// NewCachedGeocoder создаёт кеширующий декоратор вокруг геокодера
func NewCachedGeocoder(inner ReverseGeocoder, store Store, ttl time.Duration, m *observability.Metrics, logger *logrus.Logger) *CachedGeocoder {
	return &CachedGeocoder{
		inner:   inner,
		store:   store,
		ttl:     ttl,
		metrics: m,
		logger:  logger,
	}
}

func (c *CachedGeocoder) ReverseGeocode(ctx context.Context, lat, lng float64) (*models.Address, error) {
	key := cacheKey(lat, lng)
	log := c.logger.WithField("cache_key", key)

	raw, err := c.store.Get(ctx, key)
	if err != nil {
		log.WithError(err).Warn("Failed to read geocode cache")
	}
	if raw != nil {
		var addr models.Address
		if err := json.Unmarshal(raw, &addr); err == nil {
			c.metrics.GeocodeCache.WithLabelValues("hit").Inc()
			return &addr, nil
		}
		log.Warn("Discarding corrupt geocode cache entry")
	}
	c.metrics.GeocodeCache.WithLabelValues("miss").Inc()

	addr, err := c.inner.ReverseGeocode(ctx, lat, lng)
	if err != nil {
		return nil, err
	}
	// Пустые ответы не кешируем, чтобы повторить запрос позже
	if addr == nil {
		return nil, nil
	}

	payload, err := json.Marshal(addr)
	if err != nil {
		return addr, nil
	}
	if err := c.store.Set(ctx, key, payload, c.ttl); err != nil {
		log.WithError(err).Warn("Failed to write geocode cache")
	}
	return addr, nil
}

func cacheKey(lat, lng float64) string {
	return fmt.Sprintf("geocode:%.4f,%.4f", lat, lng)
}
