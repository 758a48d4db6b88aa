package webhook

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"
	"github.com/shenikar/safezone_notifier/internal/config"
	"github.com/shenikar/safezone_notifier/internal/observability"
	"github.com/sirupsen/logrus"
)

const popTimeout = 5 * time.Second

// errSkipped - доставка не выполнялась, URL вебхука не настроен
var errSkipped = errors.New("webhook url is not configured")

// WebhookWorker - забирает уведомления из очереди Redis и отправляет их на вебхук
type WebhookWorker struct {
	redisClient *redis.Client
	logger      *logrus.Logger
	cfg         *config.Config
	metrics     *observability.Metrics
	clock       clockwork.Clock
	httpClient  *http.Client
	done        chan struct{}
}

// NewWebhookWorker создает новый WebhookWorker
func NewWebhookWorker(redisClient *redis.Client, logger *logrus.Logger, cfg *config.Config, m *observability.Metrics, clock clockwork.Clock) *WebhookWorker {
	return &WebhookWorker{
		redisClient: redisClient,
		logger:      logger,
		cfg:         cfg,
		metrics:     m,
		clock:       clock,
		httpClient: &http.Client{
			Timeout: cfg.WebhookTimeout,
		},
		done: make(chan struct{}),
	}
}

// Start запускает горутину обработки очереди до отмены контекста
func (w *WebhookWorker) Start(ctx context.Context) {
	w.logger.Info("Starting webhook worker...")
	go func() {
		defer close(w.done)
		for {
			if ctx.Err() != nil {
				w.logger.Info("Stopping webhook worker.")
				return
			}

			result, err := w.redisClient.BRPop(ctx, popTimeout, notificationQueueKey).Result()
			if err != nil {
				if errors.Is(err, redis.Nil) || ctx.Err() != nil {
					continue
				}
				w.logger.WithError(err).Error("Failed to pop notification event from Redis")
				w.wait(ctx, w.cfg.WebhookTimeout)
				continue
			}

			// result[0] - ключ, result[1] - значение
			payload := []byte(result[1])
			var event NotificationEvent
			if err := json.Unmarshal(payload, &event); err != nil {
				w.logger.WithError(err).Error("Failed to unmarshal notification event from Redis")
				continue
			}

			w.processEvent(ctx, event, payload)
		}
	}()
}

// Wait блокируется, пока горутина воркера не завершится
func (w *WebhookWorker) Wait() {
	<-w.done
}

func (w *WebhookWorker) processEvent(ctx context.Context, event NotificationEvent, payload []byte) {
	log := w.logger.WithFields(logrus.Fields{
		"event_id":  event.ID,
		"user_id":   event.UserID,
		"report_id": event.Report.ID,
	})
	log.Debug("Processing notification event...")

	err := w.deliver(ctx, event, payload)
	switch {
	case err == nil:
		w.metrics.WebhookDeliveries.WithLabelValues("delivered").Inc()
		log.Info("Webhook delivered successfully.")
	case errors.Is(err, errSkipped):
		w.metrics.WebhookDeliveries.WithLabelValues("skipped").Inc()
		log.Warn("Webhook URL is not configured. Skipping webhook delivery.")
	default:
		w.metrics.WebhookDeliveries.WithLabelValues("failed").Inc()
		log.WithError(err).Error("Failed to deliver webhook")
	}
}

// deliver отправляет событие с экспоненциальной задержкой между попытками
func (w *WebhookWorker) deliver(ctx context.Context, event NotificationEvent, payload []byte) error {
	if w.cfg.WebhookURL == "" {
		return errSkipped
	}

	maxRetries := w.cfg.WebhookMaxRetries
	delay := w.cfg.WebhookBaseDelay
	var lastErr error

	for i := 0; i < maxRetries; i++ {
		if i > 0 {
			w.logger.WithField("event_id", event.ID).Warnf("Retrying webhook in %v. Retries left: %d", delay, maxRetries-i)
			if !w.wait(ctx, delay) {
				return ctx.Err()
			}
			delay *= 2
		}

		lastErr = w.send(ctx, event, payload)
		if lastErr == nil {
			return nil
		}
	}

	return fmt.Errorf("giving up after %d attempts: %w", maxRetries, lastErr)
}

func (w *WebhookWorker) send(ctx context.Context, event NotificationEvent, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.cfg.WebhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create webhook request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Webhook-Event-ID", event.ID.String())
	if w.cfg.WebhookSecret != "" {
		req.Header.Set("X-Webhook-Signature", generateHMACSHA256(payload, w.cfg.WebhookSecret))
	}

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send webhook: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook responded with status %d", resp.StatusCode)
	}
	return nil
}

// wait возвращает false, если контекст отменён раньше истечения задержки
func (w *WebhookWorker) wait(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-w.clock.After(d):
		return true
	}
}

// generateHMACSHA256 генерирует HMAC-SHA256 подпись для данных
func generateHMACSHA256(data []byte, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}
