package events

import (
	"context"
	"errors"
	"time"

	"github.com/jonboulle/clockwork"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/shenikar/safezone_notifier/internal/config"
	"github.com/shenikar/safezone_notifier/internal/observability"
	"github.com/shenikar/safezone_notifier/internal/service"
	"github.com/sirupsen/logrus"
)

const (
	initialBackoff = 200 * time.Millisecond
	maxBackoff     = 5 * time.Second
)

type messageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Consumer читает события о новых отчётах и запускает рассылку.
// Повторы при сбоях хранилища выполняются здесь, сам рассыльщик их не делает.
type Consumer struct {
	reader     messageReader
	notifier   service.Notifier
	maxRetries int
	backoff    time.Duration
	clock      clockwork.Clock
	metrics    *observability.Metrics
	logger     *logrus.Logger
}

// NewConsumer создаёт консьюмер группы для топика триггеров
func NewConsumer(cfg *config.Config, notifier service.Notifier, clock clockwork.Clock, m *observability.Metrics, logger *logrus.Logger) *Consumer {
	r := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        cfg.KafkaBrokers,
		GroupID:        cfg.KafkaGroupID,
		Topic:          cfg.KafkaReportsTopic,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: 0,
	})
	return newConsumer(r, notifier, cfg.KafkaMaxRetries, clock, m, logger)
}

func newConsumer(r messageReader, notifier service.Notifier, maxRetries int, clock clockwork.Clock, m *observability.Metrics, logger *logrus.Logger) *Consumer {
	return &Consumer{
		reader:     r,
		notifier:   notifier,
		maxRetries: maxRetries,
		backoff:    initialBackoff,
		clock:      clock,
		metrics:    m,
		logger:     logger,
	}
}

// Run обрабатывает сообщения до отмены контекста
func (c *Consumer) Run(ctx context.Context) error {
	c.logger.Info("Starting report trigger consumer...")
	fetchBackoff := c.backoff

	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.logger.Info("Stopping report trigger consumer.")
				return nil
			}
			c.logger.WithError(err).Error("Failed to fetch message from Kafka")
			if !c.sleep(ctx, fetchBackoff) {
				return nil
			}
			fetchBackoff = nextBackoff(fetchBackoff)
			continue
		}
		fetchBackoff = c.backoff

		c.handle(ctx, msg)
	}
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}

// handle доводит одно сообщение до коммита: успех, пропуск или отказ после повторов
func (c *Consumer) handle(ctx context.Context, msg kafkago.Message) {
	log := c.logger.WithFields(logrus.Fields{
		"topic":     msg.Topic,
		"partition": msg.Partition,
		"offset":    msg.Offset,
	})

	event, err := decodeReportCreated(msg)
	if err != nil {
		log.WithError(err).Warn("Skipping undecodable message")
		c.metrics.TriggerMessages.WithLabelValues("skipped").Inc()
		c.commit(ctx, msg, log)
		return
	}
	log = log.WithField("report_id", event.ReportID)

	delay := c.backoff
	for attempt := 0; ; attempt++ {
		result, err := c.notifier.NotifySubscribers(ctx, event.ReportID)
		if err == nil {
			log.WithField("notified", result.NotifiedCount).Info("Report trigger processed")
			c.metrics.TriggerMessages.WithLabelValues("processed").Inc()
			c.commit(ctx, msg, log)
			return
		}

		var storageErr *service.StorageError
		if !errors.As(err, &storageErr) {
			log.WithError(err).Warn("Skipping message that cannot succeed")
			c.metrics.TriggerMessages.WithLabelValues("skipped").Inc()
			c.commit(ctx, msg, log)
			return
		}

		if attempt >= c.maxRetries {
			log.WithError(err).Errorf("Dropping report trigger after %d retries", c.maxRetries)
			c.metrics.TriggerMessages.WithLabelValues("failed").Inc()
			c.commit(ctx, msg, log)
			return
		}

		log.WithError(err).Warnf("Notifier storage failure, retrying in %v", delay)
		if !c.sleep(ctx, delay) {
			// Без коммита: сообщение будет перечитано после перезапуска
			return
		}
		delay = nextBackoff(delay)
	}
}

func (c *Consumer) commit(ctx context.Context, msg kafkago.Message, log *logrus.Entry) {
	if err := c.reader.CommitMessages(ctx, msg); err != nil {
		log.WithError(err).Warn("Commit offset failed")
	}
}

func (c *Consumer) sleep(ctx context.Context, d time.Duration) bool {
	select {
	case <-ctx.Done():
		return false
	case <-c.clock.After(d):
		return true
	}
}

func nextBackoff(current time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}
