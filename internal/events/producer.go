package events

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/shenikar/safezone_notifier/internal/config"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Producer публикует события о новых отчётах
type Producer struct {
	writer messageWriter
	clock  clockwork.Clock
}

// NewProducer создаёт продюсер для топика триггеров
func NewProducer(cfg *config.Config, clock clockwork.Clock) *Producer {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaReportsTopic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return &Producer{writer: w, clock: clock}
}

// PublishReportCreated отправляет событие о создании отчёта
func (p *Producer) PublishReportCreated(ctx context.Context, reportID int64, createdAt time.Time) error {
	msg, err := serializeReportCreated(ReportCreated{ReportID: reportID, CreatedAt: createdAt}, p.clock.Now())
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write report created event: %w", err)
	}
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
