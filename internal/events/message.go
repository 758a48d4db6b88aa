// Package events связывает создание отчётов с рассылкой уведомлений через Kafka.
package events

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

const eventTypeReportCreated = "report.created"

// ReportCreated - сообщение о новом отчёте в топике триггеров
type ReportCreated struct {
	ReportID  int64     `json:"report_id"`
	CreatedAt time.Time `json:"created_at"`
}

// serializeReportCreated упаковывает событие в сообщение с ключом по id отчёта
func serializeReportCreated(event ReportCreated, publishedAt time.Time) (kafkago.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize report created event: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(strconv.FormatInt(event.ReportID, 10)),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(eventTypeReportCreated)},
			{Key: "published_at", Value: []byte(publishedAt.UTC().Format(time.RFC3339))},
		},
	}, nil
}

func decodeReportCreated(msg kafkago.Message) (ReportCreated, error) {
	var event ReportCreated
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return ReportCreated{}, fmt.Errorf("decode report created event: %w", err)
	}
	return event, nil
}
