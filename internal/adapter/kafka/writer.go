// Package kafka publishes catalog refresh notifications to a Kafka topic so
// downstream consumers can react to updated district statistics.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/rozgarmap/district-stats/internal/domain"
)

// Writer produces messages to a Kafka topic.
// It implements ingest.Publisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the catalog update topic.
func NewWriter(brokers []string, topic string, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// PublishRecords serializes and publishes the refreshed districts in a single
// WriteMessages call for efficiency.
func (w *Writer) PublishRecords(ctx context.Context, records []domain.District) error {
	if len(records) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(records))
	for i := range records {
		msg, err := serializeToMessage(records[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("publish catalog update: %w", err)
	}
	w.logger.Debug("catalog update published", "records", len(records))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a District into a Kafka message keyed by
// district code.
func serializeToMessage(d domain.District) (kafkago.Message, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize district: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(d.Code),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "state", Value: []byte(d.State)},
			{Key: "synced_at", Value: []byte(d.LastUpdated.Format(time.RFC3339))},
		},
	}, nil
}
