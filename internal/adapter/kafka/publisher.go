// Package kafka publishes risk alerts to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/park-conditions/internal/config"
	"github.com/couchcryptid/park-conditions/internal/domain"
)

// Publisher produces alert messages to the alerts topic.
// It implements recorder.AlertPublisher.
type Publisher struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewPublisher creates a Kafka producer for the configured alerts topic.
func NewPublisher(cfg *config.Config, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.AlertsTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Publisher{writer: w, logger: logger}
}

// PublishAlerts serializes and publishes a submission's alerts in a single
// WriteMessages call.
func (p *Publisher) PublishAlerts(ctx context.Context, alerts []domain.Alert) error {
	if len(alerts) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(alerts))
	for i := range alerts {
		msg, err := serializeAlert(alerts[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	return p.writer.WriteMessages(ctx, msgs...)
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// serializeAlert marshals an Alert into a Kafka message, keyed by alert kind
// so alerts of one kind land on one partition in order.
func serializeAlert(alert domain.Alert) (kafkago.Message, error) {
	data, err := json.Marshal(alert)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize alert: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(alert.Kind),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "alert_kind", Value: []byte(alert.Kind)},
			{Key: "alert_source", Value: []byte(alert.Source)},
			{Key: "observed_on", Value: []byte(alert.Date.Format(time.RFC3339))},
		},
	}, nil
}
