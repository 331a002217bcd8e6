// Package kafka publishes computed impact results to a Kafka topic for
// downstream consumers such as alerting and archival.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"

	"github.com/emberwatch/fire-impact-service/internal/config"
	"github.com/emberwatch/fire-impact-service/internal/domain"
)

// Publisher produces impact results to a Kafka topic.
type Publisher struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewPublisher creates a Kafka producer for the configured results topic.
func NewPublisher(cfg *config.Config, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaTopic,
		Balancer:               &kafkago.LeastBytes{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return &Publisher{writer: w, logger: logger}
}

// resultEnvelope is the wire shape of one published impact result.
type resultEnvelope struct {
	ID      string                  `json:"id"`
	Request domain.SpreadRequest    `json:"request"`
	Result  *domain.AggregateResult `json:"result"`
}

// Publish serializes and writes one impact result. Each result gets a fresh
// UUID so downstream consumers can dedupe on redelivery.
func (p *Publisher) Publish(ctx context.Context, req domain.SpreadRequest, result *domain.AggregateResult) error {
	msg, err := serializeToMessage(uuid.NewString(), req, result)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// serializeToMessage marshals an impact result into a Kafka message.
func serializeToMessage(id string, req domain.SpreadRequest, result *domain.AggregateResult) (kafkago.Message, error) {
	data, err := json.Marshal(resultEnvelope{ID: id, Request: req, Result: result})
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize impact result: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(id),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "county_count", Value: []byte(strconv.Itoa(len(result.Counties)))},
			{Key: "computed_at", Value: []byte(result.ComputedAt.Format(time.RFC3339))},
		},
	}, nil
}
