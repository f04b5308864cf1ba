// Package events publishes record lifecycle events to Kafka so downstream
// consumers (reporting, audit feeds) can react to changes in transfer and
// use processes without polling the database.
package events

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/segmentio/kafka-go"

	"github.com/ecrin-rms/rmsbe/pkg/tracing"
)

// Record kinds carried in lifecycle events.
const (
	RecordKindDtp    = "dtp"
	RecordKindDup    = "dup"
	RecordKindObject = "data_object"
)

// Event types carried in lifecycle events.
const (
	EventCreated = "created"
	EventUpdated = "updated"
	EventDeleted = "deleted"
)

// RecordEvent describes a single lifecycle change to a top-level record.
type RecordEvent struct {
	EventType  string          `json:"event_type"` // created, updated, deleted
	RecordKind string          `json:"record_kind"`
	RecordID   int             `json:"record_id"`
	SdOid      string          `json:"sd_oid,omitempty"` // data objects only
	EditedBy   string          `json:"edited_by,omitempty"`
	Data       json.RawMessage `json:"data,omitempty"`
	Timestamp  time.Time       `json:"timestamp"`
}

// Producer handles Kafka event emission.
type Producer struct {
	writer *kafka.Writer
	logger ectologger.Logger
	topic  string
}

// ProducerConfig holds Kafka producer configuration.
type ProducerConfig struct {
	Brokers      []string
	Topic        string
	BatchSize    int
	BatchTimeout time.Duration
	RequiredAcks int
	Compression  string
}

// NewProducer creates a new Kafka producer.
func NewProducer(cfg ProducerConfig, logger ectologger.Logger) *Producer {
	compression := kafka.Snappy
	switch cfg.Compression {
	case "gzip":
		compression = kafka.Gzip
	case "lz4":
		compression = kafka.Lz4
	case "zstd":
		compression = kafka.Zstd
	case "none":
		compression = 0
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.LeastBytes{},
		BatchSize:              cfg.BatchSize,
		BatchTimeout:           cfg.BatchTimeout,
		RequiredAcks:           kafka.RequiredAcks(cfg.RequiredAcks),
		Compression:            compression,
		AllowAutoTopicCreation: true,
	}

	return &Producer{
		writer: writer,
		logger: logger,
		topic:  cfg.Topic,
	}
}

// Close closes the producer.
func (p *Producer) Close() error {
	return p.writer.Close()
}

// PublishRecordEvent publishes a record lifecycle event to Kafka. Messages for
// the same record are keyed kind:id so they land on the same partition in order.
func (p *Producer) PublishRecordEvent(ctx context.Context, event *RecordEvent) error {
	ctx, span := tracing.StartSpan(ctx, "events.Producer.PublishRecordEvent")
	defer span.End()

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Topic: p.topic,
		Key:   []byte(event.RecordKind + ":" + strconv.Itoa(event.RecordID)),
		Value: data,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "record_kind", Value: []byte(event.RecordKind)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.WithContext(ctx).WithError(err).Error("Failed to publish record event")
		return err
	}

	p.logger.WithContext(ctx).WithFields(map[string]any{
		"event_type":  event.EventType,
		"record_kind": event.RecordKind,
		"record_id":   event.RecordID,
	}).Debug("Published record event")

	return nil
}
