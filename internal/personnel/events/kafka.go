// Package events publishes personnel domain events to Kafka.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"

	"astrotrack/internal/personnel/models"
)

const (
	EventTypeDutyAssigned = "duty.assigned"

	headerEventType = "event_type"
	headerVersion   = "event_version"
	eventVersion    = "1"
)

// Producer is the part of *kgo.Client the publisher needs.
type Producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
}

// KafkaPublisher writes DutyAssigned events keyed by person ID so all of a
// person's events land on one partition in commit order.
type KafkaPublisher struct {
	producer Producer
	topic    string
}

func NewKafka(producer Producer, topic string) (*KafkaPublisher, error) {
	if producer == nil {
		return nil, errors.New("kafka producer is required")
	}
	if topic == "" {
		return nil, errors.New("kafka topic is required")
	}
	return &KafkaPublisher{producer: producer, topic: topic}, nil
}

func (p *KafkaPublisher) PublishDutyAssigned(ctx context.Context, evt models.DutyAssigned) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("encode duty assigned: %w", err)
	}
	record := &kgo.Record{
		Topic:     p.topic,
		Key:       []byte(evt.PersonID.String()),
		Value:     payload,
		Timestamp: evt.OccurredAt,
		Headers: []kgo.RecordHeader{
			{Key: headerEventType, Value: []byte(EventTypeDutyAssigned)},
			{Key: headerVersion, Value: []byte(eventVersion)},
		},
	}
	if err := p.producer.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("publish duty assigned to %s: %w", p.topic, err)
	}
	return nil
}
