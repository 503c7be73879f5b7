package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

// EventPublisher pushes domain events to kafka. Publishing is best-effort
// and always happens after the owning transaction has committed.
type EventPublisher struct {
	writer *kafka.Writer
}

func NewEventPublisher(brokers []string) *EventPublisher {
	return &EventPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (p *EventPublisher) PublishReward(topic string, event RewardEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(context.Background(), kafka.Message{
		Topic: topic,
		Key:   []byte(event.VendorID),
		Value: value,
		Time:  time.Now(),
	})
}

func (p *EventPublisher) PublishPayout(topic string, event PayoutEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(context.Background(), kafka.Message{
		Topic: topic,
		Key:   []byte(event.BatchNumber),
		Value: value,
		Time:  time.Now(),
	})
}

func (p *EventPublisher) Close() error {
	return p.writer.Close()
}
