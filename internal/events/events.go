// Package events publishes catalog change notifications so storefronts can
// refresh what they render.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
)

// Event describes one committed mutation, e.g. Type "billboard.created".
type Event struct {
	Type     string    `json:"type"`
	StoreID  string    `json:"storeId"`
	EntityID string    `json:"entityId"`
	UserID   string    `json:"userId"`
	At       time.Time `json:"at"`
}

// Kafka publishes events to a topic, keyed by store so one store's events
// stay ordered within a partition.
type Kafka struct {
	w *kafka.Writer
}

// NewKafka creates an asynchronous Kafka publisher.
func NewKafka(brokers []string, topic string) *Kafka {
	return &Kafka{w: &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		Async:                  true,
		BatchTimeout:           50 * time.Millisecond,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				slog.Error("failed to deliver events", "count", len(messages), "error", err)
			}
		},
	}}
}

// Publish queues an event for delivery.
func (k *Kafka) Publish(ctx context.Context, e Event) error {
	msg, err := Message(e)
	if err != nil {
		return err
	}
	if err := k.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("writing event %s: %w", e.Type, err)
	}
	return nil
}

// Close flushes pending events.
func (k *Kafka) Close() error {
	return k.w.Close()
}

// Message encodes an event as a Kafka message.
func Message(e Event) (kafka.Message, error) {
	value, err := json.Marshal(e)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("encoding event: %w", err)
	}
	return kafka.Message{
		Key:   []byte(e.StoreID),
		Value: value,
		Time:  e.At,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(e.Type)},
		},
	}, nil
}

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Publish(_ context.Context, e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}
