package events

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"caslkey/internal/platform/kafka/producer"
)

// Producer is the slice of the Kafka producer the publisher needs.
type Producer interface {
	Produce(ctx context.Context, msg *producer.Message) error
}

// KafkaPublisher writes events to a topic keyed by CASL Key ID, so every
// event for one guest lands on the same partition.
type KafkaPublisher struct {
	producer Producer
	topic    string
	logger   *slog.Logger

	events chan VerificationComplete
	wg     sync.WaitGroup
	async  bool
}

type KafkaOption func(*KafkaPublisher)

// WithAsyncBuffer queues events and produces them from a background
// goroutine. A full buffer drops the event with a warning.
func WithAsyncBuffer(size int) KafkaOption {
	return func(p *KafkaPublisher) {
		if size > 0 {
			p.events = make(chan VerificationComplete, size)
			p.async = true
		}
	}
}

func WithLogger(logger *slog.Logger) KafkaOption {
	return func(p *KafkaPublisher) {
		p.logger = logger
	}
}

func NewKafkaPublisher(prod Producer, topic string, opts ...KafkaOption) *KafkaPublisher {
	p := &KafkaPublisher{
		producer: prod,
		topic:    topic,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.async {
		p.wg.Add(1)
		go p.processEvents()
	}
	return p
}

func (p *KafkaPublisher) processEvents() {
	defer p.wg.Done()
	for event := range p.events {
		if err := p.produce(context.Background(), event); err != nil {
			p.logger.Error("failed to publish verification event",
				"error", err,
				"casl_key_id", event.CASLKeyID,
			)
		}
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event VerificationComplete) error {
	if p.async {
		select {
		case p.events <- event:
		default:
			p.logger.Warn("event buffer full, verification event dropped", "casl_key_id", event.CASLKeyID)
		}
		return nil
	}
	return p.produce(ctx, event)
}

func (p *KafkaPublisher) produce(ctx context.Context, event VerificationComplete) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", NameVerificationComplete, err)
	}
	return p.producer.Produce(ctx, &producer.Message{
		Topic:   p.topic,
		Key:     []byte(event.CASLKeyID),
		Value:   value,
		Headers: map[string]string{"event-type": NameVerificationComplete},
	})
}

// Close drains queued events. Publish must not be called afterwards.
func (p *KafkaPublisher) Close() {
	if p.async && p.events != nil {
		close(p.events)
		p.wg.Wait()
	}
}
