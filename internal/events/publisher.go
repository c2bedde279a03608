// Package events publishes domain events to Kafka so downstream consumers
// (feed builders, notification fan-out) can react without coupling to the API.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	TypeProfileRegistered = "profile.registered"
	TypePostCreated       = "post.created"
	TypeVideoUploaded     = "video.uploaded"
	TypeCommentAdded      = "comment.added"
)

type Event struct {
	Type       string    `json:"type"`
	ProfileID  string    `json:"profile_id"`
	EntityID   string    `json:"entity_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Publisher struct {
	writer *kafka.Writer
	logger *zap.SugaredLogger
}

// NewPublisher returns a publisher. With no brokers configured it degrades to
// a no-op so the API does not require Kafka in development.
func NewPublisher(brokers []string, topic string, logger *zap.SugaredLogger) *Publisher {
	p := &Publisher{logger: logger}
	if len(brokers) == 0 || topic == "" {
		logger.Infow("kafka brokers not configured, event publishing disabled")
		return p
	}
	p.writer = kafka.NewWriter(kafka.WriterConfig{
		Brokers:  brokers,
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	})
	return p
}

// Publish writes one event keyed by profile so a profile's events stay ordered
// within a partition. Delivery failures are logged, not surfaced: events are
// best-effort and must never fail the originating request.
func (p *Publisher) Publish(ctx context.Context, eventType, profileID, entityID string) {
	if p.writer == nil {
		return
	}
	value, err := json.Marshal(Event{
		Type:       eventType,
		ProfileID:  profileID,
		EntityID:   entityID,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		p.logger.Errorw("failed to marshal event", "type", eventType, "error", err)
		return
	}
	msg := kafka.Message{Key: []byte(profileID), Value: value, Time: time.Now()}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Errorw("failed to publish event", "type", eventType, "error", err)
	}
}

func (p *Publisher) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
