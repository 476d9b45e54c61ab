// Package events announces reservation lifecycle changes to other services.
// Publishing is best effort: a booking is committed once the store accepts it.
package events

import (
	"context"
	"fmt"
	"time"

	"spacebook/pkg/kafka"
	"spacebook/pkg/model"
)

const (
	TypeReservationCreated   = "reservation.created"
	TypeReservationCancelled = "reservation.cancelled"

	schemaVersion = "1"
)

type Publisher interface {
	Publish(ctx context.Context, eventType string, r *model.Reservation) error
}

type ReservationEvent struct {
	EventType     string                  `json:"event_type"`
	ReservationID string                  `json:"reservation_id"`
	UserID        string                  `json:"user_id"`
	SpaceID       string                  `json:"space_id"`
	Date          string                  `json:"date"`
	SlotID        string                  `json:"slot_id"`
	StartTime     string                  `json:"start_time"`
	EndTime       string                  `json:"end_time"`
	Status        model.ReservationStatus `json:"status"`
	OccurredAt    time.Time               `json:"occurred_at"`
}

// MessagePublisher is the slice of *kafka.Producer the publisher needs.
type MessagePublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type kafkaPublisher struct {
	producer MessagePublisher
	source   string
	now      func() time.Time
}

func NewKafkaPublisher(producer MessagePublisher, source string) Publisher {
	return &kafkaPublisher{
		producer: producer,
		source:   source,
		now:      time.Now,
	}
}

// Publish keys messages by slot key so every event for one (space, date, slot) lands on
// the same partition in order.
func (p *kafkaPublisher) Publish(ctx context.Context, eventType string, r *model.Reservation) error {
	occurredAt := p.now().UTC()
	event := ReservationEvent{
		EventType:     eventType,
		ReservationID: r.ID,
		UserID:        r.UserID,
		SpaceID:       r.SpaceID,
		Date:          r.Date,
		SlotID:        r.SlotID,
		StartTime:     r.StartTime,
		EndTime:       r.EndTime,
		Status:        r.Status,
		OccurredAt:    occurredAt,
	}

	msg, err := kafka.NewMessage().
		WithKey(r.Key().String()).
		WithValue(event).
		WithEventType(eventType).
		WithSchemaVersion(schemaVersion).
		WithSource(p.source).
		WithCorrelationID(CorrelationID(ctx)).
		WithTimestamp(occurredAt).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build %s event: %w", eventType, err)
	}

	if err := p.producer.Publish(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", eventType, err)
	}
	return nil
}

type nopPublisher struct{}

// NewNopPublisher is used when Kafka is disabled.
func NewNopPublisher() Publisher {
	return nopPublisher{}
}

func (nopPublisher) Publish(context.Context, string, *model.Reservation) error {
	return nil
}

type correlationKey struct{}

func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationKey{}, id)
}

func CorrelationID(ctx context.Context) string {
	id, _ := ctx.Value(correlationKey{}).(string)
	return id
}
