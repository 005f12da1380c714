package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/taskdesk/taskdesk-api/internal/logger"
)

// Event is an audit record published when an entity is created.
type Event struct {
	EventID   string `json:"eventId"`
	Type      string `json:"type"`
	EntityID  int64  `json:"entityId"`
	Timestamp int64  `json:"timestamp"`
}

// EventWriter defines a Kafka writer abstraction.
type EventWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// publishEvent publishes an audit event. A nil writer skips publishing, and
// publish failures are logged, never surfaced: events are best-effort and must
// not fail the request that triggered them.
func publishEvent(ctx context.Context, w EventWriter, eventType string, entityID int64) {
	if w == nil {
		logger.Log.Debugw("event writer not configured, skipping publishing", "type", eventType)
		return
	}

	ev := Event{
		EventID:   uuid.NewString(),
		Type:      eventType,
		EntityID:  entityID,
		Timestamp: time.Now().Unix(),
	}

	data, err := json.Marshal(ev)
	if err != nil {
		logger.Log.Errorw("failed to marshal event", "event_id", ev.EventID, "error", err)
		return
	}

	msg := kafka.Message{
		Key:   []byte(ev.EventID),
		Value: data,
	}

	if err := w.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("failed to publish event", "event_id", ev.EventID, "type", eventType, "error", err)
	} else {
		logger.Log.Infow("event published", "event_id", ev.EventID, "type", eventType, "entity_id", entityID)
	}
}
