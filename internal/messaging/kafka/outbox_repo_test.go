package kafka_test

import (
	"testing"

	"go-leave-engine/internal/events"
	"go-leave-engine/internal/messaging/kafka"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func validOutboxEvent() *kafka.OutboxEvent {
	return &kafka.OutboxEvent{
		ID:            uuid.New(),
		CompanyID:     uuid.New(),
		AggregateType: events.AggregateLeaveRequest,
		AggregateID:   uuid.New().String(),
		EventType:     events.EventTypeLeaveDecided,
		Topic:         events.TopicLeaveDecided,
		Payload:       []byte(`{"request_id":"r-1","status":"APPROVED"}`),
		Status:        kafka.OutboxStatusPending,
	}
}

func TestValidateOutboxEvent(t *testing.T) {
	t.Run("success pending event", func(t *testing.T) {
		assert.NoError(t, kafka.ValidateOutboxEvent(validOutboxEvent()))
	})

	t.Run("negative missing id", func(t *testing.T) {
		event := validOutboxEvent()
		event.ID = uuid.Nil

		assert.Error(t, kafka.ValidateOutboxEvent(event))
	})

	t.Run("negative missing topic", func(t *testing.T) {
		event := validOutboxEvent()
		event.Topic = ""

		assert.Error(t, kafka.ValidateOutboxEvent(event))
	})

	t.Run("negative empty payload", func(t *testing.T) {
		event := validOutboxEvent()
		event.Payload = nil

		assert.Error(t, kafka.ValidateOutboxEvent(event))
	})

	t.Run("negative unknown status", func(t *testing.T) {
		event := validOutboxEvent()
		event.Status = "queued"

		assert.Error(t, kafka.ValidateOutboxEvent(event))
	})
}
