package events

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Event types emitted by the service.
const (
	TypeBookingCreated = "booking.created"
	TypeUserRegistered = "user.registered"
)

// Header keys attached to every message.
const (
	HeaderEventID   = "event-id"
	HeaderEventType = "event-type"
	HeaderSource    = "source"
	HeaderTimestamp = "timestamp"
)

// Message is one event envelope bound for Kafka. Key selects the partition
// (bookings are keyed by resource id so a resource's events stay ordered).
type Message struct {
	Key       string
	Value     []byte
	Headers   map[string]string
	Timestamp time.Time
}

// NewMessage builds an event envelope with the standard headers populated.
// The payload is JSON-encoded; an encoding failure is returned rather than
// deferred to publish time.
func NewMessage(eventType, key string, payload any) (Message, error) {
	value, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}

	now := time.Now()
	return Message{
		Key:       key,
		Value:     value,
		Timestamp: now,
		Headers: map[string]string{
			HeaderEventID:   uuid.New().String(),
			HeaderEventType: eventType,
			HeaderTimestamp: now.Format(time.RFC3339),
		},
	}, nil
}

// WithSource records the emitting service on the envelope.
func (m Message) WithSource(source string) Message {
	m.Headers[HeaderSource] = source
	return m
}

// DecodeValue decodes the message payload into the provided struct.
func (m *Message) DecodeValue(v any) error {
	return json.Unmarshal(m.Value, v)
}
