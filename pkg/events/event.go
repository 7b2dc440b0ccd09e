package events

import "time"

// Event defines the contract for all events on the in-process bus.
type Event interface {
	// EventType returns the unique code for this event (e.g., "ARTIFACT_DELIVERED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

const (
	TypeArtifactDelivered = "ARTIFACT_DELIVERED"

	// TopicArtifacts carries artifact lifecycle events.
	TopicArtifacts = "artifacts"
)

// NewArtifactDelivered reports that a rendered slip reached its recipient
// and its file may be deleted.
func NewArtifactDelivered(id, path string, at time.Time) BaseEvent {
	return BaseEvent{
		Type: TypeArtifactDelivered,
		Data: map[string]interface{}{
			"artifact_id": id,
			"path":        path,
		},
		OccurredAt: at,
	}
}
