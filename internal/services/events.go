// Package services orchestrates the store, the annotation service and the
// event stream: the entry save pipeline, goal progress stepping, entry
// templates, and email-to-journal ingestion.
package services

// Event types published to the WebSocket hub during the entry save
// pipeline. Annotation runs alongside persistence, so clients see started
// before the save response and completed or failed after.
const (
	EventAnnotationStarted   = "annotation.started"
	EventAnnotationCompleted = "annotation.completed"
	EventAnnotationFailed    = "annotation.failed"
)

// Event is a single lifecycle notification.
type Event struct {
	Type    string      `json:"type"`
	EntryID string      `json:"entry_id,omitempty"`
	Payload interface{} `json:"payload,omitempty"`
}

// Publisher delivers events to connected clients. Implementations must
// not block; slow consumers are the publisher's problem.
type Publisher interface {
	Publish(event Event)
}

// NopPublisher discards all events.
type NopPublisher struct{}

func (NopPublisher) Publish(Event) {}
