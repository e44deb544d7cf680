package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the subject suffix for this event (e.g. "chat.replied").
	EventType() string

	Payload() map[string]interface{}

	Timestamp() time.Time
}

const (
	TypeSessionCreated   = "session.created"
	TypeSessionEnded     = "session.ended"
	TypeDocumentUploaded = "document.uploaded"
	TypeDocumentRemoved  = "document.removed"
	TypeSettingsChanged  = "settings.changed"
	TypeChatAsked        = "chat.asked"
	TypeChatReplied      = "chat.replied"
)

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

// New stamps an event with the current time and the session it belongs to.
func New(eventType, sessionID string, data map[string]interface{}) BaseEvent {
	payload := make(map[string]interface{}, len(data)+1)
	for k, v := range data {
		payload[k] = v
	}
	payload["session_id"] = sessionID
	return BaseEvent{
		Type:       eventType,
		Data:       payload,
		OccurredAt: time.Now().UTC(),
	}
}
