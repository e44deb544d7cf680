package dto

import (
	"encoding/json"
	"time"
)

// BusEvent travels on the in-process event bus. Client is forwarded to the
// session's websocket connections; Audit (never document content or
// credentials) goes to the audit stream.
type BusEvent struct {
	Type       string                 `json:"type"`
	SessionID  string                 `json:"session_id"`
	OccurredAt time.Time              `json:"occurred_at"`
	Client     json.RawMessage        `json:"client,omitempty"`
	Audit      map[string]interface{} `json:"audit,omitempty"`
}
