package dto

import "time"

type SessionStateResponse struct {
	SessionID     string    `json:"session_id"`
	CreatedAt     time.Time `json:"created_at"`
	Mode          string    `json:"mode"`
	ModeLabel     string    `json:"mode_label"`
	Provider      string    `json:"provider"`
	ProviderLabel string    `json:"provider_label"`
	DocumentCount int       `json:"document_count"`
	MessageCount  int       `json:"message_count"`
	InFlight      bool      `json:"in_flight"`
}

type CreateSessionResponse struct {
	Token    string               `json:"token"`
	Greeting string               `json:"greeting"`
	Session  SessionStateResponse `json:"session"`
}
