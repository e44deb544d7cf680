package dto

import "time"

type SendChatRequest struct {
	Question string `json:"question" validate:"required"`
}

// PreviewChatRequest allows an empty question; the prompt is still built.
type PreviewChatRequest struct {
	Question string `json:"question"`
}

type ChatMessageResponse struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
	Mode      string    `json:"mode,omitempty"`
	Provider  string    `json:"provider,omitempty"`
	ReplyTo   string    `json:"reply_to,omitempty"`
}

type SendChatResponse struct {
	Sent  ChatMessageResponse `json:"sent"`
	Reply ChatMessageResponse `json:"reply"`
}

type ChatHistoryResponse struct {
	Messages []ChatMessageResponse `json:"messages"`
}

type PreviewChatResponse struct {
	Mode              string   `json:"mode"`
	Provider          string   `json:"provider"`
	SystemInstruction string   `json:"system_instruction"`
	UserPrompt        string   `json:"user_prompt"`
	IncludedDocuments []string `json:"included_documents"`
	EstimatedTokens   int      `json:"estimated_tokens"`
}
