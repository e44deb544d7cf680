package mapper

import (
	"co-brain-be/internal/dto"
	"co-brain-be/pkg/store"
)

func ToChatMessageResponse(m store.Message) dto.ChatMessageResponse {
	return dto.ChatMessageResponse{
		ID:        m.ID,
		Role:      string(m.Role),
		Text:      m.Text,
		Timestamp: m.Timestamp,
		Mode:      string(m.ModeUsed),
		Provider:  string(m.ProviderUsed),
		ReplyTo:   m.ReplyTo,
	}
}

func ToChatMessageResponses(messages []store.Message) []dto.ChatMessageResponse {
	res := make([]dto.ChatMessageResponse, 0, len(messages))
	for _, m := range messages {
		res = append(res, ToChatMessageResponse(m))
	}
	return res
}
