package mapper

import (
	"co-brain-be/internal/dto"
	"co-brain-be/pkg/store"
)

func ToSessionState(s *store.Session) dto.SessionStateResponse {
	mode := s.Mode()
	provider := s.Provider()
	return dto.SessionStateResponse{
		SessionID:     s.ID,
		CreatedAt:     s.CreatedAt,
		Mode:          string(mode),
		ModeLabel:     mode.DisplayName(),
		Provider:      string(provider),
		ProviderLabel: provider.DisplayName(),
		DocumentCount: s.Documents.Len(),
		MessageCount:  s.Conversation.Len(),
		InFlight:      s.InFlight(),
	}
}
