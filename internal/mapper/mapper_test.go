package mapper

import (
	"testing"

	"co-brain-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDocumentResponseHidesContentByDefault(t *testing.T) {
	d := store.Document{ID: "1", Name: "arch.md", Content: "secret", Category: store.CategoryRestricted, Size: 6}

	res := ToDocumentResponse(d, false)
	assert.Empty(t, res.Content)
	assert.Equal(t, "Internal/Technical", res.CategoryLabel)

	assert.Equal(t, "secret", ToDocumentResponse(d, true).Content)
}

func TestToSessionState(t *testing.T) {
	s := store.NewSession("s1", store.ProviderAnthropic, nil)
	s.SetMode(store.ModeFull)
	_, err := s.Documents.Add("a.txt", "x", store.CategoryPublic, 0)
	require.NoError(t, err)

	st := ToSessionState(s)
	assert.Equal(t, "full", st.Mode)
	assert.Equal(t, "R&D", st.ModeLabel)
	assert.Equal(t, "Anthropic", st.ProviderLabel)
	assert.Equal(t, 1, st.DocumentCount)
	assert.Zero(t, st.MessageCount)
}

func TestToChatMessageResponsesKeepsOrder(t *testing.T) {
	c := store.NewConversation()
	u, err := c.AppendUser("q")
	require.NoError(t, err)
	_, err = c.AppendAssistant(u.ID, "a", store.ModePublic, store.ProviderGemini)
	require.NoError(t, err)

	res := ToChatMessageResponses(c.Messages())
	require.Len(t, res, 2)
	assert.Equal(t, "user", res[0].Role)
	assert.Empty(t, res[0].Provider)
	assert.Equal(t, "gemini", res[1].Provider)
	assert.Equal(t, u.ID, res[1].ReplyTo)
}
