package factory

import (
	"testing"

	"co-brain-be/pkg/llm/anthropic"
	"co-brain-be/pkg/llm/gemini"
	"co-brain-be/pkg/llm/openai"
	"co-brain-be/pkg/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLLMProvider(t *testing.T) {
	p, err := NewLLMProvider(store.ProviderGemini, BackendConfig{})
	require.NoError(t, err)
	assert.IsType(t, &gemini.GeminiProvider{}, p)

	p, err = NewLLMProvider(store.ProviderOpenAI, BackendConfig{})
	require.NoError(t, err)
	assert.IsType(t, &openai.OpenAIProvider{}, p)

	p, err = NewLLMProvider(store.ProviderAnthropic, BackendConfig{})
	require.NoError(t, err)
	assert.IsType(t, &anthropic.AnthropicProvider{}, p)

	_, err = NewLLMProvider(store.Provider("ollama"), BackendConfig{})
	assert.EqualError(t, err, "unsupported LLM provider: ollama")
}
