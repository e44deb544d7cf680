package factory

import (
	"fmt"
	"net/http"

	"co-brain-be/pkg/llm"
	"co-brain-be/pkg/llm/anthropic"
	"co-brain-be/pkg/llm/gemini"
	"co-brain-be/pkg/llm/openai"
	"co-brain-be/pkg/store"
)

// BackendConfig carries the per-provider endpoint settings. Empty fields
// fall back to the backend defaults.
type BackendConfig struct {
	BaseURL string
	Model   string
	Client  *http.Client
}

func NewLLMProvider(provider store.Provider, cfg BackendConfig) (llm.LLMProvider, error) {
	switch provider {
	case store.ProviderGemini:
		return gemini.NewGeminiProvider(cfg.BaseURL, cfg.Model, cfg.Client), nil
	case store.ProviderOpenAI:
		return openai.NewOpenAIProvider(cfg.BaseURL, cfg.Model, cfg.Client), nil
	case store.ProviderAnthropic:
		return anthropic.NewAnthropicProvider(cfg.BaseURL, cfg.Model, cfg.Client), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", provider)
	}
}
