package store

import (
	"fmt"
	"strings"
)

// Mode is the user-selected persona and access level.
type Mode string

const (
	ModePublic Mode = "public" // Sales
	ModeFull   Mode = "full"   // R&D
)

func (m Mode) DisplayName() string {
	if m == ModeFull {
		return "R&D"
	}
	return "Sales"
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "public", "sales":
		return ModePublic, nil
	case "full", "r&d", "rnd", "rd":
		return ModeFull, nil
	}
	return "", fmt.Errorf("unknown mode %q", s)
}

// Provider identifies the model backend a question is dispatched to.
type Provider string

const (
	ProviderGemini    Provider = "gemini"
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
)

// Providers lists every supported backend in display order.
var Providers = []Provider{ProviderGemini, ProviderOpenAI, ProviderAnthropic}

func (p Provider) DisplayName() string {
	switch p {
	case ProviderGemini:
		return "Gemini"
	case ProviderOpenAI:
		return "OpenAI"
	case ProviderAnthropic:
		return "Anthropic"
	}
	return string(p)
}

func ParseProvider(s string) (Provider, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "gemini", "google":
		return ProviderGemini, nil
	case "openai", "gpt":
		return ProviderOpenAI, nil
	case "anthropic", "claude":
		return ProviderAnthropic, nil
	}
	return "", fmt.Errorf("unknown provider %q", s)
}
