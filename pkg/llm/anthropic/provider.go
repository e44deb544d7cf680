package anthropic

import (
	"context"
	"net/http"
	"strings"

	"co-brain-be/pkg/llm"
)

const (
	DefaultBaseURL   = "https://api.anthropic.com"
	DefaultModel     = "claude-sonnet-4-5-20250929"
	DefaultMaxTokens = 1024
	APIVersion       = "2023-06-01"
)

type AnthropicProvider struct {
	baseURL string
	model   string
	client  *http.Client
}

var _ llm.LLMProvider = &AnthropicProvider{}

func NewAnthropicProvider(baseURL, model string, client *http.Client) *AnthropicProvider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	if client == nil {
		client = &http.Client{}
	}
	return &AnthropicProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  client,
	}
}

type messagesRequest struct {
	Model       string        `json:"model"`
	MaxTokens   int           `json:"max_tokens"`
	System      string        `json:"system,omitempty"`
	Messages    []llm.Message `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type messagesResponse struct {
	Content []contentBlock `json:"content"`
}

func (a *AnthropicProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	opts := llm.Apply(llm.Options{
		Model:       a.model,
		Temperature: 0.3,
		MaxTokens:   DefaultMaxTokens,
	}, options...)
	if opts.APIKey == "" {
		return "", llm.ErrMissingAPIKey
	}
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = DefaultMaxTokens
	}

	system, turns := llm.SplitSystem(history)

	reqBody := messagesRequest{
		Model:       opts.Model,
		MaxTokens:   opts.MaxTokens,
		System:      system,
		Messages:    turns,
		Temperature: opts.Temperature,
	}

	var res messagesResponse
	err := llm.PostJSON(ctx, a.client, "anthropic", a.baseURL+"/v1/messages",
		map[string]string{
			"x-api-key":         opts.APIKey,
			"anthropic-version": APIVersion,
		},
		reqBody, &res)
	if err != nil {
		return "", err
	}

	for _, block := range res.Content {
		if block.Type == "text" {
			return block.Text, nil
		}
	}
	return "", nil
}

func (a *AnthropicProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return a.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, options...)
}
