package gemini

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"co-brain-be/pkg/llm"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel   = "gemini-2.5-flash"

	roleModel = "model"
)

type GeminiChatParts struct {
	Text    string `json:"text"`
	Thought bool   `json:"thought,omitempty"`
}

type GeminiChatContent struct {
	Parts []*GeminiChatParts `json:"parts"`
	Role  string             `json:"role,omitempty"`
}

type GeminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type GeminiChatRequest struct {
	SystemInstruction *GeminiChatContent      `json:"systemInstruction,omitempty"`
	Contents          []*GeminiChatContent    `json:"contents"`
	GenerationConfig  *GeminiGenerationConfig `json:"generationConfig,omitempty"`
}

type GeminiChatCandidate struct {
	Content *GeminiChatContent `json:"content"`
}

type GeminiChatResponse struct {
	Candidates []*GeminiChatCandidate `json:"candidates"`
}

type GeminiProvider struct {
	baseURL string
	model   string
	client  *http.Client
}

var _ llm.LLMProvider = &GeminiProvider{}

func NewGeminiProvider(baseURL, model string, client *http.Client) *GeminiProvider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	if client == nil {
		client = &http.Client{}
	}
	return &GeminiProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  client,
	}
}

func (g *GeminiProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	opts := llm.Apply(llm.Options{Model: g.model, Temperature: 0.3}, options...)
	if opts.APIKey == "" {
		return "", llm.ErrMissingAPIKey
	}

	system, turns := llm.SplitSystem(history)

	payload := GeminiChatRequest{
		Contents: make([]*GeminiChatContent, 0, len(turns)),
		GenerationConfig: &GeminiGenerationConfig{
			Temperature:     opts.Temperature,
			MaxOutputTokens: opts.MaxTokens,
		},
	}
	if system != "" {
		payload.SystemInstruction = &GeminiChatContent{
			Parts: []*GeminiChatParts{{Text: system}},
		}
	}
	for _, m := range turns {
		role := m.Role
		if role == llm.RoleAssistant {
			role = roleModel
		}
		payload.Contents = append(payload.Contents, &GeminiChatContent{
			Parts: []*GeminiChatParts{{Text: m.Content}},
			Role:  role,
		})
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", g.baseURL, opts.Model)

	var geminiRes GeminiChatResponse
	err := llm.PostJSON(ctx, g.client, "gemini", url,
		map[string]string{"x-goog-api-key": opts.APIKey},
		payload, &geminiRes)
	if err != nil {
		return "", err
	}

	return firstCandidateText(&geminiRes), nil
}

func (g *GeminiProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return g.Chat(ctx, []llm.Message{{Role: llm.RoleUser, Content: prompt}}, options...)
}

// firstCandidateText joins the non-thought text parts of the first candidate.
func firstCandidateText(res *GeminiChatResponse) string {
	if len(res.Candidates) == 0 || res.Candidates[0] == nil || res.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range res.Candidates[0].Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		sb.WriteString(part.Text)
	}
	return sb.String()
}
