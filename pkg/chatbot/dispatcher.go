package chatbot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"co-brain-be/internal/constant"
	"co-brain-be/pkg/llm"
	"co-brain-be/pkg/rag/prompt"
	"co-brain-be/pkg/store"

	"go.uber.org/zap"
)

// Dispatcher answers one question against one provider. Ask never fails:
// every outcome is a displayable reply.
type Dispatcher interface {
	Ask(ctx context.Context, question string, mode store.Mode, documents []store.Document, credential string) string
}

// Settings tunes the request sent for every question.
type Settings struct {
	Temperature float64
	MaxTokens   int // 0 leaves the backend default
}

type providerDispatcher struct {
	provider store.Provider
	backend  llm.LLMProvider
	settings Settings
	logger   *zap.Logger
}

var _ Dispatcher = &providerDispatcher{}

func NewDispatcher(provider store.Provider, backend llm.LLMProvider, settings Settings, logger *zap.Logger) Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &providerDispatcher{
		provider: provider,
		backend:  backend,
		settings: settings,
		logger:   logger.With(zap.String("provider", string(provider))),
	}
}

func (d *providerDispatcher) Ask(ctx context.Context, question string, mode store.Mode, documents []store.Document, credential string) (reply string) {
	p := prompt.BuildPrompt(question, mode, documents)

	credential = strings.TrimSpace(credential)
	if credential == "" {
		d.logger.Warn("credential missing, request not sent")
		return fmt.Sprintf(constant.MissingCredentialTmpl, d.provider.DisplayName())
	}

	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("provider panicked", zap.Any("panic", r))
			reply = d.errorReply(fmt.Sprint(r))
		}
	}()

	options := []llm.Option{
		llm.WithAPIKey(credential),
		llm.WithTemperature(d.settings.Temperature),
	}
	if d.settings.MaxTokens > 0 {
		options = append(options, llm.WithMaxTokens(d.settings.MaxTokens))
	}

	start := time.Now()
	text, err := d.backend.Chat(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: p.SystemInstruction},
		{Role: llm.RoleUser, Content: p.UserPrompt},
	}, options...)
	if err != nil {
		d.logger.Error("provider request failed",
			zap.Error(err),
			zap.Duration("elapsed", time.Since(start)))
		return d.errorReply(err.Error())
	}

	d.logger.Info("provider replied",
		zap.String("mode", string(mode)),
		zap.Int("documents", len(documents)),
		zap.Int("prompt_bytes", len(p.SystemInstruction)+len(p.UserPrompt)),
		zap.Int("reply_bytes", len(text)),
		zap.Duration("elapsed", time.Since(start)))

	if strings.TrimSpace(text) == "" {
		return constant.NoResponseGenerated
	}
	return text
}

func (d *providerDispatcher) errorReply(message string) string {
	message = strings.TrimSpace(message)
	if message == "" {
		message = fmt.Sprintf(constant.DispatchErrorFallback, d.provider.DisplayName())
	}
	return constant.DispatchErrorPrefix + message
}
