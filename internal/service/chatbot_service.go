package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"co-brain-be/internal/constant"
	"co-brain-be/internal/dto"
	"co-brain-be/internal/mapper"
	"co-brain-be/internal/pkg/logger"
	"co-brain-be/internal/pkg/serverutils"
	"co-brain-be/pkg/chatbot"
	"co-brain-be/pkg/events"
	"co-brain-be/pkg/rag/access"
	"co-brain-be/pkg/rag/prompt"
	"co-brain-be/pkg/store"
	"co-brain-be/pkg/tokenizer"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

type IChatbotService interface {
	SendChat(ctx context.Context, sess *store.Session, request *dto.SendChatRequest) (*dto.SendChatResponse, error)
	Preview(ctx context.Context, sess *store.Session, request *dto.PreviewChatRequest) (*dto.PreviewChatResponse, error)
	GetChatHistory(ctx context.Context, sess *store.Session) *dto.ChatHistoryResponse
}

type chatbotService struct {
	registry  *chatbot.Registry
	counter   tokenizer.Counter
	publisher IEventPublisher
	logger    logger.ILogger
}

func NewChatbotService(registry *chatbot.Registry, counter tokenizer.Counter, publisher IEventPublisher, log logger.ILogger) IChatbotService {
	return &chatbotService{
		registry:  registry,
		counter:   counter,
		publisher: publisher,
		logger:    log,
	}
}

// SendChat runs one question/answer turn. The session state is captured when
// the question is accepted; later settings changes only affect the next
// turn. A second question while one is in flight is rejected.
func (cs *chatbotService) SendChat(ctx context.Context, sess *store.Session, request *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	if strings.TrimSpace(request.Question) == "" {
		return nil, serverutils.NewValidationError(map[string]string{"question": "failed on 'required' tag"})
	}
	if !sess.BeginTurn() {
		return nil, serverutils.ErrConflict("a question is already being answered")
	}
	defer sess.EndTurn()

	turn := sess.Snapshot()
	dispatcher, ok := cs.registry.Get(turn.Provider)
	if !ok {
		return nil, fmt.Errorf("no dispatcher for provider %s", turn.Provider)
	}

	sent, err := sess.Conversation.AppendUser(request.Question)
	if errors.Is(err, store.ErrTurnPending) {
		return nil, serverutils.ErrConflict("a question is already being answered")
	}
	if err != nil {
		return nil, err
	}
	sentRes := mapper.ToChatMessageResponse(sent)
	emit(ctx, cs.publisher, cs.warn, events.TypeChatAsked, sess.ID, sentRes, map[string]interface{}{
		"message_id": sent.ID,
		"mode":       string(turn.Mode),
		"provider":   string(turn.Provider),
		"documents":  len(turn.Documents),
	})

	// The answer is appended even if the client goes away.
	askCtx, span := otel.Tracer("co-brain/chatbot").Start(context.WithoutCancel(ctx), "chatbot.ask")
	span.SetAttributes(
		attribute.String("cobrain.mode", string(turn.Mode)),
		attribute.String("cobrain.provider", string(turn.Provider)),
		attribute.Int("cobrain.documents", len(turn.Documents)),
	)
	text := dispatcher.Ask(askCtx, request.Question, turn.Mode, turn.Documents, turn.Credential)
	isError := strings.HasPrefix(text, constant.DispatchErrorPrefix)
	span.SetAttributes(attribute.Bool("cobrain.error_reply", isError))
	span.End()

	reply, err := sess.Conversation.AppendAssistant(sent.ID, text, turn.Mode, turn.Provider)
	if err != nil {
		return nil, err
	}
	replyRes := mapper.ToChatMessageResponse(reply)

	cs.logger.Info("Chatbot", "Question answered", map[string]interface{}{
		"session_id": sess.ID,
		"mode":       turn.Mode,
		"provider":   turn.Provider,
		"error":      isError,
	})
	emit(ctx, cs.publisher, cs.warn, events.TypeChatReplied, sess.ID, replyRes, map[string]interface{}{
		"message_id":  reply.ID,
		"reply_to":    sent.ID,
		"mode":        string(turn.Mode),
		"provider":    string(turn.Provider),
		"error_reply": isError,
		"reply_bytes": len(text),
	})

	return &dto.SendChatResponse{Sent: sentRes, Reply: replyRes}, nil
}

// Preview shows exactly what would be sent for the question in the current
// state, without contacting a provider or touching the log.
func (cs *chatbotService) Preview(ctx context.Context, sess *store.Session, request *dto.PreviewChatRequest) (*dto.PreviewChatResponse, error) {
	turn := sess.Snapshot()
	p := prompt.BuildPrompt(request.Question, turn.Mode, turn.Documents)

	included := access.Filter(turn.Mode, turn.Documents)
	names := make([]string, 0, len(included))
	for _, d := range included {
		names = append(names, d.Name)
	}

	return &dto.PreviewChatResponse{
		Mode:              string(turn.Mode),
		Provider:          string(turn.Provider),
		SystemInstruction: p.SystemInstruction,
		UserPrompt:        p.UserPrompt,
		IncludedDocuments: names,
		EstimatedTokens:   cs.counter.Count(p.SystemInstruction) + cs.counter.Count(p.UserPrompt),
	}, nil
}

func (cs *chatbotService) GetChatHistory(ctx context.Context, sess *store.Session) *dto.ChatHistoryResponse {
	return &dto.ChatHistoryResponse{Messages: mapper.ToChatMessageResponses(sess.Conversation.Messages())}
}

func (cs *chatbotService) warn(message string, details map[string]interface{}) {
	cs.logger.Warn("Chatbot", message, details)
}
