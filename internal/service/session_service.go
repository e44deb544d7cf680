package service

import (
	"context"
	"fmt"

	"co-brain-be/internal/constant"
	"co-brain-be/internal/dto"
	"co-brain-be/internal/mapper"
	"co-brain-be/internal/pkg/logger"
	"co-brain-be/internal/pkg/serverutils"
	"co-brain-be/internal/repository/memory"
	"co-brain-be/pkg/events"
	"co-brain-be/pkg/store"

	"github.com/google/uuid"
)

type ISessionService interface {
	Create(ctx context.Context) (*dto.CreateSessionResponse, error)
	State(ctx context.Context, sess *store.Session) *dto.SessionStateResponse
	End(ctx context.Context, sess *store.Session) error
}

type sessionService struct {
	sessionRepo     *memory.SessionRepository
	tokens          *serverutils.SessionTokens
	defaultProvider store.Provider
	defaultKeys     map[store.Provider]string
	publisher       IEventPublisher
	logger          logger.ILogger
}

func NewSessionService(
	sessionRepo *memory.SessionRepository,
	tokens *serverutils.SessionTokens,
	defaultProvider store.Provider,
	defaultKeys map[store.Provider]string,
	publisher IEventPublisher,
	log logger.ILogger,
) ISessionService {
	return &sessionService{
		sessionRepo:     sessionRepo,
		tokens:          tokens,
		defaultProvider: defaultProvider,
		defaultKeys:     defaultKeys,
		publisher:       publisher,
		logger:          log,
	}
}

// Create starts an empty workspace seeded with the environment credentials.
// The greeting is returned for display only and is not part of the log.
func (s *sessionService) Create(ctx context.Context) (*dto.CreateSessionResponse, error) {
	sess := store.NewSession(uuid.NewString(), s.defaultProvider, s.defaultKeys)

	token, err := s.tokens.Issue(sess.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}
	s.sessionRepo.Save(sess)

	s.logger.Info("Session", "Session created", map[string]interface{}{"session_id": sess.ID, "provider": sess.Provider()})
	emit(ctx, s.publisher, s.warn, events.TypeSessionCreated, sess.ID, nil, map[string]interface{}{
		"provider": string(sess.Provider()),
		"mode":     string(sess.Mode()),
	})

	return &dto.CreateSessionResponse{
		Token:    token,
		Greeting: constant.WelcomeMessage,
		Session:  mapper.ToSessionState(sess),
	}, nil
}

func (s *sessionService) State(ctx context.Context, sess *store.Session) *dto.SessionStateResponse {
	state := mapper.ToSessionState(sess)
	return &state
}

func (s *sessionService) End(ctx context.Context, sess *store.Session) error {
	// The turn slot stays claimed; a late send on this session gets a conflict.
	if !sess.BeginTurn() {
		return serverutils.ErrConflict("a question is still being answered")
	}
	s.sessionRepo.Delete(sess.ID)

	s.logger.Info("Session", "Session ended", map[string]interface{}{"session_id": sess.ID})
	emit(ctx, s.publisher, s.warn, events.TypeSessionEnded, sess.ID, map[string]string{"session_id": sess.ID}, map[string]interface{}{
		"documents": sess.Documents.Len(),
		"messages":  sess.Conversation.Len(),
	})
	return nil
}

func (s *sessionService) warn(message string, details map[string]interface{}) {
	s.logger.Warn("Session", message, details)
}
