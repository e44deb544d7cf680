package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"co-brain-be/internal/dto"
	"co-brain-be/internal/pkg/logger"
	"co-brain-be/internal/pkg/serverutils"
	"co-brain-be/pkg/events"
	"co-brain-be/pkg/rag/access"
	"co-brain-be/pkg/store"
)

type ISettingsService interface {
	Get(ctx context.Context, sess *store.Session) *dto.SettingsResponse
	SetMode(ctx context.Context, sess *store.Session, req *dto.SetModeRequest) (*dto.SettingsResponse, error)
	SetProvider(ctx context.Context, sess *store.Session, req *dto.SetProviderRequest) (*dto.SettingsResponse, error)
	SetCredentials(ctx context.Context, sess *store.Session, req *dto.SetCredentialsRequest) (*dto.SettingsResponse, error)
}

type settingsService struct {
	models    map[store.Provider]string
	publisher IEventPublisher
	logger    logger.ILogger
}

func NewSettingsService(models map[store.Provider]string, publisher IEventPublisher, log logger.ILogger) ISettingsService {
	return &settingsService{models: models, publisher: publisher, logger: log}
}

func (s *settingsService) Get(ctx context.Context, sess *store.Session) *dto.SettingsResponse {
	mode := sess.Mode()
	selected := sess.Provider()

	allowed := access.AllowedCategories(mode)
	categories := make([]string, 0, len(allowed))
	for _, c := range allowed {
		categories = append(categories, string(c))
	}

	providers := make([]dto.ProviderStatus, 0, len(store.Providers))
	for _, p := range store.Providers {
		secret := sess.Credential(p)
		providers = append(providers, dto.ProviderStatus{
			Provider:   string(p),
			Label:      p.DisplayName(),
			Model:      s.models[p],
			Configured: secret != "",
			Hint:       MaskCredential(secret),
			Selected:   p == selected,
		})
	}

	return &dto.SettingsResponse{
		Mode:              string(mode),
		ModeLabel:         mode.DisplayName(),
		AllowedCategories: categories,
		Provider:          string(selected),
		ProviderLabel:     selected.DisplayName(),
		Providers:         providers,
	}
}

// SetMode takes effect from the next question; a question already in flight
// keeps the mode it was submitted with.
func (s *settingsService) SetMode(ctx context.Context, sess *store.Session, req *dto.SetModeRequest) (*dto.SettingsResponse, error) {
	mode, err := store.ParseMode(req.Mode)
	if err != nil {
		return nil, serverutils.NewValidationError(map[string]string{"mode": err.Error()})
	}
	sess.SetMode(mode)
	s.changed(ctx, sess, "mode", string(mode))
	return s.Get(ctx, sess), nil
}

func (s *settingsService) SetProvider(ctx context.Context, sess *store.Session, req *dto.SetProviderRequest) (*dto.SettingsResponse, error) {
	provider, err := store.ParseProvider(req.Provider)
	if err != nil {
		return nil, serverutils.NewValidationError(map[string]string{"provider": err.Error()})
	}
	sess.SetProvider(provider)
	s.changed(ctx, sess, "provider", string(provider))
	return s.Get(ctx, sess), nil
}

func (s *settingsService) SetCredentials(ctx context.Context, sess *store.Session, req *dto.SetCredentialsRequest) (*dto.SettingsResponse, error) {
	updates := map[store.Provider]*string{
		store.ProviderGemini:    req.Gemini,
		store.ProviderOpenAI:    req.OpenAI,
		store.ProviderAnthropic: req.Anthropic,
	}

	var touched []string
	for _, p := range store.Providers {
		if v := updates[p]; v != nil {
			sess.SetCredential(p, *v)
			touched = append(touched, string(p))
		}
	}
	if len(touched) == 0 {
		return nil, serverutils.ErrBadRequest("no credential given")
	}

	// Only the provider names are logged, never the secrets.
	s.changed(ctx, sess, "credentials", strings.Join(touched, ","))
	return s.Get(ctx, sess), nil
}

func (s *settingsService) changed(ctx context.Context, sess *store.Session, field, value string) {
	s.logger.Info("Settings", "Settings changed", map[string]interface{}{"session_id": sess.ID, "field": field, "value": value})
	emit(ctx, s.publisher, func(m string, d map[string]interface{}) { s.logger.Warn("Settings", m, d) },
		events.TypeSettingsChanged, sess.ID,
		map[string]interface{}{"settings": s.Get(ctx, sess)},
		map[string]interface{}{"field": field, "value": value})
}

// MaskCredential keeps just enough of a key to recognise it.
func MaskCredential(secret string) string {
	if secret == "" {
		return ""
	}
	n := utf8.RuneCountInString(secret)
	if n <= 8 {
		return strings.Repeat("*", n)
	}
	r := []rune(secret)
	return fmt.Sprintf("%s…%s", string(r[:3]), string(r[n-4:]))
}
