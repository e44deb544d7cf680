package store

import (
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Session represents the active chat workspace state in memory
type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	// THE LIBRARY (uploaded documents, insertion ordered)
	Documents *DocumentStore `json:"-"`

	// THE TRANSCRIPT (append-only)
	Conversation *Conversation `json:"-"`

	mu          sync.RWMutex
	mode        Mode
	provider    Provider
	credentials map[Provider]string

	inFlight atomic.Bool
}

func NewSession(id string, provider Provider, credentials map[Provider]string) *Session {
	creds := make(map[Provider]string, len(Providers))
	for _, p := range Providers {
		creds[p] = credentials[p]
	}
	return &Session{
		ID:           id,
		CreatedAt:    time.Now(),
		Documents:    NewDocumentStore(),
		Conversation: NewConversation(),
		mode:         ModePublic,
		provider:     provider,
		credentials:  creds,
	}
}

func (s *Session) Mode() Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

func (s *Session) SetMode(m Mode) {
	s.mu.Lock()
	s.mode = m
	s.mu.Unlock()
}

func (s *Session) Provider() Provider {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.provider
}

func (s *Session) SetProvider(p Provider) {
	s.mu.Lock()
	s.provider = p
	s.mu.Unlock()
}

func (s *Session) Credential(p Provider) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.credentials[p]
}

// SetCredential replaces the secret for p; an empty value clears it.
func (s *Session) SetCredential(p Provider, secret string) {
	s.mu.Lock()
	s.credentials[p] = strings.TrimSpace(secret)
	s.mu.Unlock()
}

// Turn is the caller-owned snapshot of everything a single question needs.
type Turn struct {
	Mode       Mode
	Provider   Provider
	Credential string
	Documents  []Document
}

// Snapshot copies the current state so that the dispatch works on values
// that cannot change underneath it.
func (s *Session) Snapshot() Turn {
	s.mu.RLock()
	t := Turn{
		Mode:       s.mode,
		Provider:   s.provider,
		Credential: s.credentials[s.provider],
	}
	s.mu.RUnlock()
	t.Documents = s.Documents.List()
	return t
}

// BeginTurn claims the session's single in-flight slot.
func (s *Session) BeginTurn() bool {
	return s.inFlight.CompareAndSwap(false, true)
}

func (s *Session) EndTurn() {
	s.inFlight.Store(false)
}

func (s *Session) InFlight() bool {
	return s.inFlight.Load()
}
