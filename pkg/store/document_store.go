package store

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrDocumentNotFound = errors.New("document not found")

// DocumentStore keeps the session's uploaded documents in insertion order.
// Readers always receive copies; documents are never edited in place.
type DocumentStore struct {
	mu   sync.RWMutex
	docs []Document
}

func NewDocumentStore() *DocumentStore {
	return &DocumentStore{docs: make([]Document, 0)}
}

// Add stores a new document and returns the stored record. tokens is the
// caller's estimate for content; the record is never changed afterwards.
func (s *DocumentStore) Add(name, content string, category Category, tokens int) (Document, error) {
	if !category.Valid() {
		return Document{}, errors.New("invalid document category")
	}

	doc := Document{
		ID:         uuid.NewString(),
		Name:       name,
		Content:    content,
		Category:   category,
		UploadedAt: time.Now(),
		Size:       len(content),
		Tokens:     tokens,
	}

	s.mu.Lock()
	s.docs = append(s.docs, doc)
	s.mu.Unlock()

	return doc, nil
}

func (s *DocumentStore) Get(id string) (Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.docs {
		if d.ID == id {
			return d, nil
		}
	}
	return Document{}, ErrDocumentNotFound
}

func (s *DocumentStore) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, d := range s.docs {
		if d.ID == id {
			s.docs = append(s.docs[:i:i], s.docs[i+1:]...)
			return nil
		}
	}
	return ErrDocumentNotFound
}

// List returns a snapshot of all documents in upload order.
func (s *DocumentStore) List() []Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Document, len(s.docs))
	copy(out, s.docs)
	return out
}

func (s *DocumentStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}
