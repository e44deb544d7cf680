package service

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"co-brain-be/internal/dto"
	"co-brain-be/internal/mapper"
	"co-brain-be/internal/pkg/logger"
	"co-brain-be/internal/pkg/serverutils"
	"co-brain-be/pkg/events"
	"co-brain-be/pkg/store"
	"co-brain-be/pkg/tokenizer"
)

type IDocumentService interface {
	Upload(ctx context.Context, sess *store.Session, category string, files []dto.UploadedFile) (*dto.UploadDocumentsResponse, error)
	List(ctx context.Context, sess *store.Session) *dto.ListDocumentsResponse
	Show(ctx context.Context, sess *store.Session, id string) (*dto.DocumentResponse, error)
	Delete(ctx context.Context, sess *store.Session, id string) error
}

type documentService struct {
	counter   tokenizer.Counter
	publisher IEventPublisher
	logger    logger.ILogger
}

func NewDocumentService(counter tokenizer.Counter, publisher IEventPublisher, log logger.ILogger) IDocumentService {
	return &documentService{counter: counter, publisher: publisher, logger: log}
}

// Upload stores every file as one document of the given category. Content
// is kept as text; invalid UTF-8 sequences are replaced, nothing else is
// interpreted.
func (s *documentService) Upload(ctx context.Context, sess *store.Session, category string, files []dto.UploadedFile) (*dto.UploadDocumentsResponse, error) {
	cat, err := store.ParseCategory(category)
	if err != nil {
		return nil, serverutils.NewValidationError(map[string]string{"category": err.Error()})
	}
	if len(files) == 0 {
		return nil, serverutils.NewValidationError(map[string]string{"files": "at least one file is required"})
	}

	res := &dto.UploadDocumentsResponse{Documents: make([]dto.DocumentResponse, 0, len(files))}
	for _, f := range files {
		name := filepath.Base(strings.ReplaceAll(f.Name, "\\", "/"))
		if name == "." || name == "/" || name == "" {
			name = "untitled.txt"
		}
		content := strings.ToValidUTF8(string(f.Content), "\uFFFD")

		doc, err := sess.Documents.Add(name, content, cat, s.counter.Count(content))
		if err != nil {
			return nil, err
		}

		s.logger.Info("Document", "Document uploaded", map[string]interface{}{
			"session_id": sess.ID, "document_id": doc.ID, "category": cat, "size": doc.Size, "tokens": doc.Tokens,
		})
		item := mapper.ToDocumentResponse(doc, false)
		emit(ctx, s.publisher, s.warn, events.TypeDocumentUploaded, sess.ID, item, map[string]interface{}{
			"document_id": doc.ID, "category": string(cat), "size": doc.Size, "tokens": doc.Tokens,
		})
		res.Documents = append(res.Documents, item)
	}
	return res, nil
}

func (s *documentService) List(ctx context.Context, sess *store.Session) *dto.ListDocumentsResponse {
	docs := sess.Documents.List()
	res := &dto.ListDocumentsResponse{Documents: make([]dto.DocumentResponse, 0, len(docs))}
	for _, d := range docs {
		res.Documents = append(res.Documents, mapper.ToDocumentResponse(d, false))
		res.TotalTokens += d.Tokens
	}
	return res
}

func (s *documentService) Show(ctx context.Context, sess *store.Session, id string) (*dto.DocumentResponse, error) {
	doc, err := sess.Documents.Get(id)
	if errors.Is(err, store.ErrDocumentNotFound) {
		return nil, serverutils.ErrNotFound("document", id)
	}
	if err != nil {
		return nil, err
	}
	res := mapper.ToDocumentResponse(doc, true)
	return &res, nil
}

func (s *documentService) Delete(ctx context.Context, sess *store.Session, id string) error {
	err := sess.Documents.Remove(id)
	if errors.Is(err, store.ErrDocumentNotFound) {
		return serverutils.ErrNotFound("document", id)
	}
	if err != nil {
		return err
	}

	s.logger.Info("Document", "Document removed", map[string]interface{}{"session_id": sess.ID, "document_id": id})
	emit(ctx, s.publisher, s.warn, events.TypeDocumentRemoved, sess.ID, map[string]string{"id": id}, map[string]interface{}{"document_id": id})
	return nil
}

func (s *documentService) warn(message string, details map[string]interface{}) {
	s.logger.Warn("Document", message, details)
}
