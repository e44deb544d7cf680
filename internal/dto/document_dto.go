package dto

import "time"

type DocumentResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	CategoryLabel string    `json:"category_label"`
	UploadedAt    time.Time `json:"uploaded_at"`
	Size          int       `json:"size"`
	Tokens        int       `json:"tokens"`
	Content       string    `json:"content,omitempty"`
}

type UploadDocumentsResponse struct {
	Documents []DocumentResponse `json:"documents"`
}

type ListDocumentsResponse struct {
	Documents   []DocumentResponse `json:"documents"`
	TotalTokens int                `json:"total_tokens"`
}

// UploadedFile is one file of a multipart upload, already read.
type UploadedFile struct {
	Name    string
	Content []byte
}
