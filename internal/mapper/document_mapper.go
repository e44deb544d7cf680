package mapper

import (
	"co-brain-be/internal/dto"
	"co-brain-be/pkg/store"
)

// ToDocumentResponse omits the content unless withContent is set.
func ToDocumentResponse(d store.Document, withContent bool) dto.DocumentResponse {
	res := dto.DocumentResponse{
		ID:            d.ID,
		Name:          d.Name,
		Category:      string(d.Category),
		CategoryLabel: d.Category.Label(),
		UploadedAt:    d.UploadedAt,
		Size:          d.Size,
		Tokens:        d.Tokens,
	}
	if withContent {
		res.Content = d.Content
	}
	return res
}
