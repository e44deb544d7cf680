package store

import (
	"fmt"
	"strings"
	"time"
)

// Category is the fixed access classification of an uploaded document.
type Category string

const (
	CategoryPublic     Category = "public"
	CategoryRestricted Category = "restricted"
)

// Label is the human-readable name rendered into the context block.
func (c Category) Label() string {
	switch c {
	case CategoryRestricted:
		return "Internal/Technical"
	default:
		return "Sales/Public"
	}
}

func (c Category) Valid() bool {
	return c == CategoryPublic || c == CategoryRestricted
}

// ParseCategory accepts the canonical names plus the folder names used by the
// upload UI ("sales_safe", "internal_tech").
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "public", "sales_safe", "sales":
		return CategoryPublic, nil
	case "restricted", "internal_tech", "internal":
		return CategoryRestricted, nil
	}
	return "", fmt.Errorf("unknown document category %q", s)
}

// Document is a single uploaded file treated as opaque text.
type Document struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Content    string    `json:"content"`
	Category   Category  `json:"category"`
	UploadedAt time.Time `json:"uploaded_at"`
	Size       int       `json:"size"`
	Tokens     int       `json:"tokens"`
}
