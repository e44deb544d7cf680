package access

import (
	"co-brain-be/pkg/store"
)

// modeCategories is the single source of truth for what each mode may read.
var modeCategories = map[store.Mode][]store.Category{
	store.ModePublic: {store.CategoryPublic},
	store.ModeFull:   {store.CategoryPublic, store.CategoryRestricted},
}

// AllowedCategories returns the categories visible in the given mode.
// Unknown modes get the public set, never a broader one.
func AllowedCategories(mode store.Mode) []store.Category {
	cats, ok := modeCategories[mode]
	if !ok {
		cats = modeCategories[store.ModePublic]
	}
	out := make([]store.Category, len(cats))
	copy(out, cats)
	return out
}

// Allows reports whether a document of category c is visible in mode.
func Allows(mode store.Mode, c store.Category) bool {
	for _, allowed := range AllowedCategories(mode) {
		if allowed == c {
			return true
		}
	}
	return false
}

// Filter keeps the documents visible in mode, preserving their order.
func Filter(mode store.Mode, docs []store.Document) []store.Document {
	out := make([]store.Document, 0, len(docs))
	for _, d := range docs {
		if Allows(mode, d.Category) {
			out = append(out, d)
		}
	}
	return out
}
