package prompt

import (
	"fmt"
	"strings"

	"co-brain-be/internal/constant"
	"co-brain-be/pkg/rag/access"
	"co-brain-be/pkg/store"
)

// Prompt is what every provider receives for one question.
type Prompt struct {
	SystemInstruction string `json:"system_instruction"`
	UserPrompt        string `json:"user_prompt"`
}

// ContextualBuilder scopes the session documents to the mode and renders
// the persona and user prompt. It only reads its inputs.
type ContextualBuilder struct {
	question  string
	mode      store.Mode
	documents []store.Document
}

func NewContextualBuilder(question string, mode store.Mode, documents []store.Document) *ContextualBuilder {
	return &ContextualBuilder{
		question:  question,
		mode:      mode,
		documents: documents,
	}
}

// BuildPrompt is the functional form of NewContextualBuilder(...).Build().
func BuildPrompt(question string, mode store.Mode, documents []store.Document) Prompt {
	return NewContextualBuilder(question, mode, documents).Build()
}

func (b *ContextualBuilder) Build() Prompt {
	return Prompt{
		SystemInstruction: b.persona(),
		UserPrompt:        fmt.Sprintf(constant.UserPromptTemplateV1, b.Context(), b.question),
	}
}

// Context renders the allowed documents, or the sentinel when none are left.
func (b *ContextualBuilder) Context() string {
	visible := access.Filter(b.mode, b.documents)
	if len(visible) == 0 {
		return constant.NoDocumentsAvailable
	}

	blocks := make([]string, len(visible))
	for i, doc := range visible {
		var sb strings.Builder
		writeDocument(&sb, doc)
		blocks[i] = sb.String()
	}
	return strings.Join(blocks, "\n")
}

func (b *ContextualBuilder) persona() string {
	if b.mode == store.ModeFull {
		return constant.FullPersonaPromptV1
	}
	return constant.PublicPersonaPromptV1
}

func writeDocument(sb *strings.Builder, doc store.Document) {
	sb.WriteString(constant.DocumentDelimiter)
	sb.WriteString("\nFILENAME: ")
	sb.WriteString(doc.Name)
	sb.WriteString("\nCATEGORY: ")
	sb.WriteString(doc.Category.Label())
	sb.WriteString("\nCONTENT:\n")
	sb.WriteString(doc.Content)
	sb.WriteString("\n")
	sb.WriteString(constant.DocumentDelimiter)
}
