package store

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

var (
	ErrTurnPending   = errors.New("previous question has not been answered yet")
	ErrNoPendingTurn = errors.New("no question is waiting for an answer")
	ErrReplyMismatch = errors.New("reply does not answer the pending question")
)

// Message is one entry of the conversation log.
type Message struct {
	ID           string    `json:"id"`
	Role         Role      `json:"role"`
	Text         string    `json:"text"`
	Timestamp    time.Time `json:"timestamp"`
	ModeUsed     Mode      `json:"mode_used,omitempty"`
	ProviderUsed Provider  `json:"provider_used,omitempty"`
	ReplyTo      string    `json:"reply_to,omitempty"`
}

// Conversation is an append-only log with strict user/assistant turns.
type Conversation struct {
	mu       sync.RWMutex
	messages []Message
	pending  string // id of the unanswered user message
}

func NewConversation() *Conversation {
	return &Conversation{messages: make([]Message, 0)}
}

func (c *Conversation) AppendUser(text string) (Message, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending != "" {
		return Message{}, ErrTurnPending
	}

	msg := Message{
		ID:        uuid.NewString(),
		Role:      RoleUser,
		Text:      text,
		Timestamp: time.Now(),
	}
	c.messages = append(c.messages, msg)
	c.pending = msg.ID
	return msg, nil
}

func (c *Conversation) AppendAssistant(replyTo, text string, mode Mode, provider Provider) (Message, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending == "" {
		return Message{}, ErrNoPendingTurn
	}
	if c.pending != replyTo {
		return Message{}, ErrReplyMismatch
	}

	msg := Message{
		ID:           uuid.NewString(),
		Role:         RoleAssistant,
		Text:         text,
		Timestamp:    time.Now(),
		ModeUsed:     mode,
		ProviderUsed: provider,
		ReplyTo:      replyTo,
	}
	c.messages = append(c.messages, msg)
	c.pending = ""
	return msg, nil
}

// Messages returns the log in production order.
func (c *Conversation) Messages() []Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Message, len(c.messages))
	copy(out, c.messages)
	return out
}

func (c *Conversation) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.messages)
}
