package service

import (
	"context"
	"sync"

	"co-brain-be/internal/dto"
	"co-brain-be/pkg/store"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []dto.BusEvent
}

func (p *recordingPublisher) Publish(ctx context.Context, e dto.BusEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type stubDispatcher struct {
	reply   string
	started chan struct{}
	release chan struct{}

	mu    sync.Mutex
	calls []askCall
}

type askCall struct {
	question   string
	mode       store.Mode
	documents  []store.Document
	credential string
}

func (d *stubDispatcher) Ask(ctx context.Context, question string, mode store.Mode, documents []store.Document, credential string) string {
	d.mu.Lock()
	d.calls = append(d.calls, askCall{question, mode, documents, credential})
	d.mu.Unlock()
	if d.started != nil {
		close(d.started)
	}
	if d.release != nil {
		<-d.release
	}
	return d.reply
}

type lenCounter struct{}

func (lenCounter) Count(text string) int { return len(text) }

func newRawMessage(payload []byte) *message.Message {
	return message.NewMessage(watermill.NewUUID(), payload)
}
