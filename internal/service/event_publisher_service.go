package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"co-brain-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

type IEventPublisher interface {
	Publish(ctx context.Context, event dto.BusEvent) error
}

type eventPublisher struct {
	publisher message.Publisher
	topicName string
}

func NewEventPublisher(publisher message.Publisher, topicName string) IEventPublisher {
	return &eventPublisher{publisher: publisher, topicName: topicName}
}

func (p *eventPublisher) Publish(ctx context.Context, event dto.BusEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal bus event: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	return p.publisher.Publish(p.topicName, msg)
}

// NewBusEvent builds an event for sessionID. client may be nil when nothing
// has to reach the browser.
func NewBusEvent(eventType, sessionID string, client interface{}, audit map[string]interface{}) (dto.BusEvent, error) {
	e := dto.BusEvent{
		Type:       eventType,
		SessionID:  sessionID,
		OccurredAt: time.Now().UTC(),
		Audit:      audit,
	}
	if client != nil {
		raw, err := json.Marshal(client)
		if err != nil {
			return dto.BusEvent{}, fmt.Errorf("marshal client payload: %w", err)
		}
		e.Client = raw
	}
	return e, nil
}

// emit publishes best effort; the request that caused the event has
// already succeeded.
func emit(ctx context.Context, pub IEventPublisher, log func(string, map[string]interface{}), eventType, sessionID string, client interface{}, audit map[string]interface{}) {
	if pub == nil {
		return
	}
	e, err := NewBusEvent(eventType, sessionID, client, audit)
	if err == nil {
		err = pub.Publish(ctx, e)
	}
	if err != nil {
		log("Failed to publish event", map[string]interface{}{"type": eventType, "session_id": sessionID, "error": err.Error()})
	}
}
