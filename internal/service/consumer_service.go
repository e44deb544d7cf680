package service

import (
	"context"
	"encoding/json"
	"time"

	"co-brain-be/internal/dto"
	"co-brain-be/internal/pkg/logger"
	"co-brain-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// FrameSender delivers frames to a session's live connections.
type FrameSender interface {
	Send(sessionID, frameType string, data interface{}) error
	CloseSession(sessionID string)
}

type AuditPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	frames     FrameSender
	audit      AuditPublisher // nil when the audit stream is disabled
	logger     logger.ILogger
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	frames FrameSender,
	audit AuditPublisher,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		frames:     frames,
		audit:      audit,
		logger:     log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var event dto.BusEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		cs.logger.Error("Consumer", "Failed to unmarshal bus event", map[string]interface{}{"error": err.Error()})
		msg.Ack() // never redeliver garbage
		return
	}

	if len(event.Client) > 0 {
		if err := cs.frames.Send(event.SessionID, event.Type, event.Client); err != nil {
			cs.logger.Warn("Consumer", "Failed to push frame", map[string]interface{}{"type": event.Type, "error": err.Error()})
		}
	}
	if event.Type == events.TypeSessionEnded {
		cs.frames.CloseSession(event.SessionID)
	}

	if cs.audit != nil && event.Audit != nil {
		auditCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := cs.audit.Publish(auditCtx, events.BaseEvent{
			Type:       event.Type,
			Data:       withSession(event.Audit, event.SessionID),
			OccurredAt: event.OccurredAt,
		})
		cancel()
		if err != nil {
			// Audit is best effort; retrying would reorder the live stream.
			cs.logger.Warn("Consumer", "Failed to publish audit event", map[string]interface{}{"type": event.Type, "error": err.Error()})
		}
	}

	msg.Ack()
}

func withSession(data map[string]interface{}, sessionID string) map[string]interface{} {
	out := make(map[string]interface{}, len(data)+1)
	for k, v := range data {
		out[k] = v
	}
	out["session_id"] = sessionID
	return out
}
