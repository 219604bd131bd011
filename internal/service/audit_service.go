package service

import (
	"context"
	"encoding/json"
	"log"

	"humanlenk-be/internal/pkg/logger"
	"humanlenk-be/pkg/events"
	pktNats "humanlenk-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IAuditService interface {
	Consume(ctx context.Context) error
}

// auditService drains the in-process event bus, writes an audit line through
// the structured logger and mirrors each event to NATS when available.
type auditService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	logger    logger.ILogger
	natsPub   *pktNats.Publisher // nil when NATS is not configured
}

func NewAuditService(
	pubSub *gochannel.GoChannel,
	topicName string,
	sysLogger logger.ILogger,
	natsPub *pktNats.Publisher,
) IAuditService {
	return &auditService{
		pubSub:    pubSub,
		topicName: topicName,
		logger:    sysLogger,
		natsPub:   natsPub,
	}
}

func (as *auditService) Consume(ctx context.Context) error {
	messages, err := as.pubSub.Subscribe(ctx, as.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			as.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (as *auditService) processMessage(ctx context.Context, msg *message.Message) {
	var payload envelope
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal audit event: %v", err)
		msg.Ack() // invalid payloads are never retriable
		return
	}

	as.logger.Info("Audit", payload.Type, payload.Data)

	if as.natsPub != nil {
		evt := events.BaseEvent{
			Type:       payload.Type,
			Data:       payload.Data,
			OccurredAt: payload.OccurredAt,
		}
		if err := as.natsPub.Publish(ctx, evt); err != nil {
			log.Printf("[WARN] Failed to mirror event %s to NATS: %v", payload.Type, err)
		}
	}

	msg.Ack()
}
