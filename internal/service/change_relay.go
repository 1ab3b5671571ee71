package service

import (
	"context"

	"notekeeper-be/internal/pkg/logger"
	"notekeeper-be/internal/websocket"
	"notekeeper-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

// ChangeRelay consumes the in-process change topic and delivers each
// payload to the websocket hub for the owner the channel key names.
type ChangeRelay struct {
	subscriber message.Subscriber
	topic      string
	hub        *websocket.Hub
	logger     logger.ILogger
}

func NewChangeRelay(subscriber message.Subscriber, topic string, hub *websocket.Hub, log logger.ILogger) *ChangeRelay {
	return &ChangeRelay{
		subscriber: subscriber,
		topic:      topic,
		hub:        hub,
		logger:     log,
	}
}

// Run blocks until ctx is cancelled or the subscription closes.
func (r *ChangeRelay) Run(ctx context.Context) error {
	messages, err := r.subscriber.Subscribe(ctx, r.topic)
	if err != nil {
		return err
	}

	r.logger.Info("ChangeRelay", "Relay started", map[string]interface{}{"topic": r.topic})

	for msg := range messages {
		channel := msg.Metadata.Get(changeChannelMetadataKey)
		ownerId, err := events.OwnerFromChannel(channel)
		if err != nil {
			r.logger.Warn("ChangeRelay", "Dropping message with bad channel key", map[string]interface{}{
				"channel": channel,
				"error":   err.Error(),
			})
			msg.Ack()
			continue
		}

		r.hub.SendToOwner(ownerId, msg.Payload)
		msg.Ack()
	}

	return nil
}
