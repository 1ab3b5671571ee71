package service

import (
	"context"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

const changeChannelMetadataKey = "channel"

// PublisherService is the in-process leg of the change feed: it puts
// change payloads on a watermill topic that the ChangeRelay consumes
// and hands to the websocket hub. The per-owner channel key travels in
// the message metadata.
type PublisherService struct {
	topic     string
	publisher message.Publisher
}

func NewPublisherService(topic string, publisher message.Publisher) *PublisherService {
	return &PublisherService{
		topic:     topic,
		publisher: publisher,
	}
}

func (s *PublisherService) Publish(ctx context.Context, channel string, payload []byte) error {
	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.Metadata.Set(changeChannelMetadataKey, channel)
	msg.SetContext(ctx)

	return s.publisher.Publish(s.topic, msg)
}
