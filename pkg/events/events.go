package events

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ChangePublisher is the fire-and-forget publishing contract the note
// service depends on. The transport behind it is interchangeable.
type ChangePublisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

const channelPrefix = "notes-channel."

// ChannelForOwner returns the per-owner broadcast channel key.
func ChannelForOwner(ownerId uuid.UUID) string {
	return channelPrefix + ownerId.String()
}

// OwnerFromChannel recovers the owner id from a channel key.
func OwnerFromChannel(channel string) (uuid.UUID, error) {
	if !strings.HasPrefix(channel, channelPrefix) {
		return uuid.Nil, fmt.Errorf("not a notes channel: %s", channel)
	}
	return uuid.Parse(strings.TrimPrefix(channel, channelPrefix))
}

// DeletedPayload is what a delete publishes: the owner only, no item
// detail.
type DeletedPayload struct {
	OwnerId uuid.UUID `json:"owner_id"`
}

// MultiPublisher fans a change out to every configured transport. The
// first failure is returned, the remaining publishers still run.
type MultiPublisher []ChangePublisher

func (m MultiPublisher) Publish(ctx context.Context, channel string, payload []byte) error {
	var firstErr error
	for _, p := range m {
		if err := p.Publish(ctx, channel, payload); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
