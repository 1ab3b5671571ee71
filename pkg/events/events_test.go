package events

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelRoundTrip(t *testing.T) {
	owner := uuid.New()

	channel := ChannelForOwner(owner)
	assert.Equal(t, "notes-channel."+owner.String(), channel)

	got, err := OwnerFromChannel(channel)
	require.NoError(t, err)
	assert.Equal(t, owner, got)
}

func TestOwnerFromChannelRejectsForeignKeys(t *testing.T) {
	_, err := OwnerFromChannel("orders-channel." + uuid.NewString())
	assert.Error(t, err)

	_, err = OwnerFromChannel("notes-channel.not-a-uuid")
	assert.Error(t, err)
}

type stubPublisher struct {
	calls int
	err   error
}

func (s *stubPublisher) Publish(_ context.Context, _ string, _ []byte) error {
	s.calls++
	return s.err
}

func TestMultiPublisherRunsEveryLeg(t *testing.T) {
	failing := &stubPublisher{err: errors.New("broker down")}
	healthy := &stubPublisher{}

	m := MultiPublisher{failing, healthy}
	err := m.Publish(context.Background(), "notes-channel."+uuid.NewString(), []byte("{}"))

	assert.Equal(t, failing.err, err)
	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, 1, healthy.calls)
}
