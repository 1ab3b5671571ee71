package ticket

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicketRedeemsExactlyOnce(t *testing.T) {
	store := NewStore()
	owner := uuid.New()

	ticket, err := store.Issue(owner)
	require.NoError(t, err)
	require.NotEmpty(t, ticket)

	got, ok := store.Redeem(ticket)
	require.True(t, ok)
	assert.Equal(t, owner, got)

	_, ok = store.Redeem(ticket)
	assert.False(t, ok)
}

func TestUnknownTicketDoesNotRedeem(t *testing.T) {
	store := NewStore()

	_, ok := store.Redeem("deadbeef")
	assert.False(t, ok)
}

func TestTicketsAreUnique(t *testing.T) {
	store := NewStore()
	owner := uuid.New()

	a, err := store.Issue(owner)
	require.NoError(t, err)
	b, err := store.Issue(owner)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}
