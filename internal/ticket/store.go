package ticket

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

const ticketTTL = 30 * time.Second

// Store issues short-lived, single-use connect tickets for the
// websocket change feed, so browser clients never put their JWT in a
// query string.
type Store struct {
	cache *cache.Cache
}

func NewStore() *Store {
	return &Store{
		cache: cache.New(ticketTTL, time.Minute),
	}
}

// Issue creates a ticket bound to the owner. It expires after 30s.
func (s *Store) Issue(ownerId uuid.UUID) (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	ticket := hex.EncodeToString(buf)

	s.cache.Set(ticket, ownerId, cache.DefaultExpiration)
	return ticket, nil
}

// Redeem consumes the ticket and returns the owner it was issued to.
// A ticket redeems at most once.
func (s *Store) Redeem(ticket string) (uuid.UUID, bool) {
	v, found := s.cache.Get(ticket)
	if !found {
		return uuid.Nil, false
	}
	s.cache.Delete(ticket)
	return v.(uuid.UUID), true
}
