package cart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreCreatesEmptyCartTransparently(t *testing.T) {
	s := NewStore(time.Hour)
	id := s.NewSessionID()

	c := s.Get(id)
	require.NotNil(t, c)
	assert.Equal(t, 0, c.Len())

	// Same session, same cart instance.
	c.Add(incenseProduct(), nil, 1)
	assert.Equal(t, 1, s.Get(id).Len())

	// Different session, different cart.
	assert.Equal(t, 0, s.Get(s.NewSessionID()).Len())
}

func TestStoreDropDiscardsCart(t *testing.T) {
	s := NewStore(time.Hour)
	id := s.NewSessionID()
	s.Get(id).Add(incenseProduct(), nil, 2)

	s.Drop(id)
	assert.Equal(t, 0, s.Get(id).Len())
}

func TestStoreEvictsExpiredSessions(t *testing.T) {
	s := NewStore(time.Minute)
	stale := s.NewSessionID()
	s.Get(stale).Add(incenseProduct(), nil, 1)

	evicted := s.evictExpired(time.Now().Add(2 * time.Minute))
	assert.Equal(t, 1, evicted)
	assert.Equal(t, 0, s.Get(stale).Len())
}

func TestCheckoutLockIsStablePerSession(t *testing.T) {
	s := NewStore(time.Hour)
	id := s.NewSessionID()

	first := s.CheckoutLock(id)
	second := s.CheckoutLock(id)
	assert.Same(t, first, second)
}
