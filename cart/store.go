package cart

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store maps opaque session identifiers to carts. An absent session yields a
// fresh empty cart transparently; expired sessions are evicted by the janitor.
type Store struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]*session
}

type session struct {
	cart      *Cart
	checkout  sync.Mutex
	expiresAt time.Time
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:      ttl,
		sessions: make(map[string]*session),
	}
}

// NewSessionID issues an opaque identifier for the session cookie.
func (s *Store) NewSessionID() string {
	return uuid.NewString()
}

// Get returns the session's cart, creating an empty one when absent, and
// refreshes the session's expiry.
func (s *Store) Get(sessionID string) *Cart {
	sess := s.touch(sessionID)
	return sess.cart
}

// CheckoutLock returns the mutex serializing checkout submissions for one
// session. Holding it across read-cart, order creation and clear means a
// double submit observes the already-cleared cart instead of duplicating the
// order.
func (s *Store) CheckoutLock(sessionID string) *sync.Mutex {
	sess := s.touch(sessionID)
	return &sess.checkout
}

func (s *Store) touch(sessionID string) *session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		sess = &session{cart: New()}
		s.sessions[sessionID] = sess
	}
	sess.expiresAt = time.Now().Add(s.ttl)
	return sess
}

// Drop removes a session outright.
func (s *Store) Drop(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

// Janitor evicts expired sessions on a fixed interval. Run it as a goroutine
// from main.
func (s *Store) Janitor(interval time.Duration) {
	for {
		time.Sleep(interval)
		if n := s.evictExpired(time.Now()); n > 0 {
			log.Printf("🗑️ Evicted %d expired cart sessions", n)
		}
	}
}

func (s *Store) evictExpired(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, sess := range s.sessions {
		if sess.expiresAt.Before(now) {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}
