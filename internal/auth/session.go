package auth

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jishinalert/dashboard/internal/models"
)

// Session is one logged-in admin.
type Session struct {
	Token       string
	UserID      string
	Email       string
	DisplayName string
	ExpiresAt   time.Time
}

// Sessions is an in-memory session registry. Sessions expire after the
// configured TTL; expired entries are reaped lazily on lookup.
type Sessions struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]Session
	now      func() time.Time
}

// NewSessions builds a registry with the given TTL.
func NewSessions(ttl time.Duration) *Sessions {
	return &Sessions{
		ttl:      ttl,
		sessions: make(map[string]Session),
		now:      time.Now,
	}
}

// Create issues a session for the admin and returns its opaque token.
func (s *Sessions) Create(admin models.AdminRecord) Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := Session{
		Token:       uuid.NewString(),
		UserID:      admin.UserID,
		Email:       admin.Email,
		DisplayName: admin.DisplayName,
		ExpiresAt:   s.now().Add(s.ttl),
	}
	s.sessions[sess.Token] = sess
	return sess
}

// Lookup resolves a token to its session. Expired sessions are removed
// and report as absent.
func (s *Sessions) Lookup(token string) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	if !ok {
		return Session{}, false
	}
	if s.now().After(sess.ExpiresAt) {
		delete(s.sessions, token)
		return Session{}, false
	}
	return sess, true
}

// Destroy removes a session. Unknown tokens are a no-op.
func (s *Sessions) Destroy(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
}
