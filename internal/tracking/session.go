package tracking

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"time"
)

// Storage keys for identity values.
const (
	sessionIDKey = "np_session_id"
	userIDKey    = "np_user_id"
)

// randomSuffixBytes is the entropy appended to the session ID.
const randomSuffixBytes = 6

// Session holds the visitor identity. The session ID lives in session-scoped
// storage and is generated once per tab lifetime; the user ID, when present,
// comes from persistent storage and survives across sessions.
type Session struct {
	sessionStore    Storage
	persistentStore Storage
	now             func() time.Time
}

// NewSession creates a Session over the given stores.
func NewSession(sessionStore, persistentStore Storage) *Session {
	return &Session{
		sessionStore:    sessionStore,
		persistentStore: persistentStore,
		now:             time.Now,
	}
}

// SessionID returns the session identifier, generating and storing it on
// first use.
func (s *Session) SessionID() string {
	if id, ok := s.sessionStore.Get(sessionIDKey); ok && id != "" {
		return id
	}

	id := strconv.FormatInt(s.now().UnixMilli(), 10) + "-" + randomSuffix()
	s.sessionStore.Set(sessionIDKey, id)
	return id
}

// UserID returns the persistent user identifier, or "" when the visitor is
// anonymous.
func (s *Session) UserID() string {
	id, _ := s.persistentStore.Get(userIDKey)
	return id
}

// SetUserID stores a user identifier in persistent storage.
func (s *Session) SetUserID(id string) {
	s.persistentStore.Set(userIDKey, id)
}

// randomSuffix returns a short random hex string.
func randomSuffix() string {
	b := make([]byte, randomSuffixBytes)
	if _, err := rand.Read(b); err != nil {
		// Timestamp-only IDs still work; collisions are tolerable here.
		return "0"
	}
	return hex.EncodeToString(b)
}
