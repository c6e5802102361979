package workflow

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	usecaseErrors "github.com/johnquangdev/meetscribe/internal/usecase/errors"
)

const cleanupInterval = 10 * time.Minute

// SessionStore keeps sessions in memory with a sliding expiry
type SessionStore struct {
	cache *cache.Cache
}

// NewSessionStore creates a store whose sessions expire after ttl of inactivity
func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		cache: cache.New(ttl, cleanupInterval),
	}
}

// Create registers a fresh session
func (st *SessionStore) Create() *Session {
	s := NewSession(uuid.NewString())
	st.cache.Set(s.id, s, cache.DefaultExpiration)
	return s
}

// Get returns the session and extends its lifetime
func (st *SessionStore) Get(id string) (*Session, error) {
	v, found := st.cache.Get(id)
	if !found {
		return nil, usecaseErrors.ErrSessionNotFound
	}

	s, ok := v.(*Session)
	if !ok {
		return nil, usecaseErrors.ErrSessionNotFound
	}

	st.cache.Set(id, s, cache.DefaultExpiration)
	return s, nil
}

// Delete removes a session
func (st *SessionStore) Delete(id string) error {
	if _, found := st.cache.Get(id); !found {
		return usecaseErrors.ErrSessionNotFound
	}
	st.cache.Delete(id)
	return nil
}

// Count returns the number of live sessions
func (st *SessionStore) Count() int {
	return st.cache.ItemCount()
}
