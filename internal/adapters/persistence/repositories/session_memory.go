package repositories

import (
	"context"
	"sync"
	"time"

	"willeasy/internal/core/domain"
)

type memorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
}

// NewMemorySessionRepository creates an empty session store
func NewMemorySessionRepository() SessionRepository {
	return &memorySessionRepository{sessions: make(map[string]domain.Session)}
}

// Save stores or replaces a session
func (r *memorySessionRepository) Save(_ context.Context, session *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = *session
	return nil
}

// Get gets a session by ID
func (r *memorySessionRepository) Get(_ context.Context, id string) (*domain.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return &s, nil
}

// Delete removes a session; deleting a missing session is not an error
func (r *memorySessionRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

// DeleteExpired removes every session expired at now and returns how many
func (r *memorySessionRepository) DeleteExpired(_ context.Context, now time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for id, s := range r.sessions {
		if s.IsExpired(now) {
			delete(r.sessions, id)
			n++
		}
	}
	return n, nil
}
