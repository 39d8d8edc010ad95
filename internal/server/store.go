package server

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/abhisek/teachteam/internal/session"
)

// ErrNotFound is returned for unknown or expired sessions.
var ErrNotFound = errors.New("session not found")

// ErrConflict is returned when another writer holds the session for too long.
var ErrConflict = errors.New("session is busy")

// Store holds live sessions. Every operation on one session runs with
// exclusive ownership of it.
type Store interface {
	// Create registers a new session.
	Create(ctx context.Context, s *session.Session) error

	// View runs fn against the session without saving changes.
	View(ctx context.Context, id string, fn func(*session.Session) error) error

	// Update runs fn against the session and saves the result. The state is
	// saved even when fn returns an error, since some operations change the
	// session before failing.
	Update(ctx context.Context, id string, fn func(*session.Session) error) error

	// Delete discards the session.
	Delete(ctx context.Context, id string) error

	Close() error
}

type memoryEntry struct {
	mu      sync.Mutex
	s       *session.Session
	expires time.Time
}

// MemoryStore keeps sessions in process memory with a per-session mutex.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*memoryEntry
	ttl      time.Duration
	now      func() time.Time
}

// NewMemoryStore creates a MemoryStore whose sessions expire after ttl of
// inactivity. A zero ttl never expires.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*memoryEntry),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (m *MemoryStore) Create(_ context.Context, s *session.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = &memoryEntry{s: s, expires: m.deadline()}
	return nil
}

func (m *MemoryStore) deadline() time.Time {
	if m.ttl <= 0 {
		return time.Time{}
	}
	return m.now().Add(m.ttl)
}

// entry returns the live entry for id, dropping it if it has expired.
func (m *MemoryStore) entry(id string) (*memoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	if !e.expires.IsZero() && m.now().After(e.expires) {
		delete(m.sessions, id)
		return nil, ErrNotFound
	}
	e.expires = m.deadline()
	return e, nil
}

func (m *MemoryStore) View(_ context.Context, id string, fn func(*session.Session) error) error {
	e, err := m.entry(id)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.s)
}

func (m *MemoryStore) Update(ctx context.Context, id string, fn func(*session.Session) error) error {
	return m.View(ctx, id, fn)
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(m.sessions, id)
	return nil
}

// Sweep drops expired sessions and returns how many were removed.
func (m *MemoryStore) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	n := 0
	for id, e := range m.sessions {
		if !e.expires.IsZero() && now.After(e.expires) {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

// Len returns the number of stored sessions, expired or not.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

func (m *MemoryStore) Close() error { return nil }
