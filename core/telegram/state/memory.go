package state

import (
	"context"
	"sync"
	"time"

	"funbot/core/logger"

	"log/slog"
)

type memoryStore struct {
	mu       sync.RWMutex
	sessions map[int64]Session
	ttl      time.Duration
	now      func() time.Time
}

// NewMemoryStore constructs an in-memory Store. Sessions idle longer
// than ttl are dropped by Sweep; ttl <= 0 disables eviction.
func NewMemoryStore(ttl time.Duration) Store {
	return &memoryStore{
		sessions: make(map[int64]Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get returns the session for a user, or a fresh Idle session if none exists.
func (m *memoryStore) Get(userID int64) Session {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if s, ok := m.sessions[userID]; ok {
		return s
	}
	return Session{State: Idle, LastSeen: m.now()}
}

// Save stores the session for a user and refreshes its activity timestamp.
func (m *memoryStore) Save(userID int64, s Session) {
	s.LastSeen = m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[userID] = s
}

// Reset removes the session for a user, returning them to Idle with no data.
func (m *memoryStore) Reset(userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}

// InProgress reports whether the user is mid-conversation.
func (m *memoryStore) InProgress(userID int64) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[userID]
	return ok && s.State != Idle
}

// Len returns the number of tracked sessions.
func (m *memoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep evicts sessions idle longer than the configured TTL and returns
// how many were removed.
func (m *memoryStore) Sweep() int {
	if m.ttl <= 0 {
		return 0
	}
	cutoff := m.now().Add(-m.ttl)
	m.mu.Lock()
	defer m.mu.Unlock()
	evicted := 0
	for id, s := range m.sessions {
		if s.LastSeen.Before(cutoff) {
			delete(m.sessions, id)
			evicted++
		}
	}
	return evicted
}

// RunSweeper periodically evicts expired sessions until ctx is done.
func RunSweeper(ctx context.Context, store Store, interval time.Duration) {
	sweeper, ok := store.(interface{ Sweep() int })
	if !ok || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := sweeper.Sweep(); n > 0 {
				logger.Debug(ctx, "tg", "session.sweep",
					slog.String("status", "ok"),
					slog.Int("count", n),
					slog.Int("remaining", store.Len()),
				)
			}
		}
	}
}
