package session

import (
	"context"
	"sync"
	"time"

	"teabloom-be/internal/cart"
	"teabloom-be/internal/identity"

	"github.com/google/uuid"
)

const sweepInterval = time.Minute

// entry holds the session and the last time it was seen.
type entry struct {
	session  *Session
	lastSeen time.Time
}

// Manager keeps sessions in memory with an idle TTL. Expired sessions are
// swept away together with their carts.
type Manager struct {
	ttl time.Duration

	mu       sync.Mutex
	sessions map[string]*entry
	now      func() time.Time
}

func NewManager(ttl time.Duration) *Manager {
	return &Manager{
		ttl:      ttl,
		sessions: make(map[string]*entry),
		now:      time.Now,
	}
}

// GetOrCreate returns the session for id, creating a fresh guest session
// when id is unknown or empty. The returned id is the one to hand back to
// the client.
func (m *Manager) GetOrCreate(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id != "" {
		if e, ok := m.sessions[id]; ok {
			e.lastSeen = m.now()
			return e.session
		}
	}

	sess := &Session{
		ID:       uuid.New().String(),
		Identity: identity.Guest(),
		Cart:     cart.New(),
	}
	m.sessions[sess.ID] = &entry{session: sess, lastSeen: m.now()}

	return sess
}

// Get returns an existing session without creating one.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = m.now()
	return e.session, true
}

func (m *Manager) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// ForEachCart calls fn with every live session's cart. Used by the
// realtime reconciler to push product updates into open carts.
func (m *Manager) ForEachCart(fn func(*cart.Cart)) {
	m.mu.Lock()
	carts := make([]*cart.Cart, 0, len(m.sessions))
	for _, e := range m.sessions {
		carts = append(carts, e.session.Cart)
	}
	m.mu.Unlock()

	for _, c := range carts {
		fn(c)
	}
}

// Run sweeps idle sessions until ctx is cancelled.
func (m *Manager) Run(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.sweep()
		case <-ctx.Done():
			return
		}
	}
}

func (m *Manager) sweep() {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-m.ttl)
	for id, e := range m.sessions {
		if e.lastSeen.Before(cutoff) {
			delete(m.sessions, id)
		}
	}
}
