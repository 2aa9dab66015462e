package session

import "sync"

// Manager maps session IDs to their state, creating zero-valued state on
// first access. Only the map itself is guarded; the returned *State belongs
// to the session's single owner.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*State
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*State),
	}
}

// Get returns the state for a session ID, creating it if absent.
func (m *Manager) Get(sessionID string) *State {
	m.mu.RLock()
	state, exists := m.sessions[sessionID]
	m.mu.RUnlock()
	if exists {
		return state
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Another request may have created it between the two locks.
	if state, exists := m.sessions[sessionID]; exists {
		return state
	}

	state = &State{}
	m.sessions[sessionID] = state
	return state
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
