package state

import (
	"context"
	"sync"
)

// Conversation states. A state makes the next plain-text message the argument of a command.
const (
	None                  = "none"
	WaitingForReading     = "waiting_for_reading"
	WaitingForRemovalDate = "waiting_for_removal_date"
)

// StateManager remembers what the bot asked each user last
type StateManager interface {
	SetUserState(ctx context.Context, userID int64, state string)
	GetUserState(ctx context.Context, userID int64) string
	ClearUserState(ctx context.Context, userID int64)
}

// Manager keeps user states in process memory
type Manager struct {
	userStates map[int64]string
	mu         sync.RWMutex
}

// NewManager creates a new state manager
func NewManager() *Manager {
	return &Manager{
		userStates: make(map[int64]string),
	}
}

// SetUserState sets the state for a user
func (m *Manager) SetUserState(_ context.Context, userID int64, state string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if state == None {
		delete(m.userStates, userID)
		return
	}
	m.userStates[userID] = state
}

// GetUserState gets the state for a user
func (m *Manager) GetUserState(_ context.Context, userID int64) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	state, exists := m.userStates[userID]
	if !exists {
		return None
	}
	return state
}

// ClearUserState clears the state for a user
func (m *Manager) ClearUserState(_ context.Context, userID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.userStates, userID)
}
