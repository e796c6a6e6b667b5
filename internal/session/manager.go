package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/faraz1977/ai-visionary/internal/domain"
)

// State is the complete per-session application state: the signed-in
// account, the navigator, and the single edit job, owned by the Manager.
// All mutation goes through the state's mutex.
type State struct {
	mu sync.Mutex

	ID        string
	Account   *domain.Account
	Nav       Navigator
	Job       *domain.EditJob
	Charging  bool
	CreatedAt time.Time
}

// With runs fn while holding the session lock. Handlers and the workflow
// controller use it for every read-modify-write of session state.
func (s *State) With(fn func(*State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s)
}

// Manager owns every live session. Sessions exist only in memory: a
// restart discards all of them, which matches the no-persistence lifecycle
// of the account model.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*State
}

// NewManager returns an empty session registry.
func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*State)}
}

// Login always succeeds: there is no credential validation in scope. It
// creates a session holding the fixed starting account and moves its
// navigator to the dashboard.
func (m *Manager) Login() *State {
	st := &State{
		ID:        uuid.NewString(),
		Account:   domain.NewFreeAccount(),
		Nav:       NewNavigator(),
		CreatedAt: time.Now().UTC(),
	}
	st.Nav.LoginSuccess()

	m.mu.Lock()
	m.sessions[st.ID] = st
	m.mu.Unlock()
	return st
}

// Get returns the session for id.
func (m *Manager) Get(id string) (*State, error) {
	m.mu.RLock()
	st, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, domain.ErrNotFound
	}
	return st, nil
}

// Logout discards the session. The account and any edit job go with it.
func (m *Manager) Logout(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Count reports the number of live sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
