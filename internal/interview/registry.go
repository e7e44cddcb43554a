package interview

import (
	"sync"

	"github.com/google/uuid"
)

// Registry maps interview identifiers to live sessions, scoped by the
// authenticated user so tenants never see each other's sessions. One
// session per user may be marked active.
type Registry struct {
	mu       sync.Mutex
	sessions map[int64]map[string]*Session
	active   map[int64]string
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[int64]map[string]*Session),
		active:   make(map[int64]string),
	}
}

// Create constructs a fresh session in stage setup with empty history and
// unset start time, registers it and marks it active
func (r *Registry) Create(userID int64) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := newSession(uuid.NewString(), userID)

	if r.sessions[userID] == nil {
		r.sessions[userID] = make(map[string]*Session)
	}
	r.sessions[userID][s.ID] = s
	r.active[userID] = s.ID

	return s
}

// Delete removes a session. Unknown ids are a no-op; deleting the active
// session clears the active pointer.
func (r *Registry) Delete(userID int64, id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions[userID], id)
	if r.active[userID] == id {
		delete(r.active, userID)
	}
}

// Get returns the session with the given id, or nil if unknown
func (r *Registry) Get(userID int64, id string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.sessions[userID][id]
}

// GetActive returns the user's active session. A cleared or dangling
// active pointer yields nil.
func (r *Registry) GetActive(userID int64) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.active[userID]
	if !ok {
		return nil
	}
	return r.sessions[userID][id]
}

// SetActive marks the given session id active for the user
func (r *Registry) SetActive(userID int64, id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[userID][id]; ok {
		r.active[userID] = id
	}
}

// List returns all of the user's sessions
func (r *Registry) List(userID int64) []*Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*Session, 0, len(r.sessions[userID]))
	for _, s := range r.sessions[userID] {
		out = append(out, s)
	}
	return out
}
