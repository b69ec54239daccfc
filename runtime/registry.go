package runtime

import (
	"direct-chat/contract"
	"sort"
	"sync"

	"github.com/google/uuid"
)

type connections map[contract.ConnectionID]contract.EventSink

// Registry maps each online user to the sinks of their live connections.
// Readers get a copy, so delivery never happens under the lock.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]connections // map user -> connection -> sink
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]connections)}
}

// Register adds a live connection for userID and returns its id.
// The same user can register from several devices.
func (r *Registry) Register(userID string, sink contract.EventSink) contract.ConnectionID {
	connID := contract.ConnectionID(uuid.NewString())

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[userID]; !ok {
		r.sessions[userID] = make(connections)
	}
	r.sessions[userID][connID] = sink
	return connID
}

// Unregister drops one connection. The user entry goes away with its last
// connection so the map doesn't grow with users who left.
func (r *Registry) Unregister(userID string, connID contract.ConnectionID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	conns, ok := r.sessions[userID]
	if !ok {
		return
	}
	delete(conns, connID)
	if len(conns) == 0 {
		delete(r.sessions, userID)
	}
}

// UnregisterUser drops every connection of userID at once.
func (r *Registry) UnregisterUser(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, userID)
}

// SinksFor returns a snapshot of the user's sinks, nil when offline.
func (r *Registry) SinksFor(userID string) []contract.EventSink {
	r.mu.RLock()
	defer r.mu.RUnlock()

	conns, ok := r.sessions[userID]
	if !ok {
		return nil
	}
	sinks := make([]contract.EventSink, 0, len(conns))
	for _, sink := range conns {
		sinks = append(sinks, sink)
	}
	return sinks
}

func (r *Registry) OnlineUsers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]string, 0, len(r.sessions))
	for userID := range r.sessions {
		users = append(users, userID)
	}
	sort.Strings(users)
	return users
}

func (r *Registry) ConnectionCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, conns := range r.sessions {
		count += len(conns)
	}
	return count
}
