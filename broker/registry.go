package broker

import (
	"sync"

	"github.com/imanolof29/chat/domain"
)

// ConnectionRegistry maps a user identity to its currently active
// connection. Register is last-writer-wins: a new connection from the same
// identity supersedes the prior entry, and the superseded socket is NOT
// closed — it keeps running until its own disconnect. Known limitation: a
// stale socket keeps consuming resources and its eventual disconnect can
// clear a newer registry entry for the same identity.
type ConnectionRegistry struct {
	mu    sync.RWMutex
	conns map[domain.UserID]Conn
}

func NewConnectionRegistry() *ConnectionRegistry {
	return &ConnectionRegistry{conns: make(map[domain.UserID]Conn)}
}

func (r *ConnectionRegistry) Register(user domain.UserID, conn Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[user] = conn
}

// Unregister is idempotent: removing an identity with no entry is a no-op.
func (r *ConnectionRegistry) Unregister(user domain.UserID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.conns, user)
}

func (r *ConnectionRegistry) Lookup(user domain.UserID) (Conn, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	conn, ok := r.conns[user]
	return conn, ok
}
