package broker

import (
	"sync"
	"time"

	"github.com/imanolof29/chat/domain"
)

// Session is the authenticated state attached to a connection. It is never
// persisted and dies with the connection.
type Session struct {
	UserID          domain.UserID
	AuthenticatedAt time.Time
}

// SessionTable is a keyed side-table from connection handle to Session.
// Identity is looked up here rather than stored on the transport object.
type SessionTable struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

func NewSessionTable() *SessionTable {
	return &SessionTable{sessions: make(map[string]Session)}
}

func (t *SessionTable) Attach(connID string, user domain.UserID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sessions[connID] = Session{UserID: user, AuthenticatedAt: time.Now()}
}

func (t *SessionTable) Lookup(connID string) (Session, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	session, ok := t.sessions[connID]
	return session, ok
}

func (t *SessionTable) Detach(connID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.sessions, connID)
}
