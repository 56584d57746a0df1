package broker

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/imanolof29/chat/domain"
)

func TestConnectionRegistry_RegisterAndLookup(t *testing.T) {
	req := require.New(t)
	registry := NewConnectionRegistry()
	alice := domain.UserID("alice")

	_, ok := registry.Lookup(alice)
	req.False(ok)

	conn := newFakeConn("conn-1")
	registry.Register(alice, conn)

	found, ok := registry.Lookup(alice)
	req.True(ok)
	req.Equal("conn-1", found.ID())
}

func TestConnectionRegistry_LastWriterWins(t *testing.T) {
	req := require.New(t)
	registry := NewConnectionRegistry()
	alice := domain.UserID("alice")

	stale := newFakeConn("conn-stale")
	fresh := newFakeConn("conn-fresh")

	registry.Register(alice, stale)
	registry.Register(alice, fresh)

	found, ok := registry.Lookup(alice)
	req.True(ok)
	req.Equal("conn-fresh", found.ID())

	// The superseded connection is not closed; it was simply replaced.
	req.True(stale.Enqueue([]byte(`{}`)))
}

func TestConnectionRegistry_UnregisterIsIdempotent(t *testing.T) {
	req := require.New(t)
	registry := NewConnectionRegistry()
	alice := domain.UserID("alice")

	registry.Register(alice, newFakeConn("conn-1"))
	registry.Unregister(alice)
	registry.Unregister(alice)

	_, ok := registry.Lookup(alice)
	req.False(ok)
}
