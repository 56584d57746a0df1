package broker

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/imanolof29/chat/domain/event"
)

// fakeConn records every enqueued frame so tests can assert on the exact
// events a connection would receive.
type fakeConn struct {
	id     string
	mu     sync.Mutex
	frames [][]byte
	full   bool
}

func newFakeConn(id string) *fakeConn {
	return &fakeConn{id: id}
}

func (c *fakeConn) ID() string { return c.id }

func (c *fakeConn) Enqueue(frame []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.full {
		return false
	}
	c.frames = append(c.frames, frame)
	return true
}

// events decodes every recorded frame into envelopes.
func (c *fakeConn) events(t *testing.T) []event.Envelope {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]event.Envelope, 0, len(c.frames))
	for _, frame := range c.frames {
		env, err := event.Decode(frame)
		require.NoError(t, err)
		out = append(out, env)
	}
	return out
}

// eventNames lists the recorded event names in order.
func (c *fakeConn) eventNames(t *testing.T) []string {
	t.Helper()
	envelopes := c.events(t)
	names := make([]string, 0, len(envelopes))
	for _, env := range envelopes {
		names = append(names, env.Event)
	}
	return names
}

// lastPayload decodes the most recent frame's payload into dst.
func (c *fakeConn) lastPayload(t *testing.T, dst any) string {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	require.NotEmpty(t, c.frames)
	env, err := event.Decode(c.frames[len(c.frames)-1])
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(env.Data, dst))
	return env.Event
}

func (c *fakeConn) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frames = nil
}
