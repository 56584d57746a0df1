// Package broker is the core of the chat server: it tracks live
// connections and room presence, authenticates sessions, routes inbound
// events, relays messages to durable storage, and fans results back out to
// the connections that should see them. It owns no transport; the ws
// package feeds it frames and supplies Conn implementations.
package broker

// Conn is one live client connection as the broker sees it. The handle is
// unique per socket for the socket's lifetime. Enqueue must not block: it
// reports false when the frame was dropped (closed connection or a full
// send buffer), which the broker treats as a delivery gap, not an error.
type Conn interface {
	ID() string
	Enqueue(frame []byte) bool
}
