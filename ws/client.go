// Package ws is the gorilla/websocket transport for the broker: one
// Client per socket, a read pump feeding the event router serially, and a
// write pump draining a buffered send channel.
package ws

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/imanolof29/chat/broker"
	"github.com/imanolof29/chat/observability"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second
	maxMessageSize = 64 * 1024
	sendBufferSize = 256
)

// Client is one live WebSocket connection. It implements broker.Conn: the
// broker enqueues frames without blocking and the write pump owns all
// writes to the underlying socket.
type Client struct {
	id      string
	conn    *websocket.Conn
	send    chan []byte
	done    chan struct{}
	log     *slog.Logger
	metrics *observability.Collector
}

// NewClient wraps an upgraded connection. metrics may be nil.
func NewClient(conn *websocket.Conn, log *slog.Logger, metrics *observability.Collector) *Client {
	conn.SetReadLimit(maxMessageSize)
	return &Client{
		id:      uuid.NewString(),
		conn:    conn,
		send:    make(chan []byte, sendBufferSize),
		done:    make(chan struct{}),
		log:     log,
		metrics: metrics,
	}
}

func (c *Client) ID() string { return c.id }

// Enqueue hands a frame to the write pump. It never blocks: a closed
// connection or a full send buffer drops the frame and reports false.
func (c *Client) Enqueue(frame []byte) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- frame:
		return true
	default:
		return false
	}
}

// Close signals the write pump to drain pending frames and close the
// socket. Safe to call once; used on the authentication failure path
// where the read pump never starts.
func (c *Client) Close() {
	close(c.done)
}

// ReadPump reads frames until the connection drops and hands each one to
// the router, one event to completion before the next is taken. Cleanup
// runs when the disconnect is observed, regardless of any stale in-flight
// work issued on this connection's behalf.
func (c *Client) ReadPump(ctx context.Context, router *broker.EventRouter) {
	defer func() {
		c.Close()
		router.Disconnect(c)
	}()

	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseNormalClosure,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure) {
				c.log.Warn("unexpected websocket close", "conn", c.id, "err", err)
			}
			return
		}
		c.metrics.FrameRead()
		router.HandleEvent(ctx, c, raw)
	}
}

// WritePump serializes all socket writes: queued frames, keepalive pings,
// and the final close handshake. On shutdown it drains whatever is still
// queued so acknowledgments emitted just before a close are not lost.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case frame := <-c.send:
			if !c.write(websocket.TextMessage, frame) {
				return
			}
		case <-ticker.C:
			if !c.write(websocket.PingMessage, nil) {
				return
			}
		case <-c.done:
			c.drain()
			return
		}
	}
}

func (c *Client) drain() {
	for {
		select {
		case frame := <-c.send:
			if !c.write(websocket.TextMessage, frame) {
				return
			}
		default:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

func (c *Client) write(messageType int, payload []byte) bool {
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteMessage(messageType, payload); err != nil {
		c.log.Debug("websocket write failed", "conn", c.id, "err", err)
		return false
	}
	return true
}
