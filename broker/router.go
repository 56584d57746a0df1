package broker

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/imanolof29/chat/domain"
	"github.com/imanolof29/chat/domain/event"
	chaterrors "github.com/imanolof29/chat/errors"
)

// EventRouter dispatches inbound client events. Each connection moves
// through unauthenticated -> authenticated -> disconnected; before a
// session exists, every event other than the implicit connect step is
// dropped. All handler failures are translated here into a sender-scoped
// error event — the only failure allowed to end a connection is the
// initial authentication failure.
type EventRouter struct {
	log           *slog.Logger
	authenticator *Authenticator
	sessions      *SessionTable
	registry      *ConnectionRegistry
	presence      *RoomPresence
	relay         *MessageRelay
	broadcast     *Broadcaster
	historyLimit  int

	// Per-room send locks. Room members must observe new-message events in
	// the same order the store timestamped them, so the append and its
	// fan-out are serialized per room. Distinct from the membership and
	// registry locks: neither of those is held across a store call.
	sendMu    sync.Mutex
	sendLocks map[domain.RoomID]*sync.Mutex
}

func NewEventRouter(log *slog.Logger, authenticator *Authenticator,
	sessions *SessionTable, registry *ConnectionRegistry, presence *RoomPresence,
	relay *MessageRelay, broadcast *Broadcaster, historyLimit int) *EventRouter {
	return &EventRouter{
		log:           log,
		authenticator: authenticator,
		sessions:      sessions,
		registry:      registry,
		presence:      presence,
		relay:         relay,
		broadcast:     broadcast,
		historyLimit:  historyLimit,
		sendLocks:     make(map[domain.RoomID]*sync.Mutex),
	}
}

func (r *EventRouter) sendLock(room domain.RoomID) *sync.Mutex {
	r.sendMu.Lock()
	defer r.sendMu.Unlock()
	lock, ok := r.sendLocks[room]
	if !ok {
		lock = &sync.Mutex{}
		r.sendLocks[room] = lock
	}
	return lock
}

// Connect authenticates the connection's credential, attaches the session,
// registers the connection, and acknowledges with a connected event. On
// failure the error event has already been emitted; the caller must close
// the connection and accept nothing further from it.
func (r *EventRouter) Connect(_ context.Context, conn Conn, credential string) (domain.UserID, error) {
	userID, err := r.authenticator.Authenticate(credential)
	if err != nil {
		r.log.Warn("connection rejected", "conn", conn.ID(), "err", err)
		message := chaterrors.ErrInvalidCredential.Error()
		if errors.Is(err, chaterrors.ErrMissingCredential) {
			message = chaterrors.ErrMissingCredential.Error()
		}
		r.emit(conn, event.Error, event.ErrorPayload{Message: message})
		return "", err
	}

	r.sessions.Attach(conn.ID(), userID)
	r.registry.Register(userID, conn)
	r.log.Info("user connected", "user", userID, "conn", conn.ID())
	r.emit(conn, event.Connected, event.ConnectedPayload{
		UserID:  userID,
		Message: "Successfully connected to chat",
	})
	return userID, nil
}

// HandleEvent processes one inbound frame to completion. The transport
// calls it serially per connection, so a single connection's event stream
// is strictly ordered; across connections handlers run concurrently.
func (r *EventRouter) HandleEvent(ctx context.Context, conn Conn, raw []byte) {
	defer func() {
		if rec := recover(); rec != nil {
			// A handler must never tear down the connection.
			r.log.Error("recovered panic in event handler", "conn", conn.ID(), "panic", rec)
		}
	}()

	env, err := event.Decode(raw)
	if err != nil {
		r.log.Warn("malformed frame", "conn", conn.ID(), "err", err)
		return
	}

	session, ok := r.sessions.Lookup(conn.ID())
	if !ok {
		// Protocol violation, not a hard failure: the event is dropped
		// and nothing reaches the client. The connection survives.
		r.log.Warn("event before authentication, dropping", "conn", conn.ID(), "event", env.Event)
		return
	}

	switch env.Event {
	case event.JoinRoom:
		r.handleJoin(ctx, conn, session.UserID, env.Data)
	case event.LeaveRoom:
		r.handleLeave(conn, session.UserID, env.Data)
	case event.SendMessage:
		r.handleSend(ctx, conn, session.UserID, env.Data)
	case event.Typing:
		r.handleTyping(session.UserID, env.Data)
	default:
		r.emitError(conn, env.Event, "unknown event")
	}
}

// Disconnect reconciles registry and presence state once the transport
// observes the connection closing. Each room the user was present in gets
// exactly one user-left notification.
func (r *EventRouter) Disconnect(conn Conn) {
	session, ok := r.sessions.Lookup(conn.ID())
	if !ok {
		return
	}
	r.sessions.Detach(conn.ID())

	rooms := r.presence.LeaveAll(session.UserID)
	for _, room := range rooms {
		r.broadcast.ToRoom(room, event.UserLeft, event.UserLeftPayload{
			UserID: session.UserID,
			RoomID: room,
		})
	}

	r.registry.Unregister(session.UserID)
	r.log.Info("user disconnected", "user", session.UserID, "rooms", len(rooms))
}

func (r *EventRouter) handleJoin(ctx context.Context, conn Conn, user domain.UserID, data json.RawMessage) {
	var payload event.JoinRoomPayload
	if err := json.Unmarshal(data, &payload); err != nil || payload.RoomID == "" {
		r.emitError(conn, event.JoinRoom, "roomId is required")
		return
	}
	room := payload.RoomID

	// Idempotent: a repeat join still re-acknowledges and replays history.
	r.presence.Join(room, user)
	r.log.Info("user joined room", "user", user, "room", room)

	r.emit(conn, event.JoinedRoom, event.JoinedRoomPayload{
		RoomID:  room,
		Message: "Successfully joined chat",
	})
	r.broadcast.ToRoom(room, event.UserJoined, event.UserJoinedPayload{UserID: user, RoomID: room}, user)

	messages, err := r.relay.RecentHistory(ctx, room, r.historyLimit)
	if err != nil {
		r.log.Error("loading room history", "user", user, "room", room, "err", err)
		r.emitError(conn, event.JoinRoom, "could not load room history")
		return
	}
	if messages == nil {
		// An empty history replays as [], never null.
		messages = []domain.Message{}
	}
	r.emit(conn, event.RoomHistory, event.RoomHistoryPayload{RoomID: room, Messages: messages})
}

func (r *EventRouter) handleLeave(conn Conn, user domain.UserID, data json.RawMessage) {
	var payload event.LeaveRoomPayload
	if err := json.Unmarshal(data, &payload); err != nil || payload.RoomID == "" {
		r.emitError(conn, event.LeaveRoom, "roomId is required")
		return
	}
	room := payload.RoomID

	r.presence.Leave(room, user)
	r.log.Info("user left room", "user", user, "room", room)

	r.emit(conn, event.LeftRoom, event.LeftRoomPayload{RoomID: room})
	r.broadcast.ToRoom(room, event.UserLeft, event.UserLeftPayload{UserID: user, RoomID: room}, user)
}

func (r *EventRouter) handleSend(ctx context.Context, conn Conn, user domain.UserID, data json.RawMessage) {
	var payload event.SendMessagePayload
	if err := json.Unmarshal(data, &payload); err != nil || payload.RoomID == "" || payload.Content == "" {
		r.emitError(conn, event.SendMessage, "roomId and content are required")
		return
	}

	// Held across the append and the fan-out: two concurrent sends to the
	// same room broadcast in store order.
	lock := r.sendLock(payload.RoomID)
	lock.Lock()
	message, err := r.relay.Send(ctx, user, payload.RoomID, payload.Content)
	if err != nil {
		lock.Unlock()
		r.log.Error("relaying message", "user", user, "room", payload.RoomID, "err", err)
		r.emitError(conn, event.SendMessage, relayErrorMessage(err))
		return
	}

	r.broadcast.ToRoom(payload.RoomID, event.NewMessage, event.NewMessagePayload{
		Message: message,
		RoomID:  payload.RoomID,
	})
	lock.Unlock()
	r.emit(conn, event.MessageSent, event.MessageSentPayload{
		MessageID: message.ID.String(),
		Timestamp: message.CreatedAt.Format(time.RFC3339Nano),
	})
	r.log.Info("message sent", "user", user, "room", payload.RoomID, "message", message.ID)
}

// handleTyping is fire-and-forget: no acknowledgment, no persistence, no
// membership validation, and the sender never sees its own indicator.
func (r *EventRouter) handleTyping(user domain.UserID, data json.RawMessage) {
	var payload event.TypingPayload
	if err := json.Unmarshal(data, &payload); err != nil || payload.RoomID == "" {
		return
	}
	r.broadcast.ToRoom(payload.RoomID, event.UserTyping, event.UserTypingPayload{
		UserID:   user,
		RoomID:   payload.RoomID,
		IsTyping: payload.IsTyping,
	}, user)
}

// relayErrorMessage keeps wire-visible messages to the known validation
// texts; unexpected store failures stay generic.
func relayErrorMessage(err error) string {
	switch {
	case errors.Is(err, chaterrors.ErrRoomNotFound):
		return chaterrors.ErrRoomNotFound.Error()
	case errors.Is(err, chaterrors.ErrUserNotFound):
		return chaterrors.ErrUserNotFound.Error()
	default:
		return "could not send message"
	}
}

func (r *EventRouter) emit(conn Conn, name string, payload any) {
	frame, err := event.Encode(name, payload)
	if err != nil {
		r.log.Error("encoding event", "event", name, "err", err)
		return
	}
	if !conn.Enqueue(frame) {
		r.log.Debug("dropping event for slow connection", "event", name, "conn", conn.ID())
	}
}

func (r *EventRouter) emitError(conn Conn, originating, message string) {
	r.emit(conn, event.Error, event.ErrorPayload{Event: originating, Message: message})
}
