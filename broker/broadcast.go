package broker

import (
	"log/slog"

	"github.com/imanolof29/chat/domain"
	"github.com/imanolof29/chat/domain/event"
)

// Broadcaster delivers events to the live connections of a room's present
// members, or directly to one user's current connection. Delivery is
// fire-and-forget, at most once: no acknowledgment, no retry, and no
// buffering for recipients without a live connection — durable storage,
// not re-delivery, is the recovery path for absent users.
type Broadcaster struct {
	log      *slog.Logger
	registry *ConnectionRegistry
	presence *RoomPresence
}

func NewBroadcaster(log *slog.Logger, registry *ConnectionRegistry, presence *RoomPresence) *Broadcaster {
	return &Broadcaster{log: log, registry: registry, presence: presence}
}

// ToRoom delivers the event to every live connection of every identity
// currently present in the room, except the optionally excluded ones.
func (b *Broadcaster) ToRoom(room domain.RoomID, name string, payload any, exclude ...domain.UserID) {
	frame, err := event.Encode(name, payload)
	if err != nil {
		b.log.Error("encoding broadcast event", "event", name, "room", room, "err", err)
		return
	}

	excluded := make(map[domain.UserID]struct{}, len(exclude))
	for _, user := range exclude {
		excluded[user] = struct{}{}
	}

	for _, member := range b.presence.MembersOf(room) {
		if _, skip := excluded[member]; skip {
			continue
		}
		conn, ok := b.registry.Lookup(member)
		if !ok {
			// Present in the room but no live connection: a delivery
			// gap, expected and silent.
			continue
		}
		if !conn.Enqueue(frame) {
			b.log.Debug("dropping event for slow connection", "event", name, "room", room, "user", member)
		}
	}
}

// ToUser resolves the identity's current connection and delivers the
// event, reporting whether a live connection existed.
func (b *Broadcaster) ToUser(user domain.UserID, name string, payload any) bool {
	conn, ok := b.registry.Lookup(user)
	if !ok {
		return false
	}
	frame, err := event.Encode(name, payload)
	if err != nil {
		b.log.Error("encoding direct event", "event", name, "user", user, "err", err)
		return false
	}
	if !conn.Enqueue(frame) {
		b.log.Debug("dropping direct event for slow connection", "event", name, "user", user)
	}
	return true
}
