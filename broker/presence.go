package broker

import (
	"sync"

	"github.com/imanolof29/chat/domain"
)

type memberSet map[domain.UserID]struct{}

// RoomPresence tracks which identities are live in which room right now.
// It is in-memory and process-local, entirely distinct from the durable
// participant list stored with a conversation: a participant need not be
// present, and the two may diverge freely.
type RoomPresence struct {
	mu    sync.RWMutex
	rooms map[domain.RoomID]memberSet
}

func NewRoomPresence() *RoomPresence {
	return &RoomPresence{rooms: make(map[domain.RoomID]memberSet)}
}

// Join adds the identity to the room's presence set, creating the set on
// first join. Joining a room already joined is idempotent.
func (p *RoomPresence) Join(room domain.RoomID, user domain.UserID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.rooms[room]; !ok {
		p.rooms[room] = make(memberSet)
	}
	p.rooms[room][user] = struct{}{}
}

// Leave removes the identity from the room. Leaving a room not joined is a
// no-op. Empty sets are removed entirely so abandoned rooms do not leak.
func (p *RoomPresence) Leave(room domain.RoomID, user domain.UserID) {
	p.mu.Lock()
	defer p.mu.Unlock()
	members, ok := p.rooms[room]
	if !ok {
		return
	}
	delete(members, user)
	if len(members) == 0 {
		delete(p.rooms, room)
	}
}

// MembersOf returns the identities currently present in the room.
func (p *RoomPresence) MembersOf(room domain.RoomID) []domain.UserID {
	p.mu.RLock()
	defer p.mu.RUnlock()
	members, ok := p.rooms[room]
	if !ok {
		return nil
	}
	out := make([]domain.UserID, 0, len(members))
	for user := range members {
		out = append(out, user)
	}
	return out
}

// LeaveAll removes the identity from every room it is present in and
// returns each affected room exactly once, so the caller can notify each
// room's remaining members once per room. Used on disconnect.
func (p *RoomPresence) LeaveAll(user domain.UserID) []domain.RoomID {
	p.mu.Lock()
	defer p.mu.Unlock()
	var left []domain.RoomID
	for room, members := range p.rooms {
		if _, ok := members[user]; !ok {
			continue
		}
		delete(members, user)
		if len(members) == 0 {
			delete(p.rooms, room)
		}
		left = append(left, room)
	}
	return left
}
