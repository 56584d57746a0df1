package broker

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/imanolof29/chat/domain"
)

func TestRoomPresence_JoinIsIdempotent(t *testing.T) {
	req := require.New(t)
	presence := NewRoomPresence()
	room := domain.RoomID("room-1")
	alice := domain.UserID("alice")

	presence.Join(room, alice)
	presence.Join(room, alice)

	req.Equal([]domain.UserID{alice}, presence.MembersOf(room))
}

func TestRoomPresence_LeaveUnknownRoomIsNoop(t *testing.T) {
	req := require.New(t)
	presence := NewRoomPresence()

	presence.Leave("room-ghost", "alice")

	req.Empty(presence.MembersOf("room-ghost"))
}

func TestRoomPresence_LeaveRemovesEmptyRoom(t *testing.T) {
	req := require.New(t)
	presence := NewRoomPresence()
	room := domain.RoomID("room-1")

	presence.Join(room, "alice")
	presence.Join(room, "bob")
	presence.Leave(room, "alice")

	req.Equal([]domain.UserID{"bob"}, presence.MembersOf(room))

	presence.Leave(room, "bob")
	req.Nil(presence.MembersOf(room))
}

func TestRoomPresence_LeaveAll(t *testing.T) {
	req := require.New(t)
	presence := NewRoomPresence()
	alice := domain.UserID("alice")

	presence.Join("room-1", alice)
	presence.Join("room-2", alice)
	presence.Join("room-2", "bob")
	presence.Join("room-3", "bob")

	left := presence.LeaveAll(alice)

	req.ElementsMatch([]domain.RoomID{"room-1", "room-2"}, left)
	req.Nil(presence.MembersOf("room-1"))
	req.Equal([]domain.UserID{"bob"}, presence.MembersOf("room-2"))
	req.Equal([]domain.UserID{"bob"}, presence.MembersOf("room-3"))

	// A second sweep finds nothing.
	req.Empty(presence.LeaveAll(alice))
}
