// Package domain contains core concepts of the chat system.
// This file defines Message events and related rules.
// Messages are immutable and validated by the domain.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// RoomID identifies a conversation channel. Live presence in a room is
// tracked by the broker and is distinct from the durable participant list
// stored alongside the Conversation.
type RoomID string

// UserID is the authenticated subject associated with a connection.
type UserID string

// Message represents an immutable chat event. ID and CreatedAt are
// assigned by the message store on append.
type Message struct {
	ID        uuid.UUID `json:"id"`
	Room      RoomID    `json:"roomId"`
	SenderID  UserID    `json:"senderId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}
