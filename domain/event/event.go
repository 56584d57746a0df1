// Package event defines the JSON wire protocol spoken over a chat
// connection: a small envelope carrying a named event and its payload.
package event

import (
	"encoding/json"

	"github.com/imanolof29/chat/domain"
)

// Client to server event names.
const (
	JoinRoom    = "join-room"
	LeaveRoom   = "leave-room"
	SendMessage = "send-message"
	Typing      = "typing"
)

// Server to client event names.
const (
	Connected   = "connected"
	Error       = "error"
	JoinedRoom  = "joined-room"
	UserJoined  = "user-joined"
	RoomHistory = "room-history"
	LeftRoom    = "left-room"
	UserLeft    = "user-left"
	NewMessage  = "new-message"
	MessageSent = "message-sent"
	UserTyping  = "user-typing"
)

// Envelope is the frame exchanged in both directions. Data stays raw on
// the inbound path so each handler decodes only its own payload shape.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// Decode parses a raw frame into an Envelope.
func Decode(raw []byte) (Envelope, error) {
	var env Envelope
	err := json.Unmarshal(raw, &env)
	return env, err
}

// Encode frames an outbound event with its payload.
func Encode(name string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Event: name, Data: data})
}

// Inbound payloads.

type JoinRoomPayload struct {
	RoomID domain.RoomID `json:"roomId"`
}

type LeaveRoomPayload struct {
	RoomID domain.RoomID `json:"roomId"`
}

type SendMessagePayload struct {
	RoomID  domain.RoomID `json:"roomId"`
	Content string        `json:"content"`
}

type TypingPayload struct {
	RoomID   domain.RoomID `json:"roomId"`
	IsTyping bool          `json:"isTyping"`
}

// Outbound payloads.

type ConnectedPayload struct {
	UserID  domain.UserID `json:"userId"`
	Message string        `json:"message,omitempty"`
}

// ErrorPayload names the originating event when the failure is scoped to a
// single inbound event; connection level failures leave Event empty.
type ErrorPayload struct {
	Event   string `json:"event,omitempty"`
	Message string `json:"message"`
}

type JoinedRoomPayload struct {
	RoomID  domain.RoomID `json:"roomId"`
	Message string        `json:"message,omitempty"`
}

type UserJoinedPayload struct {
	UserID domain.UserID `json:"userId"`
	RoomID domain.RoomID `json:"roomId"`
}

type RoomHistoryPayload struct {
	RoomID   domain.RoomID    `json:"roomId"`
	Messages []domain.Message `json:"messages"`
}

type LeftRoomPayload struct {
	RoomID domain.RoomID `json:"roomId"`
}

type UserLeftPayload struct {
	UserID domain.UserID `json:"userId"`
	RoomID domain.RoomID `json:"roomId"`
}

type NewMessagePayload struct {
	Message domain.Message `json:"message"`
	RoomID  domain.RoomID  `json:"roomId"`
}

type MessageSentPayload struct {
	MessageID string `json:"messageId"`
	Timestamp string `json:"timestamp"`
}

type UserTypingPayload struct {
	UserID   domain.UserID `json:"userId"`
	RoomID   domain.RoomID `json:"roomId"`
	IsTyping bool          `json:"isTyping"`
}
