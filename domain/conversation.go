package domain

import "time"

// Conversation is the durable record of a chat room. Participants is the
// persistent membership list; who is connected right now lives in the
// broker's presence tracker and the two may diverge.
type Conversation struct {
	ID           RoomID    `json:"id"`
	Participants []UserID  `json:"participants"`
	CreatedAt    time.Time `json:"createdAt"`
}
