//go:generate go run go.uber.org/mock/mockgen -source=relay.go -destination=../mocks/mock_relay_stores.go -package=mocks
package broker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/imanolof29/chat/domain"
	chaterrors "github.com/imanolof29/chat/errors"
)

// ConversationStore is the durable conversation lookup the relay validates
// against.
type ConversationStore interface {
	Exists(ctx context.Context, room domain.RoomID) (bool, error)
}

// AccountStore resolves whether a sender identity maps to a known account.
type AccountStore interface {
	Exists(ctx context.Context, user domain.UserID) (bool, error)
}

// MessageStore appends messages durably and reads recent history. Append
// assigns the message identity and creation timestamp.
type MessageStore interface {
	Append(ctx context.Context, room domain.RoomID, sender domain.UserID, content string) (domain.Message, error)
	Recent(ctx context.Context, room domain.RoomID, limit int) ([]domain.Message, error)
}

// ContentFilter rewrites message content before it is persisted.
// Implemented by moderation.Moderator.
type ContentFilter interface {
	Censor(content string) string
}

// MessageRelay is the validate-then-persist pipeline for a single message
// send. It holds no broker lock while store calls are in flight; a hung
// store call stalls only the issuing connection's own event stream.
type MessageRelay struct {
	log           *slog.Logger
	conversations ConversationStore
	accounts      AccountStore
	messages      MessageStore
	filter        ContentFilter
}

// NewMessageRelay wires the relay. filter may be nil when moderation is
// not configured.
func NewMessageRelay(log *slog.Logger, conversations ConversationStore,
	accounts AccountStore, messages MessageStore, filter ContentFilter) *MessageRelay {
	return &MessageRelay{
		log:           log,
		conversations: conversations,
		accounts:      accounts,
		messages:      messages,
		filter:        filter,
	}
}

// Send validates the conversation and the sender, then appends the message
// and returns it as stored. On ErrRoomNotFound or ErrUserNotFound nothing
// was persisted and no broadcast must occur.
func (r *MessageRelay) Send(ctx context.Context, sender domain.UserID, room domain.RoomID, content string) (domain.Message, error) {
	ok, err := r.conversations.Exists(ctx, room)
	if err != nil {
		return domain.Message{}, fmt.Errorf("checking conversation %s: %w", room, err)
	}
	if !ok {
		return domain.Message{}, chaterrors.ErrRoomNotFound
	}

	ok, err = r.accounts.Exists(ctx, sender)
	if err != nil {
		return domain.Message{}, fmt.Errorf("checking account %s: %w", sender, err)
	}
	if !ok {
		return domain.Message{}, chaterrors.ErrUserNotFound
	}

	if r.filter != nil {
		content = r.filter.Censor(content)
	}

	message, err := r.messages.Append(ctx, room, sender, content)
	if err != nil {
		return domain.Message{}, fmt.Errorf("appending message: %w", err)
	}
	return message, nil
}

// RecentHistory is a point-in-time read of the room's most recent
// messages, newest first. Used to replay context when a user joins.
func (r *MessageRelay) RecentHistory(ctx context.Context, room domain.RoomID, limit int) ([]domain.Message, error) {
	return r.messages.Recent(ctx, room, limit)
}
