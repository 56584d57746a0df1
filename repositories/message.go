//go:generate go run go.uber.org/mock/mockgen -source=message.go -destination=../mocks/mock_message_repository.go -package=mocks
package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/imanolof29/chat/domain"
)

type IMessageRepository interface {
	Append(ctx context.Context, room domain.RoomID, sender domain.UserID, content string) (domain.Message, error)
	Recent(ctx context.Context, room domain.RoomID, limit int) ([]domain.Message, error)
	Page(ctx context.Context, room domain.RoomID, cursor *string, limit int) ([]domain.Message, *string, error)
}

type MessageRepository struct {
	db  *badger.DB
	log *slog.Logger
}

func NewMessageRepository(db *badger.DB, log *slog.Logger) MessageRepository {
	return MessageRepository{db: db, log: log}
}

// messageKey formats the storage key as "msg:{room}:{timestamp_padded}:{uuid}" to:
//  1. Ensure chronological sorting using 19-digit zero padding (lexicographical order).
//  2. Prevent data loss by using the UUID as a collision disconnector if two
//     messages arrive at the same nanosecond.
func messageKey(room domain.RoomID, at time.Time, id uuid.UUID) []byte {
	return []byte(fmt.Sprintf("msg:%s:%019d:%s", room, at.UnixNano(), id))
}

func messagePrefix(room domain.RoomID) []byte {
	return []byte(fmt.Sprintf("msg:%s:", room))
}

// Append assigns the message identity and creation timestamp and persists
// it. The stored message is returned so callers can acknowledge with the
// exact identity and timestamp the store assigned.
func (m MessageRepository) Append(_ context.Context, room domain.RoomID, sender domain.UserID, content string) (domain.Message, error) {
	message := domain.Message{
		ID:        uuid.New(),
		Room:      room,
		SenderID:  sender,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	bytes, err := json.Marshal(message)
	if err != nil {
		return domain.Message{}, err
	}
	err = m.db.Update(func(txn *badger.Txn) error {
		return txn.Set(messageKey(room, message.CreatedAt, message.ID), bytes)
	})
	if err != nil {
		return domain.Message{}, err
	}
	return message, nil
}

// Recent returns up to limit messages for a room, most recent first.
// Thanks to the padded timestamp in the key, a reverse prefix scan walks
// messages in newest-to-oldest order without any sort step.
func (m MessageRepository) Recent(ctx context.Context, room domain.RoomID, limit int) ([]domain.Message, error) {
	messages, _, err := m.Page(ctx, room, nil, limit)
	return messages, err
}

// Page reads one page of a room's history, newest first. The cursor is the
// key suffix of the last message of the previous page; nil starts from the
// most recent message. The returned cursor resumes the scan on the next call.
func (m MessageRepository) Page(_ context.Context, room domain.RoomID, cursor *string, limit int) ([]domain.Message, *string, error) {
	var messages []domain.Message
	var lastKey string

	err := m.db.View(func(txn *badger.Txn) error {
		prefix := messagePrefix(room)
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		var seekKey []byte
		switch cursor {
		case nil:
			// Seek past any possible timestamp so the reverse iterator
			// lands on the newest message for this room.
			seekKey = append(append([]byte{}, prefix...), []byte("9999999999999999999")...)
		default:
			seekKey = append(append([]byte{}, prefix...), []byte(*cursor)...)
		}

		it.Seek(seekKey)
		if cursor != nil && it.ValidForPrefix(prefix) {
			it.Next()
		}

		for ; it.ValidForPrefix(prefix); it.Next() {
			if limit > 0 && len(messages) == limit {
				m.log.Debug("history page limit reached", "room", room, "limit", limit)
				break
			}
			item := it.Item()
			lastKey = string(item.Key()[len(prefix):])
			err := item.Value(func(value []byte) error {
				var message domain.Message
				if err := json.Unmarshal(value, &message); err != nil {
					return err
				}
				messages = append(messages, message)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return messages, &lastKey, nil
}
