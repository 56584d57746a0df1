//go:generate go run go.uber.org/mock/mockgen -source=conversation.go -destination=../mocks/mock_conversation_repository.go -package=mocks
package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/imanolof29/chat/domain"
	chaterrors "github.com/imanolof29/chat/errors"
)

type IConversationRepository interface {
	Create(ctx context.Context, participants []domain.UserID) (domain.Conversation, error)
	Get(ctx context.Context, id domain.RoomID) (domain.Conversation, error)
	Exists(ctx context.Context, id domain.RoomID) (bool, error)
}

type ConversationRepository struct {
	db *badger.DB
}

func NewConversationRepository(db *badger.DB) ConversationRepository {
	return ConversationRepository{db: db}
}

func conversationKey(id domain.RoomID) []byte { return []byte("chat:" + string(id)) }

// Create persists a conversation with its durable participant list. The
// participant list is deduplicated; who is live in the room at any moment
// is the broker's concern, not this record's.
func (c ConversationRepository) Create(_ context.Context, participants []domain.UserID) (domain.Conversation, error) {
	conversation := domain.Conversation{
		ID:           domain.RoomID(uuid.NewString()),
		Participants: lo.Uniq(participants),
		CreatedAt:    time.Now().UTC(),
	}
	data, err := json.Marshal(conversation)
	if err != nil {
		return domain.Conversation{}, err
	}
	err = c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(conversationKey(conversation.ID), data)
	})
	if err != nil {
		return domain.Conversation{}, err
	}
	return conversation, nil
}

func (c ConversationRepository) Get(_ context.Context, id domain.RoomID) (domain.Conversation, error) {
	var conversation domain.Conversation
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(conversationKey(id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &conversation)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return domain.Conversation{}, chaterrors.ErrRoomNotFound
	}
	if err != nil {
		return domain.Conversation{}, err
	}
	return conversation, nil
}

func (c ConversationRepository) Exists(_ context.Context, id domain.RoomID) (bool, error) {
	err := c.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(conversationKey(id))
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
