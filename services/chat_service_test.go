package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/imanolof29/chat/domain"
	"github.com/imanolof29/chat/errors"
	"github.com/imanolof29/chat/mocks"
)

func TestChatService(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	conversations := mocks.NewMockIConversationRepository(ctrl)
	messages := mocks.NewMockIMessageRepository(ctrl)
	svc := NewChatService(conversations, messages)
	ctx := context.Background()

	t.Run("should create a conversation for its participants", func(t *testing.T) {
		req := require.New(t)
		participants := []domain.UserID{"alice", "bob"}

		conversations.EXPECT().
			Create(ctx, participants).
			Return(domain.Conversation{ID: "room-1", Participants: participants}, nil).
			Times(1)

		created, err := svc.CreateChat(ctx, participants)

		req.NoError(err)
		req.Equal(domain.RoomID("room-1"), created.ID)
	})

	t.Run("should propagate a missing conversation", func(t *testing.T) {
		req := require.New(t)

		conversations.EXPECT().
			Get(ctx, domain.RoomID("room-ghost")).
			Return(domain.Conversation{}, errors.ErrRoomNotFound).
			Times(1)

		_, err := svc.GetChat(ctx, "room-ghost")

		req.ErrorIs(err, errors.ErrRoomNotFound)
	})

	t.Run("should page message history", func(t *testing.T) {
		req := require.New(t)
		cursor := "cursor-1"
		page := []domain.Message{{Content: "newest"}}

		messages.EXPECT().
			Page(ctx, domain.RoomID("room-1"), gomock.Nil(), 50).
			Return(page, &cursor, nil).
			Times(1)

		fetched, next, err := svc.Messages(ctx, "room-1", nil, 50)

		req.NoError(err)
		req.Equal(page, fetched)
		req.Equal(&cursor, next)
	})
}
