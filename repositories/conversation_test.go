package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/imanolof29/chat/domain"
	"github.com/imanolof29/chat/errors"
)

func TestConversationRepository_CreateDeduplicatesParticipants(t *testing.T) {
	req := require.New(t)
	repository := NewConversationRepository(newTestDB(t))
	ctx := context.Background()

	created, err := repository.Create(ctx, []domain.UserID{"alice", "bob", "alice"})

	req.NoError(err)
	req.NotEmpty(created.ID)
	req.Equal([]domain.UserID{"alice", "bob"}, created.Participants)
}

func TestConversationRepository_GetAndExists(t *testing.T) {
	req := require.New(t)
	repository := NewConversationRepository(newTestDB(t))
	ctx := context.Background()

	created, err := repository.Create(ctx, []domain.UserID{"alice", "bob"})
	req.NoError(err)

	fetched, err := repository.Get(ctx, created.ID)
	req.NoError(err)
	req.Equal(created.ID, fetched.ID)
	req.Equal(created.Participants, fetched.Participants)

	exists, err := repository.Exists(ctx, created.ID)
	req.NoError(err)
	req.True(exists)
}

func TestConversationRepository_UnknownConversation(t *testing.T) {
	req := require.New(t)
	repository := NewConversationRepository(newTestDB(t))
	ctx := context.Background()

	_, err := repository.Get(ctx, "room-ghost")
	req.ErrorIs(err, errors.ErrRoomNotFound)

	exists, err := repository.Exists(ctx, "room-ghost")
	req.NoError(err)
	req.False(exists)
}
