package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/imanolof29/chat/errors"
)

func TestUserRepository_CreateAndLookup(t *testing.T) {
	req := require.New(t)
	repository := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	created, err := repository.Create(ctx, "alice", "alice@example.com", "$argon2id$hash")
	req.NoError(err)
	req.NotEmpty(created.ID)
	req.Equal("alice", created.Username)
	req.Equal("alice@example.com", created.Email)

	byEmail, err := repository.GetByEmail(ctx, "alice@example.com")
	req.NoError(err)
	req.Equal(created.ID, byEmail.ID)

	byID, err := repository.GetByID(ctx, created.ID)
	req.NoError(err)
	req.Equal("alice@example.com", byID.Email)
}

func TestUserRepository_DuplicateEmailIsRejected(t *testing.T) {
	req := require.New(t)
	repository := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	_, err := repository.Create(ctx, "alice", "alice@example.com", "hash")
	req.NoError(err)

	_, err = repository.Create(ctx, "alice2", "alice@example.com", "hash")
	req.ErrorIs(err, errors.ErrUserAlreadyExists)
}

func TestUserRepository_DuplicateUsernameIsRejected(t *testing.T) {
	req := require.New(t)
	repository := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	_, err := repository.Create(ctx, "alice", "alice@example.com", "hash")
	req.NoError(err)

	_, err = repository.Create(ctx, "alice", "alice2@example.com", "hash")
	req.ErrorIs(err, errors.ErrUserAlreadyExists)
}

func TestUserRepository_UnknownUser(t *testing.T) {
	req := require.New(t)
	repository := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	_, err := repository.GetByEmail(ctx, "ghost@example.com")
	req.ErrorIs(err, errors.ErrUserNotFound)

	_, err = repository.GetByID(ctx, "ghost-id")
	req.ErrorIs(err, errors.ErrUserNotFound)

	exists, err := repository.Exists(ctx, "ghost-id")
	req.NoError(err)
	req.False(exists)
}

func TestUserRepository_PasswordHashStaysOutOfDomainUser(t *testing.T) {
	req := require.New(t)
	repository := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	created, err := repository.Create(ctx, "alice", "alice@example.com", "$argon2id$secret")
	req.NoError(err)

	user, hash, err := repository.PasswordHashByEmail(ctx, "alice@example.com")
	req.NoError(err)
	req.Equal(created.ID, user.ID)
	req.Equal("$argon2id$secret", hash)

	exists, err := repository.Exists(ctx, created.ID)
	req.NoError(err)
	req.True(exists)
}
