package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/imanolof29/chat/auth"
	"github.com/imanolof29/chat/domain"
	"github.com/imanolof29/chat/errors"
	"github.com/imanolof29/chat/mocks"
)

func TestAuthService_SignUp(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockIUserRepository(ctrl)
	tokens := auth.NewTokenService("test-secret", 24*time.Hour)
	svc := NewAuthService(mockRepo, tokens)
	ctx := context.Background()

	t.Run("should sign up successfully when input is valid", func(t *testing.T) {
		req := require.New(t)
		email := "test@example.com"
		password := "ComplexLongPass123!"

		// Expect Create to be called with a hashed password (not the plain one)
		mockRepo.EXPECT().
			Create(ctx, "alice", email, gomock.Not(password)).
			Return(domain.User{ID: "user-uuid", Username: "alice", Email: email}, nil).
			Times(1)

		token, err := svc.SignUp(ctx, "alice", email, password)

		req.NoError(err)
		req.NotEmpty(token)

		// The issued token resolves back to the created identity.
		userID, err := tokens.Verify(string(token))
		req.NoError(err)
		req.Equal(domain.UserID("user-uuid"), userID)
	})

	t.Run("should fail when password complexity is not met", func(t *testing.T) {
		req := require.New(t)

		// Repository should NEVER be called
		mockRepo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		token, err := svc.SignUp(ctx, "alice", "test@example.com", "simple")

		req.Error(err)
		req.ErrorIs(err, errors.ErrInvalidPassword)
		req.Empty(token)
	})

	t.Run("should fail when user already exists in repository", func(t *testing.T) {
		req := require.New(t)
		email := "duplicate@example.com"

		mockRepo.EXPECT().
			Create(ctx, "alice", email, gomock.Any()).
			Return(domain.User{}, errors.ErrUserAlreadyExists).
			Times(1)

		_, err := svc.SignUp(ctx, "alice", email, "ComplexLongPass123!")

		req.ErrorIs(err, errors.ErrUserAlreadyExists)
	})
}

func TestAuthService_SignIn(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := mocks.NewMockIUserRepository(ctrl)
	tokens := auth.NewTokenService("test-secret", 24*time.Hour)
	svc := NewAuthService(mockRepo, tokens)
	ctx := context.Background()

	password := "ComplexLongPass123!"
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)

	t.Run("should sign in successfully with correct credentials", func(t *testing.T) {
		req := require.New(t)
		email := "user@example.com"

		mockRepo.EXPECT().
			PasswordHashByEmail(ctx, email).
			Return(domain.User{ID: "user-uuid", Email: email}, hash, nil).
			Times(1)

		token, err := svc.SignIn(ctx, email, password)

		req.NoError(err)
		req.NotEmpty(token)
	})

	t.Run("should fail with a generic error on wrong password", func(t *testing.T) {
		req := require.New(t)
		email := "user@example.com"

		mockRepo.EXPECT().
			PasswordHashByEmail(ctx, email).
			Return(domain.User{ID: "user-uuid", Email: email}, hash, nil).
			Times(1)

		_, err := svc.SignIn(ctx, email, "WrongPassword1!")

		req.ErrorIs(err, errors.ErrInvalidCredentials)
	})

	t.Run("should fail with the same generic error for an unknown email", func(t *testing.T) {
		req := require.New(t)

		mockRepo.EXPECT().
			PasswordHashByEmail(ctx, "ghost@example.com").
			Return(domain.User{}, "", errors.ErrUserNotFound).
			Times(1)

		_, err := svc.SignIn(ctx, "ghost@example.com", password)

		// No user enumeration: unknown email and bad password are identical.
		req.ErrorIs(err, errors.ErrInvalidCredentials)
	})
}
