package services

import (
	"context"
	"fmt"

	"github.com/imanolof29/chat/auth"
	"github.com/imanolof29/chat/errors"
	"github.com/imanolof29/chat/repositories"
)

type IAuthService interface {
	SignUp(ctx context.Context, username, email, password string) (Token, error)
	SignIn(ctx context.Context, email, password string) (Token, error)
}

type Token string

type AuthService struct {
	users  repositories.IUserRepository
	tokens *auth.TokenService
}

func NewAuthService(users repositories.IUserRepository, tokens *auth.TokenService) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// SignUp validates business rules before any expensive cryptographic
// operation, hashes the password in the service layer so the repository
// never sees plain credentials, then persists and issues the first token.
func (s *AuthService) SignUp(ctx context.Context, username, email, password string) (Token, error) {
	req := auth.SignUpRequest{Username: username, Email: email, Password: password}
	if err := auth.ValidateSignUp(req); err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrInvalidPassword, err)
	}

	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("hashing failed: %w", err)
	}

	user, err := s.users.Create(ctx, username, email, hashedPassword)
	if err != nil {
		return "", err // Propagates ErrUserAlreadyExists when email or username is taken
	}

	token, err := s.tokens.Generate(user.ID, user.Email)
	if err != nil {
		return "", errors.ErrTokenGeneration
	}
	return Token(token), nil
}

// SignIn verifies the password against the stored hash and issues a token.
// Failures collapse into a generic error to prevent user enumeration.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (Token, error) {
	user, hash, err := s.users.PasswordHashByEmail(ctx, email)
	if err != nil {
		return "", errors.ErrInvalidCredentials
	}

	match, err := auth.ComparePassword(password, hash)
	if err != nil || !match {
		return "", errors.ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID, user.Email)
	if err != nil {
		return "", errors.ErrTokenGeneration
	}
	return Token(token), nil
}
