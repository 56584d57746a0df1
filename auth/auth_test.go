package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/imanolof29/chat/errors"
)

func TestHashAndCompare(t *testing.T) {
	req := require.New(t)
	password := "A-Very-Secret-Passw0rd!"

	hash, err := HashPassword(password)
	req.NoError(err)
	req.True(strings.HasPrefix(hash, "$argon2id$"))

	match, err := ComparePassword(password, hash)
	req.NoError(err)
	req.True(match)

	match, err = ComparePassword("WrongPassword", hash)
	req.NoError(err)
	req.False(match)
}

func TestSignUpValidation(t *testing.T) {
	req := require.New(t)
	tests := []struct {
		name    string
		req     SignUpRequest
		wantErr bool
	}{
		{"Valid request", SignUpRequest{"alice", "test@example.com", "ComplexPass123!"}, false},
		{"Invalid email", SignUpRequest{"alice", "notanemail", "ComplexPass123!"}, true},
		{"Username too short", SignUpRequest{"al", "test@example.com", "ComplexPass123!"}, true},
		{"Password too short", SignUpRequest{"alice", "test@example.com", "Short1!"}, true},
		{"Missing digit", SignUpRequest{"alice", "test@example.com", "NoDigitPassword!"}, true},
		{"Missing special char", SignUpRequest{"alice", "test@example.com", "NoSpecialChar123"}, true},
		{"Missing uppercase", SignUpRequest{"alice", "test@example.com", "nouppercase123!!"}, true},
		{"Password too long (edge case)", SignUpRequest{"alice", "test@example.com", strings.Repeat("a", 73)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSignUp(tt.req)
			if tt.wantErr {
				req.Error(err)
			} else {
				req.NoError(err)
			}
		})
	}
}

func TestPasswordComplexityError(t *testing.T) {
	req := require.New(t)

	err := ValidateSignUp(SignUpRequest{"alice", "test@example.com", "alllowercase!!!!"})

	req.ErrorIs(err, errors.ErrInvalidPassword)
}

func TestTokenService_GenerateAndVerify(t *testing.T) {
	req := require.New(t)
	service := NewTokenService("a-well-kept-secret", time.Hour)

	token, err := service.Generate("user-42", "alice@example.com")
	req.NoError(err)
	req.NotEmpty(token)

	userID, err := service.Verify(token)
	req.NoError(err)
	req.Equal("user-42", string(userID))
}

func TestTokenService_RejectsForeignSignature(t *testing.T) {
	req := require.New(t)
	service := NewTokenService("a-well-kept-secret", time.Hour)
	other := NewTokenService("a-different-secret", time.Hour)

	token, err := other.Generate("user-42", "alice@example.com")
	req.NoError(err)

	_, err = service.Verify(token)
	req.Error(err)
}

func TestTokenService_RejectsExpiredToken(t *testing.T) {
	req := require.New(t)
	service := NewTokenService("a-well-kept-secret", -time.Minute)

	token, err := service.Generate("user-42", "alice@example.com")
	req.NoError(err)

	_, err = service.Verify(token)
	req.Error(err)
}

func TestTokenService_RejectsGarbage(t *testing.T) {
	req := require.New(t)
	service := NewTokenService("a-well-kept-secret", time.Hour)

	_, err := service.Verify("definitely.not.a-jwt")
	req.Error(err)
}

// BenchmarkHashPassword measures the CPU/RAM cost of one hash.
func BenchmarkHashPassword(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = HashPassword("A-very-long-and-complex-password-for-bench-123!")
	}
}
