package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/imanolof29/chat/domain"
)

// Claims defines the structure of the data stored inside the JWT.
type Claims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies access tokens. The secret comes from
// configuration; it is never hardcoded here.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl, issuer: "chat"}
}

// Generate creates a signed JWT whose subject is the user id.
func (s *TokenService) Generate(userID domain.UserID, email string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   string(userID),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.issuer,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify parses and validates the signature and expiration of a JWT string
// and returns the subject identity.
func (s *TokenService) Verify(tokenString string) (domain.UserID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", jwt.ErrSignatureInvalid
	}
	return domain.UserID(claims.Subject), nil
}
