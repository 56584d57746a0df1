//go:generate go run go.uber.org/mock/mockgen -source=authenticator.go -destination=../mocks/mock_token_verifier.go -package=mocks
package broker

import (
	"fmt"

	"github.com/imanolof29/chat/domain"
	chaterrors "github.com/imanolof29/chat/errors"
)

// TokenVerifier validates a bearer credential and returns the subject
// identity. Implemented by auth.TokenService in production.
type TokenVerifier interface {
	Verify(token string) (domain.UserID, error)
}

// Authenticator runs once per inbound connection, before any other event
// is accepted.
type Authenticator struct {
	verifier TokenVerifier
}

func NewAuthenticator(verifier TokenVerifier) *Authenticator {
	return &Authenticator{verifier: verifier}
}

// Authenticate maps an absent credential to ErrMissingCredential and a
// verifier rejection to ErrInvalidCredential. Both are fatal to the
// connection; the caller emits the error event and closes.
func (a *Authenticator) Authenticate(credential string) (domain.UserID, error) {
	if credential == "" {
		return "", chaterrors.ErrMissingCredential
	}
	userID, err := a.verifier.Verify(credential)
	if err != nil {
		return "", fmt.Errorf("%w: %v", chaterrors.ErrInvalidCredential, err)
	}
	return userID, nil
}
