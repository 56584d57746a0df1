//go:generate go run go.uber.org/mock/mockgen -source=user.go -destination=../mocks/mock_user_repository.go -package=mocks
package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"

	"github.com/imanolof29/chat/domain"
	chaterrors "github.com/imanolof29/chat/errors"
)

type IUserRepository interface {
	Create(ctx context.Context, username, email, passwordHash string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByID(ctx context.Context, id domain.UserID) (domain.User, error)
	Exists(ctx context.Context, id domain.UserID) (bool, error)
	PasswordHashByEmail(ctx context.Context, email string) (domain.User, string, error)
}

type UserRepository struct {
	db *badger.DB
}

func NewUserRepository(db *badger.DB) UserRepository {
	return UserRepository{db: db}
}

// storedUser keeps the password hash in Badger while domain.User hides it
// from JSON responses.
type storedUser struct {
	ID           domain.UserID `json:"id"`
	Username     string        `json:"username"`
	Email        string        `json:"email"`
	PasswordHash string        `json:"passwordHash"`
	AvatarURL    string        `json:"avatarUrl,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
}

func userKey(email string) []byte        { return []byte("user:" + email) }
func userIDKey(id domain.UserID) []byte  { return []byte("userid:" + string(id)) }
func usernameKey(username string) []byte { return []byte("username:" + username) }

// Create persists a new user. The primary record is keyed by email; two
// small index entries (id -> email, username -> email) serve lookups by id
// and enforce username uniqueness.
func (u UserRepository) Create(_ context.Context, username, email, passwordHash string) (domain.User, error) {
	stored := storedUser{
		ID:           domain.UserID(uuid.NewString()),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	data, err := json.Marshal(stored)
	if err != nil {
		return domain.User{}, err
	}

	err = u.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(userKey(email)); err == nil {
			return chaterrors.ErrUserAlreadyExists
		}
		if _, err := txn.Get(usernameKey(username)); err == nil {
			return chaterrors.ErrUserAlreadyExists
		}
		if err := txn.Set(userKey(email), data); err != nil {
			return err
		}
		if err := txn.Set(userIDKey(stored.ID), []byte(email)); err != nil {
			return err
		}
		return txn.Set(usernameKey(username), []byte(email))
	})
	if err != nil {
		return domain.User{}, err
	}
	return toUser(stored), nil
}

func (u UserRepository) GetByEmail(_ context.Context, email string) (domain.User, error) {
	stored, err := u.getStoredByEmail(email)
	if err != nil {
		return domain.User{}, err
	}
	return toUser(stored), nil
}

// GetByID resolves the id index and then loads the primary record.
func (u UserRepository) GetByID(ctx context.Context, id domain.UserID) (domain.User, error) {
	var email string
	err := u.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(userIDKey(id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			email = string(val)
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return domain.User{}, chaterrors.ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, err
	}
	return u.GetByEmail(ctx, email)
}

// Exists reports whether an account with the given id is known. The relay
// uses this to reject messages from identities that were deleted after
// their token was issued.
func (u UserRepository) Exists(_ context.Context, id domain.UserID) (bool, error) {
	err := u.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get(userIDKey(id))
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

// PasswordHashByEmail returns the stored hash for login verification,
// keeping the plain domain.User free of credential material.
func (u UserRepository) PasswordHashByEmail(_ context.Context, email string) (domain.User, string, error) {
	stored, err := u.getStoredByEmail(email)
	if err != nil {
		return domain.User{}, "", err
	}
	return toUser(stored), stored.PasswordHash, nil
}

func (u UserRepository) getStoredByEmail(email string) (storedUser, error) {
	var stored storedUser
	err := u.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(userKey(email))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &stored)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return storedUser{}, chaterrors.ErrUserNotFound
	}
	if err != nil {
		return storedUser{}, err
	}
	return stored, nil
}

func toUser(stored storedUser) domain.User {
	return domain.User{
		ID:        stored.ID,
		Username:  stored.Username,
		Email:     stored.Email,
		AvatarURL: stored.AvatarURL,
		CreatedAt: stored.CreatedAt,
	}
}
