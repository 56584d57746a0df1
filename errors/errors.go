package errors

import "fmt"

var (
	// Connection establishment.
	ErrMissingCredential = fmt.Errorf("authentication required")
	ErrInvalidCredential = fmt.Errorf("invalid token")

	// Event handling.
	ErrNotAuthenticated = fmt.Errorf("user not authenticated")
	ErrRoomNotFound     = fmt.Errorf("chat not found")
	ErrUserNotFound     = fmt.Errorf("user not found")

	// Accounts.
	ErrUserAlreadyExists  = fmt.Errorf("user already exists")
	ErrInvalidCredentials = fmt.Errorf("invalid email or password")
	ErrInvalidPassword    = fmt.Errorf("password does not meet complexity requirements")
	ErrTokenGeneration    = fmt.Errorf("token generation failed")

	// Supervision.
	ErrWorkerPanic = fmt.Errorf("worker panic")
)
