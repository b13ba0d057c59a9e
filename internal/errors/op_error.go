package errors

import "errors"

// OpError represents a rejected operation with a stable machine-readable code.
type OpError struct {
	Code    string
	Message string
}

func (e *OpError) Error() string {
	return e.Message
}

// NewOpError creates a new OpError with the given code and message.
func NewOpError(code, message string) *OpError {
	return &OpError{
		Code:    code,
		Message: message,
	}
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotLoggedIn        = errors.New("no active session")
	ErrSessionExpired     = errors.New("session expired")
	ErrAccountExists      = errors.New("account already exists")
)
