package domain

import (
	"errors"
	"fmt"
)

var (
	ErrEventNotFound    = errors.New("event not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrTicketNotFound   = errors.New("ticket not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrForbidden        = errors.New("forbidden")
	ErrUnavailable      = errors.New("storage unavailable")
)

// Conflict reason codes carried to the caller so it can render
// distinct messages per business-rule violation.
const (
	ConflictOwnEvent      = "OWN_EVENT"
	ConflictFull          = "FULL"
	ConflictAlreadyExists = "ALREADY_EXISTS"
	ConflictRoleUnchanged = "ROLE_UNCHANGED"
	ConflictCodeCollision = "CODE_COLLISION"
)

// ConflictError is a business-rule violation. Compared by identity,
// so the predeclared values below work with errors.Is.
type ConflictError struct {
	Code    string
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

var (
	ErrOwnEvent            = &ConflictError{Code: ConflictOwnEvent, Message: "organizers cannot subscribe to their own events"}
	ErrEventFull           = &ConflictError{Code: ConflictFull, Message: "event is fully booked"}
	ErrCategoryExists      = &ConflictError{Code: ConflictAlreadyExists, Message: "a category with this name already exists"}
	ErrUserExists          = &ConflictError{Code: ConflictAlreadyExists, Message: "username or email is already taken"}
	ErrRoleUnchanged       = &ConflictError{Code: ConflictRoleUnchanged, Message: "user already has this role"}
	ErrTicketCodeCollision = &ConflictError{Code: ConflictCodeCollision, Message: "could not generate a unique ticket code"}
	ErrAlreadyRated        = &ConflictError{Code: ConflictAlreadyExists, Message: "you have already rated this event"}
)

// ValidationError reports a malformed or missing input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func Invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// Unavailable wraps an infrastructure failure so callers can match it
// with errors.Is(err, ErrUnavailable) while keeping the cause visible.
func Unavailable(err error) error {
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
