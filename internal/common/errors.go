// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Cart errors.
	ErrUnknownItem     = errors.New("unknown catalog item")
	ErrIndexOutOfRange = errors.New("cart index out of range")
	ErrCartEmpty       = errors.New("cart is empty")

	// Justification errors.
	ErrEmptyJustification = errors.New("justification text is empty")
	ErrNotFlagged         = errors.New("item is not flagged for reconsideration")
	ErrNoJustification    = errors.New("no justification recorded")

	// Navigation errors.
	ErrInvalidTransition = errors.New("invalid navigation transition")
	ErrGoalRequired      = errors.New("shopping goal must be set")

	// Analysis errors.
	ErrNoAnalysis = errors.New("no analysis result available")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the shopper.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}
