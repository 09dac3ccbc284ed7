// Package storage provides the session ledger persistence layer.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/mindcart/mindcart/internal/model"
)

// Validation errors.
var (
	ErrNilContext    = errors.New("context cannot be nil")
	ErrInvalidRecord = errors.New("invalid session record")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateRecord validates a session record before it is appended.
func validateRecord(record model.SessionRecord) error {
	if record.ItemCount < 0 {
		return fmt.Errorf("%w: item count %d is negative", ErrInvalidRecord, record.ItemCount)
	}
	if record.TotalValue < 0 {
		return fmt.Errorf("%w: total value %.2f is negative", ErrInvalidRecord, record.TotalValue)
	}
	if record.Savings < 0 {
		return fmt.Errorf("%w: savings %.2f is negative", ErrInvalidRecord, record.Savings)
	}
	return nil
}
