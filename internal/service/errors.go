package service

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound reports a mutation target that does not exist. Deletes
	// treat the same situation as a silent no-op instead.
	ErrNotFound = errors.New("record not found")

	// ErrNothingToReset reports a reset over an already-empty store. It is
	// informational: callers surface it as a notice, not a failure.
	ErrNothingToReset = errors.New("store is already empty")

	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ValidationError reports rejected user input. The operation aborts with no
// partial write.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// InsufficientStockError reports a sale asking for more units than the
// product has on hand. Available carries the current stock for the user
// message; the product is left untouched.
type InsufficientStockError struct {
	ProductID uint
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock: only %d units available", e.Available)
}

// StorageError wraps an underlying database failure.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *StorageError) Unwrap() error { return e.Err }

func storage(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}

// ExportError wraps a failure while building CSV/HTML/XLSX output. Exports
// are read-only, so the underlying data is never affected.
type ExportError struct {
	Op  string
	Err error
}

func (e *ExportError) Error() string { return "export " + e.Op + ": " + e.Err.Error() }
func (e *ExportError) Unwrap() error { return e.Err }
