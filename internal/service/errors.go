package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/neurodeck/internal/domain"
	"github.com/phrazzld/neurodeck/internal/store"
)

// ErrEmptyImport is returned when an import contains no cards.
var ErrEmptyImport = errors.New("import contains no cards")

// DeckServiceError wraps errors from the deck service with the failed operation.
// Callers inspect the cause with errors.Is/errors.As; the API layer maps
// domain.ErrValidation to 400 and store.ErrNotFound to 404.
type DeckServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for DeckServiceError.
func (e *DeckServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("deck service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("deck service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *DeckServiceError) Unwrap() error {
	return e.Err
}

// NewDeckServiceError creates a new DeckServiceError.
func NewDeckServiceError(operation, message string, err error) *DeckServiceError {
	return &DeckServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

func isValidation(err error) bool {
	return errors.Is(err, domain.ErrValidation) || errors.Is(err, store.ErrInvalidEntity)
}
