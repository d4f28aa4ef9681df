package vocabulary

import (
	"errors"
	"fmt"

	"github.com/at-ishikawa/memorizer/internal/memory"
	"github.com/at-ishikawa/memorizer/internal/term"
)

var (
	// ErrInvalidInput is returned for requests that can never succeed as given.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound is returned when the addressed term does not exist.
	ErrNotFound = term.ErrNotFound
)

// StorageError is a failure of the underlying store. It is never retried.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure in %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// classify maps a repository error onto ErrNotFound, ErrInvalidInput, or *StorageError.
func (s *Service) classify(op string, err error) error {
	switch {
	case errors.Is(err, term.ErrNotFound):
		return fmt.Errorf("%s > %w", op, err)
	case errors.Is(err, memory.ErrInvalidLevel), errors.Is(err, memory.ErrInvalidDirection):
		return fmt.Errorf("%s > %w: %w", op, ErrInvalidInput, err)
	}
	s.logger.Error("storage failure", "op", op, "error", err)
	return &StorageError{Op: op, Err: err}
}
