package services

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Error kinds. Every error returned by a service matches exactly one of them
// through errors.Is, except ErrInvalidCredentials and ErrAIUnavailable.
var (
	ErrNotFound         = errors.New("not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrUnauthenticated  = errors.New("authentication required")
	ErrForbidden        = errors.New("permission denied")
	ErrPersistence      = errors.New("persistence failure")
)

// kindError is a concrete error that belongs to one of the kinds above.
type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }

func validationError(msg string) error { return &kindError{kind: ErrValidationFailed, msg: msg} }

func notFoundError(msg string) error { return &kindError{kind: ErrNotFound, msg: msg} }

func forbiddenError(msg string) error { return &kindError{kind: ErrForbidden, msg: msg} }

// persistenceError logs the storage failure and converts it into ErrPersistence.
func persistenceError(log *zap.SugaredLogger, op string, err error) error {
	log.Errorw("storage operation failed", "op", op, "error", err)
	return fmt.Errorf("%w: failed to %s: %w", ErrPersistence, op, err)
}

// lookupError maps a not-found storage error onto notFound and anything else
// onto ErrPersistence.
func lookupError(log *zap.SugaredLogger, op string, err, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return persistenceError(log, op, err)
}
