package service

import (
	"errors"
	"fmt"

	"sociopedia/internal/repository"
)

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRateLimited        = errors.New("rate limited")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrStoreUnavailable   = errors.New("store unavailable")
	ErrInternal           = errors.New("internal error")

	// ErrUnauthenticated agrupa los fallos de token; los llamadores los tratan igual.
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrTokenMalformed  = fmt.Errorf("%w: token malformed", ErrUnauthenticated)
	ErrTokenSignature  = fmt.Errorf("%w: token signature invalid", ErrUnauthenticated)
	ErrTokenExpired    = fmt.Errorf("%w: token expired", ErrUnauthenticated)
)

func storeError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrDuplicateEmail):
		return ErrDuplicateEmail
	default:
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
}
