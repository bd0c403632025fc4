// internal/pkg/apperrors/errors.go
package apperrors

import "errors"

// Error kinds surfaced to API clients. Services wrap these with context via
// fmt.Errorf and %w; handlers match with errors.Is to pick a status code.
var (
	// ErrValidation indicates missing or malformed user input.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyCart indicates an order was attempted with no cart lines.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrNotFound indicates the referenced row no longer exists.
	ErrNotFound = errors.New("not found")

	// ErrRemoteService indicates a dependency (database, Redis) failure.
	ErrRemoteService = errors.New("remote service failure")

	// ErrUnauthorized indicates a missing or invalid session.
	ErrUnauthorized = errors.New("unauthorized")
)
