package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidServings is returned when servings is zero or negative.
	ErrInvalidServings = errors.New("servings must be greater than zero")

	// ErrEmptyDishName is returned when the dish name is empty after normalization.
	ErrEmptyDishName = errors.New("dish name must not be empty")

	// ErrNotAuthenticated is returned when a request carries no valid identity.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrInvalidCredentials is returned when the email/password pair is wrong.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailTaken is returned when registering an already-registered email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrMissingAPIKey is returned when the USDA API key is not configured.
	ErrMissingAPIKey = errors.New("USDA API key is not configured")

	// ErrDishNotFound is returned when the external search yields no candidates.
	ErrDishNotFound = errors.New("dish not found in USDA database")

	// ErrCaloriesUndeterminable is returned when no caloric value could be
	// extracted from the matched record or its detail record.
	ErrCaloriesUndeterminable = errors.New("calories could not be determined")
)

// TransportError reports a failed call to the USDA API. It covers network
// failures, timeouts, and non-2xx responses; StatusCode is zero when no HTTP
// response was received.
type TransportError struct {
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("usda api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("usda api: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
