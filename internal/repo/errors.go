package repo

import "errors"

// Facade-level failure taxonomy. Everything the presentation layer needs to
// distinguish is one of these sentinels (matched with errors.Is); the
// wrapped message carries the human-readable reason.
var (
	// ErrValidation marks a missing or empty required field.
	ErrValidation = errors.New("invalid input")
	// ErrDuplicateUsername is returned when registration hits an
	// existing username. The prior account is left unchanged.
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrNotAuthenticated is returned when an operation requiring a
	// session received none.
	ErrNotAuthenticated = errors.New("not logged in")
)
