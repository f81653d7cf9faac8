package errors

import "errors"

// This package defines the sentinel errors shared by the services and the API layer.
// Services wrap them with context (`fmt.Errorf("%w: ...")`) and the API layer uses
// `errors.Is()` to pick the HTTP status or the user-facing notice.

var (
	// ErrValidation signifies that user input failed a local check. No network
	// call is made when this is returned.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized signifies that the backend answered 401. Every call site
	// treats it as session expiry and forces a logout.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrBackend signifies any other backend-reported or transport failure.
	ErrBackend = errors.New("backend request failed")

	// ErrNoSession signifies that an action needed a user id and an active
	// chat session but the shell holds none.
	ErrNoSession = errors.New("no active session")

	// ErrNoDocuments signifies that an action needs at least one successfully
	// uploaded document in the active session.
	ErrNoDocuments = errors.New("no documents uploaded")

	// ErrStale signifies that a reply arrived after the shell moved on (logout,
	// new session or clear) and was dropped.
	ErrStale = errors.New("stale response")

	// ErrNotFound signifies that a requested resource could not be located.
	ErrNotFound = errors.New("resource not found")

	// ErrInternal signifies an unexpected error in this process.
	ErrInternal = errors.New("internal server error")
)
