package repository

import "errors"

// ErrNotFound is returned when a client has no complete credential stored.
// The service layer treats it as "not logged in" rather than as a failure.
var ErrNotFound = errors.New("repository: not found")
