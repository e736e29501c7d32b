package services

import "errors"

// Failure taxonomy shared by all services. Handlers map these to HTTP
// statuses; nothing else crosses the boundary.
var (
	ErrValidation     = errors.New("invalid input")
	ErrForbidden      = errors.New("forbidden")
	ErrNotFound       = errors.New("not found")
	ErrBadCredentials = errors.New("invalid email or password")
	ErrEmailTaken     = errors.New("email already registered")
)
