package domain

import "errors"

var (
	ErrNotFound = errors.New("not found")

	// ErrInvalidCredentials deliberately covers both unknown email and wrong
	// password so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrEmailTaken = errors.New("email already registered")
	ErrNoSession  = errors.New("no active session")
	ErrValidation = errors.New("invalid input")
)
