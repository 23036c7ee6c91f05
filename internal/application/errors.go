package application

import "errors"

var (
	// ErrDuplicateEmail rejects registration with an already-taken email.
	ErrDuplicateEmail = errors.New("email already taken")
	// ErrInvalidCredentials covers unknown email, OAuth-only accounts and
	// wrong passwords alike; callers must not tell those apart.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountLocked gates login while a password reset is pending.
	ErrAccountLocked = errors.New("account locked")
	// ErrNotFound is returned by confirmation/reset when the token does not
	// resolve; no further detail is surfaced to avoid confirming account
	// existence to probers.
	ErrNotFound = errors.New("not found")
)
