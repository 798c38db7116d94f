// Package common defines shared constants and sentinel errors used across
// the store, service and transport layers of gophauth. Callers should use
// errors.Is to match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound     = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already registered")

	// Service-level errors.
	ErrorInternal       = errors.New("internal error")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrValidation       = errors.New("validation error")

	// ErrAuthFailed is the single class returned to callers for a rejected
	// login. The wrapped variants keep the reason for server-side logs.
	ErrAuthFailed         = errors.New("authentication failed")
	ErrUserNotFound       = fmt.Errorf("%w: user not found", ErrAuthFailed)
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrAuthFailed)

	// Session token errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
