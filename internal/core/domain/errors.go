package domain

import "errors"

var (
	// ErrInvalidCredentials covers bad username/password and inactive
	// accounts alike; the message stays generic to avoid enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken is the single error kind for every token failure:
	// malformed, bad signature, expired. Callers never learn which.
	ErrInvalidToken = errors.New("invalid token")

	// ErrForbidden means an authenticated principal lacks the required role.
	ErrForbidden = errors.New("access forbidden")

	// ErrRateUnavailable means every quote provider failed. Conversions
	// fail closed rather than reuse an arbitrarily old rate.
	ErrRateUnavailable = errors.New("exchange rate unavailable")

	ErrUserNotFound    = errors.New("user not found")
	ErrUserExists      = errors.New("user already exists")
	ErrVehicleNotFound = errors.New("vehicle not found")
	ErrDuplicatePlate  = errors.New("vehicle plate already registered")
)
