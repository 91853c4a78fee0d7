package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// User errors
	ErrMsgUserNotFound   = "user not found"
	ErrMsgDuplicateEmail = "email in use"

	// Item errors
	ErrMsgItemNotFound = "item not found"

	// Ledger errors
	ErrMsgInsufficientPoints = "not enough points"

	// Auth errors
	ErrMsgInvalidCredentials = "invalid credentials"
	ErrMsgUnauthorized       = "unauthorized"

	// Strava errors
	ErrMsgStravaNotConnected  = "strava not connected"
	ErrMsgNoRefreshToken      = "no strava refresh token stored"
	ErrMsgProviderAuthFailure = "strava auth failure"
	ErrMsgProviderSyncFailure = "strava sync failure"

	// Validation errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// User errors
	ErrUserNotFound   = errors.New(ErrMsgUserNotFound)
	ErrDuplicateEmail = errors.New(ErrMsgDuplicateEmail)

	// Item errors
	ErrItemNotFound = errors.New(ErrMsgItemNotFound)

	// Ledger errors
	ErrInsufficientPoints = errors.New(ErrMsgInsufficientPoints)

	// Auth errors
	ErrInvalidCredentials = errors.New(ErrMsgInvalidCredentials)
	ErrUnauthorized       = errors.New(ErrMsgUnauthorized)

	// Strava errors
	ErrStravaNotConnected  = errors.New(ErrMsgStravaNotConnected)
	ErrNoRefreshToken      = errors.New(ErrMsgNoRefreshToken)
	ErrProviderAuthFailure = errors.New(ErrMsgProviderAuthFailure)
	ErrProviderSyncFailure = errors.New(ErrMsgProviderSyncFailure)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
