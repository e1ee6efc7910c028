// Package common defines shared constants and sentinel errors used across
// the GeoVision client layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Local validation errors, raised before any network call is made.
	ErrEmailRequired    = errors.New("email and password are required")
	ErrNameRequired     = errors.New("name, email and password are required")
	ErrInvalidEmail     = errors.New("please enter a valid email address")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")

	// Payload-shape errors: the server answered 2xx but the body is missing
	// required fields.
	ErrInvalidServerResponse = errors.New("invalid response from server")
	ErrInvalidUserData       = errors.New("invalid user data from server")

	// Service-level errors.
	ErrAccountExists    = errors.New("an account with this email already exists")
	ErrNotAuthenticated = errors.New("not authenticated")
)
