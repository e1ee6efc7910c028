package services

import "github.com/karanja-droid/geo-miner-ai-sub000/internal/client/models"

// SessionState is the observable authentication state. User and Token are
// always set and cleared together; IsAuthenticated is derived from the two
// being present. IsLoading is true during the initial bootstrap and during
// any in-flight login or registration.
type SessionState struct {
	User            *models.User
	Token           string
	IsAuthenticated bool
	IsLoading       bool
}

// Navigator receives navigation intents from the session layer, e.g. "go to
// the login surface" after a forced logout. The CLI and any future UI
// implement it.
type Navigator interface {
	NavigateToLogin()
}
