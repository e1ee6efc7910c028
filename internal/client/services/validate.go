package services

import (
	"strings"

	"github.com/karanja-droid/geo-miner-ai-sub000/internal/common"
)

const minPasswordLength = 6

// validateLogin checks credentials locally so malformed input never costs a
// network round trip.
func validateLogin(email, password string) error {
	if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return common.ErrEmailRequired
	}
	if !strings.Contains(email, "@") {
		return common.ErrInvalidEmail
	}
	return nil
}

// validateRegistration checks the registration form locally, one distinct
// error per violated rule.
func validateRegistration(name, email, password string) error {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
		return common.ErrNameRequired
	}
	if !strings.Contains(email, "@") {
		return common.ErrInvalidEmail
	}
	if len(password) < minPasswordLength {
		return common.ErrPasswordTooShort
	}
	return nil
}
