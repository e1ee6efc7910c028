// Package models contains the wire models exchanged with the GeoVision
// backend API.
package models

import "time"

// Role is the coarse access level assigned to a user account.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleGeologist Role = "geologist"
	RoleAnalyst   Role = "analyst"
	RoleViewer    Role = "viewer"
)

// Known reports whether r is one of the roles the backend issues.
func (r Role) Known() bool {
	switch r {
	case RoleAdmin, RoleGeologist, RoleAnalyst, RoleViewer:
		return true
	}
	return false
}

// User is the profile part of the authenticated identity.
type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	FullName     string     `json:"full_name"`
	Role         Role       `json:"role"`
	Organization string     `json:"organization,omitempty"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
}

// Complete reports whether the minimal required field set (id, email,
// display name) is present. Anything less is a payload-shape failure and
// must not be trusted as a login.
func (u *User) Complete() bool {
	if u == nil {
		return false
	}
	return u.ID != "" && u.Email != "" && u.FullName != ""
}
