// Package models defines the persistent row types and their public API
// projections.
package models

import "time"

// User is a registered account row. PasswordHash must never leave the
// server; only UserProfile projections are returned to clients.
type User struct {
	ID           int64
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// UserProfile is the public projection of a User returned by the API.
// Name is a derived convenience field populated only by the /me flow.
type UserProfile struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Name      string `json:"name,omitempty"`
}

// Profile returns the public projection of the user, without the derived
// full name.
func (u *User) Profile() UserProfile {
	return UserProfile{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Email:     u.Email,
	}
}
