package model

import "time"

// User is an account that can log in and hold memberships.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// Principal is the authenticated user acting on a request. Core operations
// take a *Principal; nil means anonymous.
type Principal struct {
	UserID   int64
	Username string
}

// PrincipalOf returns the principal for a user.
func PrincipalOf(u *User) *Principal {
	return &Principal{UserID: u.ID, Username: u.Username}
}
