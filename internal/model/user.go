// Package model defines the data structures used throughout the application.
package model

import "time"

// User is an admin account that can manage articles.
//
// PasswordHash holds the full bcrypt output — the salt and cost are embedded
// in the string, so there is no separate salt column. The `json:"-"` tag is
// load-bearing: handlers serialize User structs directly, and the hash must
// never appear in an API response.
type User struct {
	ID           string    `json:"id"        db:"id"`
	Username     string    `json:"username"  db:"username"` // unique across all users
	PasswordHash string    `json:"-"         db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
