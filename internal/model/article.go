// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — similar to classes in other
// languages, but without inheritance. Go favours composition over inheritance.
package model

import "time"

// Article is a blog post on the portfolio site.
//
// Published controls visibility: the public endpoint only returns articles
// with Published == true; drafts are visible to the authenticated admin only.
//
// The `json:"..."` struct tags control how encoding/json serializes the
// struct, so the API speaks camelCase while the DB columns stay snake_case.
type Article struct {
	ID        string    `json:"id"        db:"id"`
	Title     string    `json:"title"     db:"title"`
	Excerpt   string    `json:"excerpt"   db:"excerpt"`
	Content   string    `json:"content"   db:"content"`
	Category  string    `json:"category"  db:"category"`
	ReadTime  string    `json:"readTime"  db:"read_time"` // display string, e.g. "3 min"
	Published bool      `json:"published" db:"published"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
