// Package models contains the persisted row types and response records for
// the forum domain.
package models

import "time"

// User represents an account row. The password hash is opaque to every layer
// above the account executors and never serialized.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:50;uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"column:password_hash;not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName maps User onto the fixed schema.
func (User) TableName() string { return "users" }

// UserProfile is the response record for a single user lookup, including the
// aggregate counts shown on a profile page.
type UserProfile struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
	Posts     int64     `json:"posts"`
	Saves     int64     `json:"saves"`
}
