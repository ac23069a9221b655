// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered member of the studio.
// It contains authentication credentials and profile data.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Email is the login key. It must be unique across all users.
	Email string `gorm:"uniqueIndex;size:50;not null"`

	// FirstName is the user's given name.
	FirstName string `gorm:"size:20;not null"`

	// LastName is the user's family name.
	LastName string `gorm:"size:20;not null"`

	// Password is the bcrypt hash of the user's password.
	// This must never store plaintext passwords.
	Password string `gorm:"size:120;not null"`

	// Admin grants session management rights. Registration always stores false.
	Admin bool `gorm:"not null;default:false"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time
}
