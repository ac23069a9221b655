// Package entity defines the domain entities for the teacher feature.
package entity

import "time"

// Teacher is a yoga instructor who leads sessions.
type Teacher struct {
	ID        uint   `gorm:"primaryKey"`
	LastName  string `gorm:"size:20;not null"`
	FirstName string `gorm:"size:20;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
