// Package entity defines the domain entities for the session feature.
package entity

import (
	"time"

	authentity "yoga_backend/internal/feature/auth/domain/entity"
	teacherentity "yoga_backend/internal/feature/teacher/domain/entity"
)

// Session is a scheduled yoga class that users can join.
type Session struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"size:50;not null"`
	Date        time.Time `gorm:"not null"`
	Description string    `gorm:"size:2500;not null"`

	// TeacherID references the teacher leading the session. It is nil when unassigned.
	TeacherID *uint
	Teacher   *teacherentity.Teacher `gorm:"constraint:OnDelete:SET NULL"`

	// Users are the participants, stored in the participate join table.
	Users []authentity.User `gorm:"many2many:participate;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasParticipant reports whether userID is among the session's participants.
func (s *Session) HasParticipant(userID uint) bool {
	for _, u := range s.Users {
		if u.ID == userID {
			return true
		}
	}
	return false
}

// ParticipantIDs returns the participant ids in stored order. It never returns nil.
func (s *Session) ParticipantIDs() []uint {
	ids := make([]uint, 0, len(s.Users))
	for _, u := range s.Users {
		ids = append(ids, u.ID)
	}
	return ids
}
