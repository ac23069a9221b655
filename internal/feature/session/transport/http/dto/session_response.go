package dto

import (
	"time"

	"yoga_backend/internal/feature/session/domain/entity"
)

// SessionRes is the wire form of a session. Users holds participant ids and is never null.
type SessionRes struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Date        time.Time `json:"date"`
	TeacherID   *uint     `json:"teacher_id"`
	Users       []uint    `json:"users"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// FromEntity maps a session entity to its response.
func FromEntity(s entity.Session) SessionRes {
	return SessionRes{
		ID:          s.ID,
		Name:        s.Name,
		Date:        s.Date,
		TeacherID:   s.TeacherID,
		Users:       s.ParticipantIDs(),
		Description: s.Description,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// FromEntities maps a slice of sessions; the result is never nil.
func FromEntities(ss []entity.Session) []SessionRes {
	out := make([]SessionRes, 0, len(ss))
	for _, s := range ss {
		out = append(out, FromEntity(s))
	}
	return out
}
