// Package dto defines the JSON shapes of the teacher endpoints.
package dto

import (
	"time"

	"yoga_backend/internal/feature/teacher/domain/entity"
)

// TeacherRes is the wire form of a teacher.
type TeacherRes struct {
	ID        uint      `json:"id"`
	LastName  string    `json:"lastName"`
	FirstName string    `json:"firstName"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromEntity maps a teacher entity to its response.
func FromEntity(t entity.Teacher) TeacherRes {
	return TeacherRes{
		ID:        t.ID,
		LastName:  t.LastName,
		FirstName: t.FirstName,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// FromEntities maps a slice of teachers; the result is never nil.
func FromEntities(ts []entity.Teacher) []TeacherRes {
	out := make([]TeacherRes, 0, len(ts))
	for _, t := range ts {
		out = append(out, FromEntity(t))
	}
	return out
}
