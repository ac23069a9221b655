// Package dto defines the JSON shapes of the user endpoints.
package dto

import (
	"time"

	authentity "yoga_backend/internal/feature/auth/domain/entity"
)

// UserRes is the public view of an account. The password hash is never included.
type UserRes struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	LastName  string    `json:"lastName"`
	FirstName string    `json:"firstName"`
	Admin     bool      `json:"admin"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FromEntity maps a user entity to its response.
func FromEntity(u authentity.User) UserRes {
	return UserRes{
		ID:        u.ID,
		Email:     u.Email,
		LastName:  u.LastName,
		FirstName: u.FirstName,
		Admin:     u.Admin,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
