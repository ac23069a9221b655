// Package dto defines the JSON shapes of the session endpoints.
package dto

import "time"

// SessionReq is the body of session create and update.
// Users is accepted for client compatibility and ignored; participation changes go through the participate endpoints.
type SessionReq struct {
	Name        string    `json:"name" binding:"required,max=50"`
	Date        time.Time `json:"date" binding:"required"`
	TeacherID   uint      `json:"teacher_id" binding:"required"`
	Users       []uint    `json:"users"`
	Description string    `json:"description" binding:"required,max=2500"`
}
