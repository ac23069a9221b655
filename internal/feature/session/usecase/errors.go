package usecase

import (
	"errors"

	authusecase "yoga_backend/internal/feature/auth/usecase"
	teacherusecase "yoga_backend/internal/feature/teacher/usecase"
)

var (
	// ErrSessionNotFound is returned when a session cannot be found by ID.
	ErrSessionNotFound = errors.New("session not found")
	// ErrAlreadyParticipating is returned when the user already joined the session.
	ErrAlreadyParticipating = errors.New("user already participates in session")
	// ErrNotParticipating is returned when the user is not among the session's participants.
	ErrNotParticipating = errors.New("user does not participate in session")

	// ErrUserNotFound is the auth feature's sentinel, re-exported for handlers of this feature.
	ErrUserNotFound = authusecase.ErrUserNotFound
	// ErrTeacherNotFound is the teacher feature's sentinel, re-exported for handlers of this feature.
	ErrTeacherNotFound = teacherusecase.ErrTeacherNotFound
)
