// Package usecase implements the business logic for session operations.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	authentity "yoga_backend/internal/feature/auth/domain/entity"
	"yoga_backend/internal/feature/session/domain/entity"
	teacherentity "yoga_backend/internal/feature/teacher/domain/entity"
)

// SessionRepository abstracts the persistence layer for sessions.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SessionRepository interface {
	FindAll(ctx context.Context) ([]entity.Session, error)
	// FindByID returns ErrSessionNotFound when no row matches.
	FindByID(ctx context.Context, id uint) (*entity.Session, error)
	Create(ctx context.Context, s *entity.Session) error
	// Update writes scalar fields and the teacher reference. Participants are left untouched.
	Update(ctx context.Context, s *entity.Session) error
	// Delete removes the session and its participation rows.
	Delete(ctx context.Context, id uint) error
	AddParticipant(ctx context.Context, sessionID, userID uint) error
	RemoveParticipant(ctx context.Context, sessionID, userID uint) error
}

// UserFinder loads users for participation checks.
type UserFinder interface {
	FindByID(ctx context.Context, id uint) (*authentity.User, error)
}

// TeacherFinder verifies the teacher referenced by a session.
type TeacherFinder interface {
	FindByID(ctx context.Context, id uint) (*teacherentity.Teacher, error)
}

// SessionInput carries the writable fields of a session.
type SessionInput struct {
	Name        string
	Date        time.Time
	TeacherID   uint
	Description string
}

// SessionUsecase provides session CRUD and participation.
type SessionUsecase struct {
	sessions SessionRepository
	users    UserFinder
	teachers TeacherFinder
}

// NewSessionUsecase creates a new SessionUsecase.
func NewSessionUsecase(sessions SessionRepository, users UserFinder, teachers TeacherFinder) *SessionUsecase {
	return &SessionUsecase{sessions: sessions, users: users, teachers: teachers}
}

// FindAll returns every session with its participants.
func (u *SessionUsecase) FindAll(ctx context.Context) ([]entity.Session, error) {
	return u.sessions.FindAll(ctx)
}

// FindByID returns one session or ErrSessionNotFound.
func (u *SessionUsecase) FindByID(ctx context.Context, id uint) (*entity.Session, error) {
	return u.sessions.FindByID(ctx, id)
}

// Create stores a new session without participants.
func (u *SessionUsecase) Create(ctx context.Context, in SessionInput) (*entity.Session, error) {
	if err := u.checkTeacher(ctx, in.TeacherID); err != nil {
		return nil, err
	}

	teacherID := in.TeacherID
	s := &entity.Session{
		Name:        in.Name,
		Date:        in.Date,
		Description: in.Description,
		TeacherID:   &teacherID,
	}
	if err := u.sessions.Create(ctx, s); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	slog.Info("session created", "session_id", s.ID, "teacher_id", teacherID)
	return s, nil
}

// Update overwrites the writable fields of session id. Participants are kept.
func (u *SessionUsecase) Update(ctx context.Context, id uint, in SessionInput) (*entity.Session, error) {
	s, err := u.sessions.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := u.checkTeacher(ctx, in.TeacherID); err != nil {
		return nil, err
	}

	teacherID := in.TeacherID
	s.Name = in.Name
	s.Date = in.Date
	s.Description = in.Description
	s.TeacherID = &teacherID
	s.Teacher = nil
	if err := u.sessions.Update(ctx, s); err != nil {
		return nil, fmt.Errorf("failed to update session %d: %w", id, err)
	}
	return s, nil
}

// Delete removes session id.
func (u *SessionUsecase) Delete(ctx context.Context, id uint) error {
	if _, err := u.sessions.FindByID(ctx, id); err != nil {
		return err
	}
	if err := u.sessions.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("session deleted", "session_id", id)
	return nil
}

// Participate adds userID to session id.
// The session is looked up first, then the user, then membership.
func (u *SessionUsecase) Participate(ctx context.Context, id, userID uint) error {
	s, err := u.sessions.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if _, err := u.users.FindByID(ctx, userID); err != nil {
		return err
	}
	if s.HasParticipant(userID) {
		return ErrAlreadyParticipating
	}
	return u.sessions.AddParticipant(ctx, id, userID)
}

// NoLongerParticipate removes userID from session id.
// The user row itself is not looked up; only membership matters.
func (u *SessionUsecase) NoLongerParticipate(ctx context.Context, id, userID uint) error {
	s, err := u.sessions.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !s.HasParticipant(userID) {
		return ErrNotParticipating
	}
	return u.sessions.RemoveParticipant(ctx, id, userID)
}

func (u *SessionUsecase) checkTeacher(ctx context.Context, teacherID uint) error {
	if _, err := u.teachers.FindByID(ctx, teacherID); err != nil {
		if errors.Is(err, ErrTeacherNotFound) {
			return err
		}
		return fmt.Errorf("failed to load teacher %d: %w", teacherID, err)
	}
	return nil
}
