// Package usecase implements the business logic for teacher operations.
package usecase

import (
	"context"

	"yoga_backend/internal/feature/teacher/domain/entity"
)

// TeacherRepository abstracts the persistence layer for teachers.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type TeacherRepository interface {
	FindAll(ctx context.Context) ([]entity.Teacher, error)
	FindByID(ctx context.Context, id uint) (*entity.Teacher, error)
}

// TeacherUsecase provides read access to teachers.
type TeacherUsecase struct {
	repo TeacherRepository
}

// NewTeacherUsecase creates a new TeacherUsecase with the given repository.
func NewTeacherUsecase(r TeacherRepository) *TeacherUsecase {
	return &TeacherUsecase{repo: r}
}

// FindAll returns every teacher.
func (u *TeacherUsecase) FindAll(ctx context.Context) ([]entity.Teacher, error) {
	return u.repo.FindAll(ctx)
}

// FindByID returns the teacher with id or ErrTeacherNotFound.
func (u *TeacherUsecase) FindByID(ctx context.Context, id uint) (*entity.Teacher, error) {
	return u.repo.FindByID(ctx, id)
}
