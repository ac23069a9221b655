// Package adapters はteacherフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"yoga_backend/internal/feature/teacher/domain/entity"
	"yoga_backend/internal/feature/teacher/usecase"
)

// teacherRepository はTeacherRepositoryのGORM実装です。
type teacherRepository struct {
	db *gorm.DB
}

var _ usecase.TeacherRepository = (*teacherRepository)(nil)

// NewTeacherRepository は新しいteacherRepositoryを生成します。
func NewTeacherRepository(db *gorm.DB) *teacherRepository {
	return &teacherRepository{db: db}
}

// FindAll はすべての講師をID順で取得します。
func (r *teacherRepository) FindAll(ctx context.Context) ([]entity.Teacher, error) {
	var out []entity.Teacher
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// FindByID はIDで講師を取得します。存在しない場合はusecase.ErrTeacherNotFoundを返します。
func (r *teacherRepository) FindByID(ctx context.Context, id uint) (*entity.Teacher, error) {
	var t entity.Teacher
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrTeacherNotFound
		}
		return nil, err
	}
	return &t, nil
}
