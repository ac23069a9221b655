package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yoga_backend/internal/feature/teacher/domain/entity"
	"yoga_backend/internal/feature/teacher/usecase"
)

// mockTeacherRepository はTeacherRepositoryのモック実装です。
type mockTeacherRepository struct {
	FindAllFunc  func(ctx context.Context) ([]entity.Teacher, error)
	FindByIDFunc func(ctx context.Context, id uint) (*entity.Teacher, error)
}

func (m *mockTeacherRepository) FindAll(ctx context.Context) ([]entity.Teacher, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return nil, nil
}

func (m *mockTeacherRepository) FindByID(ctx context.Context, id uint) (*entity.Teacher, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, usecase.ErrTeacherNotFound
}

func TestTeacherUsecase_FindAll(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		repo    func(ctx context.Context) ([]entity.Teacher, error)
		want    []entity.Teacher
		wantErr bool
	}{
		{
			name: "returns teachers",
			repo: func(ctx context.Context) ([]entity.Teacher, error) {
				return []entity.Teacher{{ID: 1, FirstName: "Margot", LastName: "Delahaye"}, {ID: 2, FirstName: "Helene", LastName: "Thiercelin"}}, nil
			},
			want: []entity.Teacher{{ID: 1, FirstName: "Margot", LastName: "Delahaye"}, {ID: 2, FirstName: "Helene", LastName: "Thiercelin"}},
		},
		{
			name:    "repository error",
			repo:    func(ctx context.Context) ([]entity.Teacher, error) { return nil, errors.New("db down") },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			uc := usecase.NewTeacherUsecase(&mockTeacherRepository{FindAllFunc: tt.repo})
			got, err := uc.FindAll(context.Background())

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTeacherUsecase_FindByID(t *testing.T) {
	t.Parallel()

	uc := usecase.NewTeacherUsecase(&mockTeacherRepository{
		FindByIDFunc: func(ctx context.Context, id uint) (*entity.Teacher, error) {
			if id == 1 {
				return &entity.Teacher{ID: 1, FirstName: "Margot"}, nil
			}
			return nil, usecase.ErrTeacherNotFound
		},
	})

	got, err := uc.FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Margot", got.FirstName)

	_, err = uc.FindByID(context.Background(), 2)
	assert.ErrorIs(t, err, usecase.ErrTeacherNotFound)
}
