package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authentity "yoga_backend/internal/feature/auth/domain/entity"
	jwtmw "yoga_backend/internal/platform/jwt"
)

// mockUserRepository はUserRepositoryのモック実装です。
type mockUserRepository struct {
	FindByIDFunc func(ctx context.Context, id uint) (*authentity.User, error)
	DeleteFunc   func(ctx context.Context, id uint) error

	deleteCalls int
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uint) (*authentity.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, ErrUserNotFound
}

func (m *mockUserRepository) Delete(ctx context.Context, id uint) error {
	m.deleteCalls++
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func existingUser(ctx context.Context, id uint) (*authentity.User, error) {
	if id == 5 {
		return &authentity.User{ID: 5, Email: "owner@studio.com"}, nil
	}
	return nil, ErrUserNotFound
}

func TestUserUsecase_FindByID(t *testing.T) {
	uc := NewUserUsecase(&mockUserRepository{FindByIDFunc: existingUser})

	got, err := uc.FindByID(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "owner@studio.com", got.Email)

	_, err = uc.FindByID(context.Background(), 6)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserUsecase_Delete(t *testing.T) {
	tests := []struct {
		name       string
		requester  *jwtmw.Identity
		target     uint
		deleteErr  error
		wantErr    error
		wantDelete int
	}{
		{name: "owner deletes own account", requester: &jwtmw.Identity{UserID: 5, Email: "owner@studio.com"}, target: 5, wantDelete: 1},
		{name: "other user is rejected", requester: &jwtmw.Identity{UserID: 6, Email: "other@studio.com"}, target: 5, wantErr: ErrNotOwner},
		{name: "admin is not an owner", requester: &jwtmw.Identity{UserID: 1, Admin: true}, target: 5, wantErr: ErrNotOwner},
		{name: "missing requester is rejected", requester: nil, target: 5, wantErr: ErrNotOwner},
		{name: "unknown account is checked first", requester: &jwtmw.Identity{UserID: 6}, target: 6, wantErr: ErrUserNotFound},
		{name: "repository delete failure", requester: &jwtmw.Identity{UserID: 5}, target: 5, deleteErr: errors.New("db down"), wantErr: errors.New("db down"), wantDelete: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockUserRepository{
				FindByIDFunc: existingUser,
				DeleteFunc:   func(ctx context.Context, id uint) error { return tt.deleteErr },
			}
			uc := NewUserUsecase(repo)

			err := uc.Delete(context.Background(), tt.requester, tt.target)

			switch {
			case tt.deleteErr != nil:
				assert.ErrorIs(t, err, tt.deleteErr)
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			default:
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantDelete, repo.deleteCalls)
		})
	}
}
